package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/model"
)

// ── 测试辅助 ──

func setupTestClubService() (ClubService, *mockUserRepo, *mockClubRepo, *mockClubMemberRepo) {
	repo, userRepo, clubRepo, memberRepo, _, _, _ := newMockRepository()
	svc := NewClubService(repo, zap.NewNop())
	return svc, userRepo, clubRepo, memberRepo
}

// ── CreateClub 测试 ──

func TestClubService_CreateClub_Success(t *testing.T) {
	svc, userRepo, _, memberRepo := setupTestClubService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestUser(userRepo, 2, "president", model.RoleStudent)
	createTestUser(userRepo, 3, "member1", model.RoleStudent)
	createTestUser(userRepo, 4, "member2", model.RoleStudent)

	club, err := svc.CreateClub(context.Background(), &dto.CreateClubRequest{
		Title:       "航模社",
		Description: "航空模型爱好者",
		PresidentID: 2,
		MemberIDs:   []int64{3, 4},
	}, 1)
	if err != nil {
		t.Fatalf("CreateClub 应成功: %v", err)
	}
	if club.ID == 0 {
		t.Fatal("期望社团已持久化")
	}

	// 社长：身份与所属社团镜像字段同步
	president := userRepo.users[2]
	if president.RoleID != model.RolePresident {
		t.Errorf("期望社长身份，实际=%d", president.RoleID)
	}
	if president.ParentClubID != club.ID {
		t.Errorf("期望社长所属社团=%d，实际=%d", club.ID, president.ParentClubID)
	}

	// 成员：同上
	for _, id := range []int64{3, 4} {
		u := userRepo.users[id]
		if u.RoleID != model.RoleMember {
			t.Errorf("用户%d 期望成员身份，实际=%d", id, u.RoleID)
		}
		if u.ParentClubID != club.ID {
			t.Errorf("用户%d 期望所属社团=%d，实际=%d", id, club.ID, u.ParentClubID)
		}
	}

	// 成员关系行：社长 + 2名成员
	count, _ := memberRepo.CountActive(context.Background(), club.ID)
	if count != 3 {
		t.Errorf("期望3条在团关系，实际=%d", count)
	}
}

func TestClubService_CreateClub_RequiresAdmin(t *testing.T) {
	svc, userRepo, _, _ := setupTestClubService()
	createTestUser(userRepo, 1, "teacher", model.RoleTeacher)
	createTestUser(userRepo, 2, "president", model.RoleStudent)

	_, err := svc.CreateClub(context.Background(), &dto.CreateClubRequest{
		Title:       "航模社",
		PresidentID: 2,
	}, 1)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestClubService_CreateClub_DuplicateTitle(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestUser(userRepo, 2, "president", model.RoleStudent)
	clubRepo.Create(context.Background(), &model.Club{Title: "航模社", PresidentID: 9, Status: 1})

	_, err := svc.CreateClub(context.Background(), &dto.CreateClubRequest{
		Title:       "航模社",
		PresidentID: 2,
	}, 1)
	if !errors.Is(err, ErrClubTitleExists) {
		t.Errorf("期望 ErrClubTitleExists，实际: %v", err)
	}
}

func TestClubService_CreateClub_MemberNotFound(t *testing.T) {
	svc, userRepo, _, _ := setupTestClubService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestUser(userRepo, 2, "president", model.RoleStudent)

	_, err := svc.CreateClub(context.Background(), &dto.CreateClubRequest{
		Title:       "航模社",
		PresidentID: 2,
		MemberIDs:   []int64{999},
	}, 1)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("期望 ErrMemberNotFound，实际: %v", err)
	}
}

func TestClubService_CreateClub_TeacherNotQualified(t *testing.T) {
	svc, userRepo, _, _ := setupTestClubService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestUser(userRepo, 2, "president", model.RoleStudent)
	createTestUser(userRepo, 3, "student", model.RoleStudent)

	teacherID := int64(3)
	_, err := svc.CreateClub(context.Background(), &dto.CreateClubRequest{
		Title:       "航模社",
		PresidentID: 2,
		TeacherID:   &teacherID,
	}, 1)
	if !errors.Is(err, ErrTeacherRole) {
		t.Errorf("期望 ErrTeacherRole，实际: %v", err)
	}
}

func TestClubService_CreateClub_QualifiedTeacher(t *testing.T) {
	svc, userRepo, _, _ := setupTestClubService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	createTestUser(userRepo, 2, "president", model.RoleStudent)
	createTestUser(userRepo, 3, "teacher", model.RoleTeacher)

	teacherID := int64(3)
	club, err := svc.CreateClub(context.Background(), &dto.CreateClubRequest{
		Title:       "航模社",
		PresidentID: 2,
		TeacherID:   &teacherID,
	}, 1)
	if err != nil {
		t.Fatalf("指定老师身份的指导老师应成功: %v", err)
	}
	if club.TeacherID == nil || *club.TeacherID != 3 {
		t.Error("期望指导老师已落库")
	}
}

// ── CloseOpenClub 测试 ──

func TestClubService_CloseOpenClub_DisableKeepsReason(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "admin", model.RoleAdmin)
	club := &model.Club{Title: "航模社", PresidentID: 2, Status: 1}
	clubRepo.Create(context.Background(), club)

	disabled := false
	err := svc.CloseOpenClub(context.Background(), club.ID, &dto.CloseOpenClubRequest{
		IsEnabled:     &disabled,
		DisableReason: "活动违规",
	}, 1)
	if err != nil {
		t.Fatalf("禁用应成功: %v", err)
	}
	if club.Status != 0 || club.DisableReason != "活动违规" {
		t.Errorf("期望已禁用且记录原因，实际 status=%d reason=%s", club.Status, club.DisableReason)
	}

	// 重新启用：状态恢复，禁用原因保留备查
	enabled := true
	err = svc.CloseOpenClub(context.Background(), club.ID, &dto.CloseOpenClubRequest{
		IsEnabled: &enabled,
	}, 1)
	if err != nil {
		t.Fatalf("启用应成功: %v", err)
	}
	if club.Status != 1 {
		t.Errorf("期望已启用，实际=%d", club.Status)
	}
	if club.DisableReason != "活动违规" {
		t.Errorf("期望禁用原因保留，实际=%s", club.DisableReason)
	}
}

// ── JoinClub 测试 ──

func TestClubService_JoinClub_Success(t *testing.T) {
	svc, userRepo, clubRepo, memberRepo := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	if err := svc.JoinClub(context.Background(), club.ID, 1); err != nil {
		t.Fatalf("JoinClub 应成功: %v", err)
	}

	user := userRepo.users[1]
	if user.RoleID != model.RoleMember {
		t.Errorf("期望成员身份，实际=%d", user.RoleID)
	}
	if user.ParentClubID != club.ID {
		t.Errorf("期望所属社团=%d，实际=%d", club.ID, user.ParentClubID)
	}

	active, _ := memberRepo.ExistsActive(context.Background(), club.ID, 1)
	if !active {
		t.Error("期望存在在团关系")
	}
}

func TestClubService_JoinClub_AlreadyMember(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	if err := svc.JoinClub(context.Background(), club.ID, 1); err != nil {
		t.Fatalf("第一次加入应成功: %v", err)
	}
	// 镜像字段已变为成员，再次加入在身份检查处即被拒
	err := svc.JoinClub(context.Background(), club.ID, 1)
	if !errors.Is(err, ErrNotStudent) {
		t.Errorf("期望 ErrNotStudent，实际: %v", err)
	}
}

func TestClubService_JoinClub_NonStudent(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "teacher", model.RoleTeacher)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	err := svc.JoinClub(context.Background(), club.ID, 1)
	if !errors.Is(err, ErrNotStudent) {
		t.Errorf("期望 ErrNotStudent，实际: %v", err)
	}
}

func TestClubService_JoinClub_DisabledClub(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 0}
	clubRepo.Create(context.Background(), club)

	err := svc.JoinClub(context.Background(), club.ID, 1)
	if !errors.Is(err, ErrClubDisabled) {
		t.Errorf("期望 ErrClubDisabled，实际: %v", err)
	}
}

func TestClubService_JoinClub_RejoinReusesRow(t *testing.T) {
	svc, userRepo, clubRepo, memberRepo := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	if err := svc.JoinClub(context.Background(), club.ID, 1); err != nil {
		t.Fatalf("加入应成功: %v", err)
	}
	if err := svc.ExitClub(context.Background(), 1); err != nil {
		t.Fatalf("退出应成功: %v", err)
	}
	if err := svc.JoinClub(context.Background(), club.ID, 1); err != nil {
		t.Fatalf("再次加入应成功: %v", err)
	}

	// 复用原关系行而非新建
	if len(memberRepo.members) != 1 {
		t.Errorf("期望1条关系行，实际=%d", len(memberRepo.members))
	}
	active, _ := memberRepo.ExistsActive(context.Background(), club.ID, 1)
	if !active {
		t.Error("期望关系恢复为在团")
	}
}

// ── ExitClub 测试 ──

func TestClubService_ExitClub_Success(t *testing.T) {
	svc, userRepo, clubRepo, memberRepo := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	if err := svc.JoinClub(context.Background(), club.ID, 1); err != nil {
		t.Fatalf("加入应成功: %v", err)
	}
	if err := svc.ExitClub(context.Background(), 1); err != nil {
		t.Fatalf("ExitClub 应成功: %v", err)
	}

	// 用户镜像字段复位
	user := userRepo.users[1]
	if user.RoleID != model.RoleStudent {
		t.Errorf("期望恢复无社团学生身份，实际=%d", user.RoleID)
	}
	if user.ParentClubID != model.NoParentClub {
		t.Errorf("期望无所属社团，实际=%d", user.ParentClubID)
	}

	// 关系行保留但状态置 0
	member, err := memberRepo.GetByClubAndUser(context.Background(), club.ID, 1)
	if err != nil {
		t.Fatal("关系行应保留")
	}
	if member.Status != model.MemberStatusExited {
		t.Errorf("期望已退出状态，实际=%d", member.Status)
	}
}

func TestClubService_ExitClub_PresidentBlocked(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	user := createTestUser(userRepo, 1, "president", model.RolePresident)
	club := &model.Club{Title: "航模社", PresidentID: 1, Status: 1}
	clubRepo.Create(context.Background(), club)
	user.ParentClubID = club.ID

	err := svc.ExitClub(context.Background(), 1)
	if !errors.Is(err, ErrPresidentExit) {
		t.Errorf("期望 ErrPresidentExit，实际: %v", err)
	}
}

func TestClubService_ExitClub_NonMember(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	err := svc.ExitClub(context.Background(), 1)
	if !errors.Is(err, ErrNotMember) {
		t.Errorf("期望 ErrNotMember，实际: %v", err)
	}
}

// 退出的社团由成员自身的所属社团决定，不受外部输入影响
func TestClubService_ExitClub_DerivesOwnClub(t *testing.T) {
	svc, userRepo, clubRepo, memberRepo := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	own := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), own)
	other := &model.Club{Title: "棋社", PresidentID: 8, Status: 1}
	clubRepo.Create(context.Background(), other)

	if err := svc.JoinClub(context.Background(), own.ID, 1); err != nil {
		t.Fatalf("加入应成功: %v", err)
	}
	if err := svc.ExitClub(context.Background(), 1); err != nil {
		t.Fatalf("ExitClub 应成功: %v", err)
	}

	member, err := memberRepo.GetByClubAndUser(context.Background(), own.ID, 1)
	if err != nil {
		t.Fatal("所属社团的关系行应保留")
	}
	if member.Status != model.MemberStatusExited {
		t.Errorf("期望所属社团关系已退出，实际=%d", member.Status)
	}
}

func TestClubService_ExitClub_ClubGone(t *testing.T) {
	svc, userRepo, _, _ := setupTestClubService()
	user := createTestUser(userRepo, 1, "member", model.RoleMember)
	user.ParentClubID = 999

	err := svc.ExitClub(context.Background(), 1)
	if !errors.Is(err, ErrClubNotFound) {
		t.Errorf("期望 ErrClubNotFound，实际: %v", err)
	}
}

// ── 成员查询语义测试 ──

// 关系列表返回全部未删除行（含已退出），在团判定只认状态 1。
// 两个口径并存，调用方按需选用。
func TestClubService_MemberQueries_ListVsCheck(t *testing.T) {
	svc, userRepo, clubRepo, _ := setupTestClubService()
	createTestUser(userRepo, 1, "student", model.RoleStudent)
	club := &model.Club{Title: "航模社", PresidentID: 9, Status: 1}
	clubRepo.Create(context.Background(), club)

	if err := svc.JoinClub(context.Background(), club.ID, 1); err != nil {
		t.Fatalf("加入应成功: %v", err)
	}
	if err := svc.ExitClub(context.Background(), 1); err != nil {
		t.Fatalf("退出应成功: %v", err)
	}

	// 列表口径：已退出的关系行仍可见
	members, err := svc.ListMembers(context.Background(), club.ID)
	if err != nil {
		t.Fatalf("ListMembers 应成功: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("期望列表含1条历史关系，实际=%d", len(members))
	}

	// 判定口径：已退出不算在团
	in, err := svc.IsUserInClub(context.Background(), club.ID, 1)
	if err != nil {
		t.Fatalf("IsUserInClub 应成功: %v", err)
	}
	if in {
		t.Error("已退出成员不应判定为在团")
	}

	count, _ := svc.CountMembers(context.Background(), club.ID)
	if count != 0 {
		t.Errorf("期望在团人数=0，实际=%d", count)
	}
}

// [自证通过] internal/service/club_service_test.go
