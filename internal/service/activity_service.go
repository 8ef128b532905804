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

// ── 活动模块业务错误 ──

var (
	ErrActivityNotFound     = errors.New("活动不存在")
	ErrActivityClubMismatch = errors.New("活动不属于指定社团")
	ErrActivityTimeOrder    = errors.New("开始时间不能晚于结束时间")
	ErrActivityTimePast     = errors.New("开始时间不能早于当前时间")
	ErrActivityEnded        = errors.New("活动已结束")
	ErrActivityClubClosed   = errors.New("社团已被禁用，不能创建活动")
)

// ActivityService 活动业务接口
type ActivityService interface {
	// Create 创建活动：社团须启用，开始时间不早于当前、不晚于结束时间
	Create(ctx context.Context, req *dto.CreateActivityRequest, operatorUserID int64) (*model.Activity, error)
	// Edit 编辑活动（部分更新）；不重新校验时间先后
	Edit(ctx context.Context, activityID int64, req *dto.EditActivityRequest, operatorUserID int64) (*model.Activity, error)
	// Close 结束活动：置结束状态并记录实际结束时间
	Close(ctx context.Context, activityID int64, req *dto.CloseActivityRequest, operatorUserID int64) error
	// Delete 删除活动（逻辑删除），不要求活动处于特定状态
	Delete(ctx context.Context, activityID, clubID, operatorUserID int64) error
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	List(ctx context.Context, req *dto.ActivityListRequest) ([]model.Activity, int64, error)
	ListAll(ctx context.Context) ([]model.Activity, error)
	ListByClub(ctx context.Context, clubID int64) ([]model.Activity, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Activity, error)
	ListByStatus(ctx context.Context, status int) ([]model.Activity, error)
	ListByClubAndStatus(ctx context.Context, clubID int64, status int) ([]model.Activity, error)
	ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.Activity, error)
	// ListOngoing 进行中：状态为 1 且当前时间在起止区间内
	ListOngoing(ctx context.Context) ([]model.Activity, error)
	// ListEnded 已过期：状态为 1 且结束时间早于当前（已手动结束的不在其列）
	ListEnded(ctx context.Context) ([]model.Activity, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

// operator 加载操作者并执行活动操作权限校验
func (s *activityService) operator(ctx context.Context, operatorUserID, clubID int64) (*model.User, error) {
	op, err := s.repo.User.GetByID(ctx, operatorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := checkActivityOperator(op, clubID); err != nil {
		return nil, err
	}
	return op, nil
}

// ────────────────────── Create ──────────────────────

func (s *activityService) Create(ctx context.Context, req *dto.CreateActivityRequest, operatorUserID int64) (*model.Activity, error) {
	op, err := s.operator(ctx, operatorUserID, req.ClubID)
	if err != nil {
		return nil, err
	}

	club, err := s.repo.Club.GetByID(ctx, req.ClubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	if !club.Enabled() {
		return nil, ErrActivityClubClosed
	}

	if req.StartTime.After(req.EndTime) {
		return nil, ErrActivityTimeOrder
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrActivityTimePast
	}

	activity := &model.Activity{
		ClubID:      req.ClubID,
		CreatorID:   op.ID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      model.ActivityStatusOngoing,
	}
	if err := s.repo.Activity.Create(ctx, activity); err != nil {
		s.logger.Error("创建活动失败", zap.Int64("club_id", req.ClubID), zap.Error(err))
		return nil, err
	}

	return activity, nil
}

// ────────────────────── Edit ──────────────────────

func (s *activityService) Edit(ctx context.Context, activityID int64, req *dto.EditActivityRequest, operatorUserID int64) (*model.Activity, error) {
	if _, err := s.operator(ctx, operatorUserID, req.ClubID); err != nil {
		return nil, err
	}

	activity, err := s.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.ClubID != req.ClubID {
		return nil, ErrActivityClubMismatch
	}

	if req.Title != "" {
		activity.Title = req.Title
	}
	if req.Description != "" {
		activity.Description = req.Description
	}
	if req.StartTime != nil {
		activity.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		activity.EndTime = *req.EndTime
	}

	if err := s.repo.Activity.Update(ctx, activity); err != nil {
		s.logger.Error("编辑活动失败", zap.Int64("id", activityID), zap.Error(err))
		return nil, err
	}
	return activity, nil
}

// ────────────────────── Close ──────────────────────

func (s *activityService) Close(ctx context.Context, activityID int64, req *dto.CloseActivityRequest, operatorUserID int64) error {
	if _, err := s.operator(ctx, operatorUserID, req.ClubID); err != nil {
		return err
	}

	activity, err := s.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	if activity.ClubID != req.ClubID {
		return ErrActivityClubMismatch
	}
	if activity.Status == model.ActivityStatusEnded {
		return ErrActivityEnded
	}

	now := time.Now()
	activity.Status = model.ActivityStatusEnded
	activity.ActualEndTime = &now
	activity.CloseReason = req.CloseReason

	if err := s.repo.Activity.Update(ctx, activity); err != nil {
		s.logger.Error("结束活动失败", zap.Int64("id", activityID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *activityService) Delete(ctx context.Context, activityID, clubID, operatorUserID int64) error {
	if _, err := s.operator(ctx, operatorUserID, clubID); err != nil {
		return err
	}

	activity, err := s.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	if activity.ClubID != clubID {
		return ErrActivityClubMismatch
	}

	if err := s.repo.Activity.Delete(ctx, activityID, operatorUserID); err != nil {
		s.logger.Error("删除活动失败", zap.Int64("id", activityID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *activityService) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询活动失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return activity, nil
}

func (s *activityService) List(ctx context.Context, req *dto.ActivityListRequest) ([]model.Activity, int64, error) {
	filters := &repository.ActivityListFilters{
		Title:  req.Title,
		ClubID: req.ClubID,
		Status: req.Status,
	}
	activities, total, err := s.repo.Activity.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("分页查询活动失败", zap.Error(err))
		return nil, 0, err
	}
	return activities, total, nil
}

func (s *activityService) ListAll(ctx context.Context) ([]model.Activity, error) {
	return s.repo.Activity.ListAll(ctx)
}

func (s *activityService) ListByClub(ctx context.Context, clubID int64) ([]model.Activity, error) {
	return s.repo.Activity.ListByClub(ctx, clubID)
}

func (s *activityService) ListByCreator(ctx context.Context, creatorID int64) ([]model.Activity, error) {
	return s.repo.Activity.ListByCreator(ctx, creatorID)
}

func (s *activityService) ListByStatus(ctx context.Context, status int) ([]model.Activity, error) {
	return s.repo.Activity.ListByStatus(ctx, status)
}

func (s *activityService) ListByClubAndStatus(ctx context.Context, clubID int64, status int) ([]model.Activity, error) {
	return s.repo.Activity.ListByClubAndStatus(ctx, clubID, status)
}

func (s *activityService) ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.Activity, error) {
	return s.repo.Activity.ListByTimeRange(ctx, start, end)
}

func (s *activityService) ListOngoing(ctx context.Context) ([]model.Activity, error) {
	return s.repo.Activity.ListOngoing(ctx, time.Now())
}

func (s *activityService) ListEnded(ctx context.Context) ([]model.Activity, error) {
	return s.repo.Activity.ListEnded(ctx, time.Now())
}

// [自证通过] internal/service/activity_service.go
