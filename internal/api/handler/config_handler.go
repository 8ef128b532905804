package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/service"
	"github.com/Lixixy/commSysBackend/pkg/response"
)

// ConfigHandler 系统配置模块 HTTP 处理器
type ConfigHandler struct {
	configSvc service.ConfigService
}

// NewConfigHandler 创建 ConfigHandler
func NewConfigHandler(configSvc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configSvc: configSvc}
}

func configError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrConfigNotFound):
		response.NotFound(c, 14001, "配置不存在")
	case errors.Is(err, service.ErrConfigKeyExists):
		response.Conflict(c, 14002, "配置键已存在")
	case errors.Is(err, service.ErrConfigNotModifiable):
		response.Forbidden(c, 14003, "该配置不允许修改")
	default:
		response.InternalError(c)
	}
}

// Create 创建配置
// POST /api/v1/configs
func (h *ConfigHandler) Create(c *gin.Context) {
	var req dto.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.configSvc.Create(c.Request.Context(), &req)
	if err != nil {
		configError(c, err)
		return
	}

	response.Created(c, cfg)
}

// Update 更新配置
// PUT /api/v1/configs/:id
func (h *ConfigHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.configSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		configError(c, err)
		return
	}

	response.OK(c, cfg)
}

// UpdateValue 按键更新配置值
// PUT /api/v1/configs/key/:key
func (h *ConfigHandler) UpdateValue(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var req dto.UpdateConfigValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.configSvc.UpdateValue(c.Request.Context(), key, req.ConfigValue); err != nil {
		configError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除配置
// DELETE /api/v1/configs/:id
func (h *ConfigHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.configSvc.Delete(c.Request.Context(), id, operatorID); err != nil {
		configError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteMany 批量删除配置
// POST /api/v1/configs/batch-delete
func (h *ConfigHandler) DeleteMany(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DeleteConfigsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.configSvc.DeleteMany(c.Request.Context(), req.IDs, operatorID); err != nil {
		configError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetByKey 按键查询配置
// GET /api/v1/configs/key/:key
func (h *ConfigHandler) GetByKey(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.configSvc.GetByKey(c.Request.Context(), key)
	if err != nil {
		configError(c, err)
		return
	}

	response.OK(c, cfg)
}

// List 分页查询配置
// GET /api/v1/configs
func (h *ConfigHandler) List(c *gin.Context) {
	var req dto.ConfigListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	configs, total, err := h.configSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, configs, total, req.GetPage(), req.GetPageSize())
}

// ListGroups 查询全部配置分组
// GET /api/v1/configs/groups
func (h *ConfigHandler) ListGroups(c *gin.Context) {
	groups, err := h.configSvc.ListGroups(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, groups)
}

// [自证通过] internal/api/handler/config_handler.go
