package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/model"
	"github.com/Lixixy/commSysBackend/internal/service"
	"github.com/Lixixy/commSysBackend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile 查询当前登录用户资料
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.ToUserResponse(user))
}

// GetByID 按 ID 查询用户
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.ToUserResponse(user))
}

// UpdateProfile 修改当前用户资料
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.ChangeProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.ToUserResponse(user))
}

// ChangePassword 修改密码（本人或管理员）
// PUT /api/v1/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.userSvc.ChangePassword(c.Request.Context(), targetID, req.OldPasswordHash, req.NewPasswordHash, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "用户不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "权限不足")
		case errors.Is(err, service.ErrPasswordMismatch):
			response.BadRequest(c, 11005, "旧密码错误")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ChangePermission 提权/降权
// PUT /api/v1/users/:id/permission
func (h *UserHandler) ChangePermission(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.userSvc.ChangePermission(c.Request.Context(), targetID, operatorID, model.Role(req.RoleID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "用户不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "权限不足")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 11009, "无效的身份")
		case errors.Is(err, service.ErrSuperAdminRole):
			response.Forbidden(c, 11008, "不能设置为超级管理员")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Delete 删除用户（本人或管理员，逻辑删除）
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.userSvc.Delete(c.Request.Context(), targetID, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "用户不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "权限不足")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// List 分页查询用户
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	list := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, dto.ToUserResponse(&users[i]))
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// [自证通过] internal/api/handler/user_handler.go
