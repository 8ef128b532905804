package dto

import "github.com/Lixixy/commSysBackend/internal/model"

// ── 分页请求 ──

// PaginationRequest 通用分页参数（页码从 1 开始）
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 10
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 响应结构 ──

// UserResponse 用户信息响应（不含密码hash）
type UserResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Gender       int    `json:"gender"`
	Points       int    `json:"points"`
	ParentClubID int64  `json:"parent_club_id"`
	RoleID       int    `json:"role_id"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	RealName     string `json:"real_name"`
	Status       int    `json:"status"`
	Remark       string `json:"remark"`
	CreatedAt    string `json:"created_at"`
}

// ToUserResponse 将 model.User 转换为 UserResponse
func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Gender:       u.Gender,
		Points:       u.Points,
		ParentClubID: u.ParentClubID,
		RoleID:       int(u.RoleID),
		Email:        u.Email,
		Phone:        u.Phone,
		RealName:     u.RealName,
		Status:       u.Status,
		Remark:       u.Remark,
		CreatedAt:    u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// TokenResponse 会话令牌响应
type TokenResponse struct {
	Token     string `json:"token"`
	UserID    int64  `json:"user_id"`
	ExpiresAt string `json:"expires_at"`
}

// ToTokenResponse 将 model.Token 转换为 TokenResponse
func ToTokenResponse(t *model.Token) *TokenResponse {
	return &TokenResponse{
		Token:     t.TokenValue,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/dto/response.go
