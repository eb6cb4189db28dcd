package mainmodel

import "time"

// SysConfig is a key/value row; the gateway settings blob lives under
// SettingsConfigKey as JSON.
type SysConfig struct {
	ConfigId    int       `gorm:"primaryKey;autoIncrement"`
	ConfigName  string    `gorm:"type:varchar(100)"`
	ConfigKey   string    `gorm:"type:varchar(100);uniqueIndex"`
	ConfigValue string    `gorm:"type:text"`
	ConfigType  string    `gorm:"default:N"`
	CreateBy    string    `gorm:"type:varchar(64)"`
	CreateTime  time.Time `gorm:"autoCreateTime"`
	UpdateBy    string    `gorm:"type:varchar(64)"`
	UpdateTime  time.Time `gorm:"autoUpdateTime"`
	Remark      string    `gorm:"type:varchar(500)"`
}

func (SysConfig) TableName() string {
	return "sys_config"
}

const SettingsConfigKey = "rapid_pay_settings"
