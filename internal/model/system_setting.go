package model

import (
	"gorm.io/gorm"
)

// SystemSetting 系统开关，键值对
// 目前只有 radio_self_programming_enabled：是否允许非管理员给自己的设备下发配置
type SystemSetting struct {
	gorm.Model
	SettingKey   string `gorm:"column:setting_key;uniqueIndex;type:varchar(100);not null;comment:设置键"`
	SettingValue string `gorm:"column:setting_value;type:varchar(500);comment:设置值"`
}

func (SystemSetting) TableName() string {
	return "system_setting"
}
