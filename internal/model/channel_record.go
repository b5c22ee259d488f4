package model

import (
	"time"

	"gorm.io/gorm"
)

// ChannelRecord Meshtastic 信道记录
// Url 为单信道分享 URL（meshtastic:// 或 https://meshtastic.org/e/#payload），
// payload 编码了该信道的密钥和调制解调器设置
type ChannelRecord struct {
	gorm.Model
	Uuid            string     `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:信道唯一id"`
	Name            string     `gorm:"column:name;type:varchar(100);uniqueIndex;not null;comment:信道名称"`
	Description     string     `gorm:"column:description;type:varchar(500);comment:描述"`
	Url             string     `gorm:"column:url;type:varchar(1024);comment:分享URL"`
	DeviceConfig    string     `gorm:"column:device_config;type:text;comment:YAML设备配置"`
	LastSynced      *time.Time `gorm:"column:last_synced;comment:外部无线电服务器最后同步时间"`
	IsDefaultConfig int8       `gorm:"column:is_default_config;default:0;comment:默认配置标记，全系统至多一条"`
	ShowOnHomepage  int8       `gorm:"column:show_on_homepage;default:0;comment:是否在首页展示"`
	IsPublic        int8       `gorm:"column:is_public;default:0;comment:是否公开可见"`
}

func (ChannelRecord) TableName() string {
	return "channel_record"
}
