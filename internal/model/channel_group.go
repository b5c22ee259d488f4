package model

import (
	"gorm.io/gorm"
)

// ChannelGroup 信道组，最多 8 个槽位，共用一套 LoRa 调制解调器配置
// CombinedUrl 是派生字段：只由成员变更和显式重新生成写入，不接受外部编辑
type ChannelGroup struct {
	gorm.Model
	Uuid           string  `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:信道组唯一id"`
	Name           string  `gorm:"column:name;type:varchar(100);uniqueIndex;not null;comment:组名称"`
	Description    string  `gorm:"column:description;type:varchar(500);comment:描述"`
	CombinedUrl    *string `gorm:"column:combined_url;type:text;comment:合并分享URL，派生字段"`
	ConfigTemplate string  `gorm:"column:config_template;type:text;comment:YAML配置模板，支持${}占位符"`
	IsPublic       int8    `gorm:"column:is_public;default:0;comment:是否公开可见"`
	ShowOnHomepage int8    `gorm:"column:show_on_homepage;default:0;comment:是否在首页展示"`
}

func (ChannelGroup) TableName() string {
	return "channel_group"
}

// ChannelGroupRole 信道组按角色授权
type ChannelGroupRole struct {
	ID        uint   `gorm:"primarykey"`
	GroupUuid string `gorm:"column:group_uuid;type:char(20);index;not null;comment:信道组ID"`
	RoleName  string `gorm:"column:role_name;type:varchar(50);not null;comment:角色名"`
}

func (ChannelGroupRole) TableName() string {
	return "channel_group_role"
}

// ChannelGroupUser 信道组按用户授权
type ChannelGroupUser struct {
	ID        uint   `gorm:"primarykey"`
	GroupUuid string `gorm:"column:group_uuid;type:char(20);index;not null;comment:信道组ID"`
	UserUuid  string `gorm:"column:user_uuid;type:char(20);index;not null;comment:用户ID"`
}

func (ChannelGroupUser) TableName() string {
	return "channel_group_user"
}
