package model

import (
	"gorm.io/gorm"
)

// Radio 实体电台记录
// AssignedUserUuid 为当前使用人，OwnerUuid 为设备归属人，两者都可为空
type Radio struct {
	gorm.Model
	Uuid             string  `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:电台唯一id"`
	Name             string  `gorm:"column:name;type:varchar(100);not null;comment:设备名称"`
	RadioType        string  `gorm:"column:radio_type;type:varchar(20);default:meshtastic;not null;comment:设备类型"`
	ShortName        string  `gorm:"column:short_name;type:varchar(10);comment:Meshtastic短名"`
	LongName         string  `gorm:"column:long_name;type:varchar(50);comment:Meshtastic长名"`
	Mac              string  `gorm:"column:mac;type:varchar(20);comment:MAC地址"`
	AssignedUserUuid *string `gorm:"column:assigned_user_uuid;type:char(20);index;comment:当前使用人"`
	OwnerUuid        *string `gorm:"column:owner_uuid;type:char(20);index;comment:设备归属人"`
}

func (Radio) TableName() string {
	return "radio"
}
