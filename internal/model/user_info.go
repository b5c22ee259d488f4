package model

import (
	"gorm.io/gorm"
)

// UserInfo 门户用户
// Role 为外部 TAK 服务器侧的角色名，信道组可以按角色授权
type UserInfo struct {
	gorm.Model
	Uuid         string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:用户唯一id"`
	Username     string `gorm:"column:username;type:varchar(50);uniqueIndex;not null;comment:登录名"`
	Password     string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt密码哈希"`
	Callsign     string `gorm:"column:callsign;type:varchar(50);comment:呼号"`
	Role         string `gorm:"column:role;type:varchar(50);comment:角色名"`
	IsAdmin      int8   `gorm:"column:is_admin;default:0;comment:是否管理员"`
	IsRadioAdmin int8   `gorm:"column:is_radio_admin;default:0;comment:是否电台管理员"`
}

func (UserInfo) TableName() string {
	return "user_info"
}
