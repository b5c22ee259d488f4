package model

import "time"

// SlotMembership 信道组槽位关联表
// 携带槽位号的关联实体：同组内 (group, slot) 唯一，(channel, group) 唯一，
// 同一信道可以属于多个组且各自独立占槽
// 不使用软删除：已删除行若留在唯一索引里会挡住重新入组，唯一约束是并发下的正确性保底
type SlotMembership struct {
	ID          uint      `gorm:"primarykey"`
	CreatedAt   time.Time `gorm:"comment:入组时间"`
	UpdatedAt   time.Time `gorm:"comment:最后改槽时间"`
	GroupUuid   string    `gorm:"column:group_uuid;type:char(20);not null;uniqueIndex:idx_group_slot;uniqueIndex:idx_channel_group;comment:信道组ID"`
	ChannelUuid string    `gorm:"column:channel_uuid;type:char(20);not null;uniqueIndex:idx_channel_group;comment:信道ID"`
	SlotNumber  int       `gorm:"column:slot_number;not null;uniqueIndex:idx_group_slot;comment:槽位号0-7，0为主信道"`
}

func (SlotMembership) TableName() string {
	return "slot_membership"
}
