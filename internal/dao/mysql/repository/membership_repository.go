// Package repository 提供数据访问层的具体实现
// 本文件实现 MembershipRepository 接口，处理槽位关联的数据库操作
package repository

import (
	"tak_portal_server/internal/model"

	"gorm.io/gorm"
)

// membershipRepository MembershipRepository 接口的实现
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository 创建 MembershipRepository 实例
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// FindByGroupUuidOrdered 查找组内全部槽位关联，按槽位号升序
// 槽位唯一不变量保证不会出现并列
func (r *membershipRepository) FindByGroupUuidOrdered(groupUuid string) ([]model.SlotMembership, error) {
	var memberships []model.SlotMembership
	if err := r.db.Where("group_uuid = ?", groupUuid).
		Order("slot_number asc").
		Find(&memberships).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询组槽位关联 group=%s", groupUuid)
	}
	return memberships, nil
}

// FindByGroupAndChannel 查找指定信道在指定组内的关联
func (r *membershipRepository) FindByGroupAndChannel(groupUuid, channelUuid string) (*model.SlotMembership, error) {
	var membership model.SlotMembership
	if err := r.db.Where("group_uuid = ? AND channel_uuid = ?", groupUuid, channelUuid).
		First(&membership).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询槽位关联 group=%s channel=%s", groupUuid, channelUuid)
	}
	return &membership, nil
}

// FindByGroupAndSlot 查找指定组内占用指定槽位的关联
func (r *membershipRepository) FindByGroupAndSlot(groupUuid string, slotNumber int) (*model.SlotMembership, error) {
	var membership model.SlotMembership
	if err := r.db.Where("group_uuid = ? AND slot_number = ?", groupUuid, slotNumber).
		First(&membership).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询槽位占用 group=%s slot=%d", groupUuid, slotNumber)
	}
	return &membership, nil
}

// FindByChannelUuid 查找信道的全部组关联
func (r *membershipRepository) FindByChannelUuid(channelUuid string) ([]model.SlotMembership, error) {
	var memberships []model.SlotMembership
	if err := r.db.Where("channel_uuid = ?", channelUuid).Find(&memberships).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询信道组关联 channel=%s", channelUuid)
	}
	return memberships, nil
}

// CountByGroupUuid 统计组内成员数
func (r *membershipRepository) CountByGroupUuid(groupUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.SlotMembership{}).
		Where("group_uuid = ?", groupUuid).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计组成员数 group=%s", groupUuid)
	}
	return count, nil
}

// Create 创建槽位关联
// (group, slot) 和 (channel, group) 的唯一索引在这里兜底，
// 并发竞态下绕过应用层预检查的插入会返回冲突错误
func (r *membershipRepository) Create(membership *model.SlotMembership) error {
	if err := r.db.Create(membership).Error; err != nil {
		return wrapDBErrorf(err, "创建槽位关联 group=%s channel=%s slot=%d",
			membership.GroupUuid, membership.ChannelUuid, membership.SlotNumber)
	}
	return nil
}

// UpdateSlot 更新关联的槽位号
func (r *membershipRepository) UpdateSlot(id uint, slotNumber int) error {
	if err := r.db.Model(&model.SlotMembership{}).
		Where("id = ?", id).
		Update("slot_number", slotNumber).Error; err != nil {
		return wrapDBErrorf(err, "更新槽位号 id=%d slot=%d", id, slotNumber)
	}
	return nil
}

// Delete 删除指定信道在指定组内的关联
func (r *membershipRepository) Delete(groupUuid, channelUuid string) error {
	if err := r.db.Where("group_uuid = ? AND channel_uuid = ?", groupUuid, channelUuid).
		Delete(&model.SlotMembership{}).Error; err != nil {
		return wrapDBErrorf(err, "删除槽位关联 group=%s channel=%s", groupUuid, channelUuid)
	}
	return nil
}

// DeleteByGroupUuid 删除组的全部关联
// 删组时脱离成员信道，信道记录本身保留
func (r *membershipRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).
		Delete(&model.SlotMembership{}).Error; err != nil {
		return wrapDBErrorf(err, "删除组全部槽位关联 group=%s", groupUuid)
	}
	return nil
}

// DeleteByChannelUuid 删除信道的全部关联
func (r *membershipRepository) DeleteByChannelUuid(channelUuid string) error {
	if err := r.db.Where("channel_uuid = ?", channelUuid).
		Delete(&model.SlotMembership{}).Error; err != nil {
		return wrapDBErrorf(err, "删除信道全部槽位关联 channel=%s", channelUuid)
	}
	return nil
}
