// Package repository 提供数据访问层的具体实现
// 本文件实现 ChannelRepository 接口，处理信道相关的数据库操作
package repository

import (
	"tak_portal_server/internal/model"

	"gorm.io/gorm"
)

// channelRepository ChannelRepository 接口的实现
type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository 创建 ChannelRepository 实例
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

// FindByUuid 根据 UUID 查找信道
func (r *channelRepository) FindByUuid(uuid string) (*model.ChannelRecord, error) {
	var channel model.ChannelRecord
	if err := r.db.Where("uuid = ?", uuid).First(&channel).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询信道 uuid=%s", uuid)
	}
	return &channel, nil
}

// FindByName 根据名称查找信道
func (r *channelRepository) FindByName(name string) (*model.ChannelRecord, error) {
	var channel model.ChannelRecord
	if err := r.db.Where("name = ?", name).First(&channel).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询信道 name=%s", name)
	}
	return &channel, nil
}

// FindByUuids 批量根据 UUID 查找信道
func (r *channelRepository) FindByUuids(uuids []string) ([]model.ChannelRecord, error) {
	var channels []model.ChannelRecord
	if len(uuids) == 0 {
		return channels, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&channels).Error; err != nil {
		return nil, wrapDBError(err, "批量查询信道")
	}
	return channels, nil
}

// FindAll 查找所有信道
func (r *channelRepository) FindAll() ([]model.ChannelRecord, error) {
	var channels []model.ChannelRecord
	if err := r.db.Order("name asc").Find(&channels).Error; err != nil {
		return nil, wrapDBError(err, "查询信道列表")
	}
	return channels, nil
}

// FindUngrouped 查找未加入任何信道组的信道
// 通过子查询排除 slot_membership 中出现过的信道
func (r *channelRepository) FindUngrouped() ([]model.ChannelRecord, error) {
	var channels []model.ChannelRecord
	sub := r.db.Model(&model.SlotMembership{}).Select("channel_uuid")
	if err := r.db.Where("uuid NOT IN (?)", sub).Order("name asc").Find(&channels).Error; err != nil {
		return nil, wrapDBError(err, "查询未入组信道")
	}
	return channels, nil
}

// CountDefaultConfigExcept 统计默认配置标记数（排除指定信道）
// 与写操作同事务调用，保证"全系统至多一条默认配置"的单例不变量
func (r *channelRepository) CountDefaultConfigExcept(excludeUuid string) (int64, error) {
	var count int64
	q := r.db.Model(&model.ChannelRecord{}).Where("is_default_config = ?", 1)
	if excludeUuid != "" {
		q = q.Where("uuid <> ?", excludeUuid)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "统计默认配置信道")
	}
	return count, nil
}

// Create 创建信道
func (r *channelRepository) Create(channel *model.ChannelRecord) error {
	if err := r.db.Create(channel).Error; err != nil {
		return wrapDBErrorf(err, "创建信道 name=%s", channel.Name)
	}
	return nil
}

// Update 更新信道
func (r *channelRepository) Update(channel *model.ChannelRecord) error {
	if err := r.db.Save(channel).Error; err != nil {
		return wrapDBErrorf(err, "更新信道 uuid=%s", channel.Uuid)
	}
	return nil
}

// Delete 删除信道
// 物理删除：name 上有唯一索引，软删除残留行会让信道名无法复用
func (r *channelRepository) Delete(uuid string) error {
	if err := r.db.Unscoped().Where("uuid = ?", uuid).Delete(&model.ChannelRecord{}).Error; err != nil {
		return wrapDBErrorf(err, "删除信道 uuid=%s", uuid)
	}
	return nil
}
