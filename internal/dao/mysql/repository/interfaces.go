// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"tak_portal_server/internal/model"
)

// ChannelRepository 信道数据访问接口
type ChannelRepository interface {
	// FindByUuid 根据 UUID 查找信道
	FindByUuid(uuid string) (*model.ChannelRecord, error)
	// FindByName 根据名称查找信道
	FindByName(name string) (*model.ChannelRecord, error)
	// FindByUuids 批量根据 UUID 查找信道
	FindByUuids(uuids []string) ([]model.ChannelRecord, error)
	// FindAll 查找所有信道
	FindAll() ([]model.ChannelRecord, error)
	// FindUngrouped 查找未加入任何信道组的信道
	FindUngrouped() ([]model.ChannelRecord, error)
	// CountDefaultConfigExcept 统计默认配置标记数（排除指定信道），用于单例校验
	CountDefaultConfigExcept(excludeUuid string) (int64, error)
	// Create 创建信道
	Create(channel *model.ChannelRecord) error
	// Update 更新信道
	Update(channel *model.ChannelRecord) error
	// Delete 删除信道
	Delete(uuid string) error
}

// GroupRepository 信道组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找信道组
	FindByUuid(uuid string) (*model.ChannelGroup, error)
	// FindByName 根据名称查找信道组
	FindByName(name string) (*model.ChannelGroup, error)
	// FindAll 查找所有信道组
	FindAll() ([]model.ChannelGroup, error)
	// FindVisibleTo 查找公开的、直接授权给用户的、或授权给用户角色的信道组
	FindVisibleTo(userUuid, roleName string) ([]model.ChannelGroup, error)
	// Create 创建信道组
	Create(group *model.ChannelGroup) error
	// Update 更新信道组
	Update(group *model.ChannelGroup) error
	// UpdateCombinedUrl 写入派生的合并 URL（nil 表示清空）
	UpdateCombinedUrl(uuid string, combinedUrl *string) error
	// Delete 删除信道组
	Delete(uuid string) error
	// FindRoles 查找组的角色授权列表
	FindRoles(groupUuid string) ([]string, error)
	// FindUsers 查找组的用户授权列表
	FindUsers(groupUuid string) ([]string, error)
	// ReplaceRoles 整体替换组的角色授权列表
	ReplaceRoles(groupUuid string, roles []string) error
	// ReplaceUsers 整体替换组的用户授权列表
	ReplaceUsers(groupUuid string, users []string) error
	// DeleteGrants 删除组的全部授权（删组时清理）
	DeleteGrants(groupUuid string) error
}

// MembershipRepository 槽位关联数据访问接口
type MembershipRepository interface {
	// FindByGroupUuidOrdered 查找组内全部槽位关联，按槽位号升序
	FindByGroupUuidOrdered(groupUuid string) ([]model.SlotMembership, error)
	// FindByGroupAndChannel 查找指定信道在指定组内的关联
	FindByGroupAndChannel(groupUuid, channelUuid string) (*model.SlotMembership, error)
	// FindByGroupAndSlot 查找指定组内占用指定槽位的关联
	FindByGroupAndSlot(groupUuid string, slotNumber int) (*model.SlotMembership, error)
	// FindByChannelUuid 查找信道的全部组关联
	FindByChannelUuid(channelUuid string) ([]model.SlotMembership, error)
	// CountByGroupUuid 统计组内成员数
	CountByGroupUuid(groupUuid string) (int64, error)
	// Create 创建槽位关联
	Create(membership *model.SlotMembership) error
	// UpdateSlot 更新关联的槽位号
	UpdateSlot(id uint, slotNumber int) error
	// Delete 删除指定信道在指定组内的关联
	Delete(groupUuid, channelUuid string) error
	// DeleteByGroupUuid 删除组的全部关联（删组时脱离成员，不删信道）
	DeleteByGroupUuid(groupUuid string) error
	// DeleteByChannelUuid 删除信道的全部关联（删信道时清理）
	DeleteByChannelUuid(channelUuid string) error
}

// RadioRepository 电台数据访问接口
type RadioRepository interface {
	// FindByUuid 根据 UUID 查找电台
	FindByUuid(uuid string) (*model.Radio, error)
	// FindAll 查找所有电台
	FindAll() ([]model.Radio, error)
	// Create 创建电台
	Create(radio *model.Radio) error
	// Update 更新电台
	Update(radio *model.Radio) error
	// Delete 删除电台
	Delete(uuid string) error
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据登录名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// Create 创建用户
	Create(user *model.UserInfo) error
	// Update 更新用户
	Update(user *model.UserInfo) error
}

// SettingRepository 系统设置数据访问接口
type SettingRepository interface {
	// GetValue 读取设置值，键不存在返回空字符串
	GetValue(key string) (string, error)
	// SetValue 写入设置值（不存在则创建）
	SetValue(key, value string) error
}
