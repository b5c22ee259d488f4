// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupRepository 接口，处理信道组及其授权的数据库操作
package repository

import (
	"tak_portal_server/internal/model"

	"gorm.io/gorm"
)

// groupRepository GroupRepository 接口的实现
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid 根据 UUID 查找信道组
func (r *groupRepository) FindByUuid(uuid string) (*model.ChannelGroup, error) {
	var group model.ChannelGroup
	if err := r.db.Where("uuid = ?", uuid).First(&group).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询信道组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByName 根据名称查找信道组
func (r *groupRepository) FindByName(name string) (*model.ChannelGroup, error) {
	var group model.ChannelGroup
	if err := r.db.Where("name = ?", name).First(&group).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询信道组 name=%s", name)
	}
	return &group, nil
}

// FindAll 查找所有信道组
func (r *groupRepository) FindAll() ([]model.ChannelGroup, error) {
	var groups []model.ChannelGroup
	if err := r.db.Order("name asc").Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "查询信道组列表")
	}
	return groups, nil
}

// FindVisibleTo 查找调用者可见的信道组：公开的、直接授权的、或按角色授权的
func (r *groupRepository) FindVisibleTo(userUuid, roleName string) ([]model.ChannelGroup, error) {
	var groups []model.ChannelGroup
	userSub := r.db.Model(&model.ChannelGroupUser{}).Select("group_uuid").Where("user_uuid = ?", userUuid)
	roleSub := r.db.Model(&model.ChannelGroupRole{}).Select("group_uuid").Where("role_name = ?", roleName)
	if err := r.db.
		Where("is_public = ? OR uuid IN (?) OR uuid IN (?)", 1, userSub, roleSub).
		Order("name asc").
		Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户可见信道组 user=%s", userUuid)
	}
	return groups, nil
}

// Create 创建信道组
func (r *groupRepository) Create(group *model.ChannelGroup) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBErrorf(err, "创建信道组 name=%s", group.Name)
	}
	return nil
}

// Update 更新信道组
func (r *groupRepository) Update(group *model.ChannelGroup) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBErrorf(err, "更新信道组 uuid=%s", group.Uuid)
	}
	return nil
}

// UpdateCombinedUrl 写入派生的合并 URL
// nil 表示清空（空组）。必须与触发它的成员变更在同一事务内提交
func (r *groupRepository) UpdateCombinedUrl(uuid string, combinedUrl *string) error {
	if err := r.db.Model(&model.ChannelGroup{}).
		Where("uuid = ?", uuid).
		Update("combined_url", combinedUrl).Error; err != nil {
		return wrapDBErrorf(err, "更新合并URL uuid=%s", uuid)
	}
	return nil
}

// Delete 删除信道组
// 物理删除：name 上有唯一索引，软删除残留行会让组名无法复用
func (r *groupRepository) Delete(uuid string) error {
	if err := r.db.Unscoped().Where("uuid = ?", uuid).Delete(&model.ChannelGroup{}).Error; err != nil {
		return wrapDBErrorf(err, "删除信道组 uuid=%s", uuid)
	}
	return nil
}

// FindRoles 查找组的角色授权列表
func (r *groupRepository) FindRoles(groupUuid string) ([]string, error) {
	var roles []string
	if err := r.db.Model(&model.ChannelGroupRole{}).
		Where("group_uuid = ?", groupUuid).
		Pluck("role_name", &roles).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询组角色授权 group=%s", groupUuid)
	}
	return roles, nil
}

// FindUsers 查找组的用户授权列表
func (r *groupRepository) FindUsers(groupUuid string) ([]string, error) {
	var users []string
	if err := r.db.Model(&model.ChannelGroupUser{}).
		Where("group_uuid = ?", groupUuid).
		Pluck("user_uuid", &users).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询组用户授权 group=%s", groupUuid)
	}
	return users, nil
}

// ReplaceRoles 整体替换组的角色授权列表
func (r *groupRepository) ReplaceRoles(groupUuid string, roles []string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.ChannelGroupRole{}).Error; err != nil {
		return wrapDBErrorf(err, "清理组角色授权 group=%s", groupUuid)
	}
	for _, role := range roles {
		grant := model.ChannelGroupRole{GroupUuid: groupUuid, RoleName: role}
		if err := r.db.Create(&grant).Error; err != nil {
			return wrapDBErrorf(err, "创建组角色授权 group=%s role=%s", groupUuid, role)
		}
	}
	return nil
}

// ReplaceUsers 整体替换组的用户授权列表
func (r *groupRepository) ReplaceUsers(groupUuid string, users []string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.ChannelGroupUser{}).Error; err != nil {
		return wrapDBErrorf(err, "清理组用户授权 group=%s", groupUuid)
	}
	for _, user := range users {
		grant := model.ChannelGroupUser{GroupUuid: groupUuid, UserUuid: user}
		if err := r.db.Create(&grant).Error; err != nil {
			return wrapDBErrorf(err, "创建组用户授权 group=%s user=%s", groupUuid, user)
		}
	}
	return nil
}

// DeleteGrants 删除组的全部授权
func (r *groupRepository) DeleteGrants(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.ChannelGroupRole{}).Error; err != nil {
		return wrapDBErrorf(err, "删除组角色授权 group=%s", groupUuid)
	}
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.ChannelGroupUser{}).Error; err != nil {
		return wrapDBErrorf(err, "删除组用户授权 group=%s", groupUuid)
	}
	return nil
}
