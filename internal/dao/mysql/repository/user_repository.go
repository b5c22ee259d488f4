// Package repository 提供数据访问层的具体实现
// 本文件实现 UserRepository 与 SettingRepository 接口
package repository

import (
	"errors"

	"tak_portal_server/internal/model"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByUsername 根据登录名查找用户
func (r *userRepository) FindByUsername(username string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// Create 创建用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBErrorf(err, "创建用户 username=%s", user.Username)
	}
	return nil
}

// Update 更新用户
func (r *userRepository) Update(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBErrorf(err, "更新用户 uuid=%s", user.Uuid)
	}
	return nil
}

// settingRepository SettingRepository 接口的实现
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建 SettingRepository 实例
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetValue 读取设置值，键不存在返回空字符串（不视为错误）
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting model.SystemSetting
	if err := r.db.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", wrapDBErrorf(err, "查询系统设置 key=%s", key)
	}
	return setting.SettingValue, nil
}

// SetValue 写入设置值（不存在则创建）
func (r *settingRepository) SetValue(key, value string) error {
	var setting model.SystemSetting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = model.SystemSetting{SettingKey: key, SettingValue: value}
		if err := r.db.Create(&setting).Error; err != nil {
			return wrapDBErrorf(err, "创建系统设置 key=%s", key)
		}
		return nil
	}
	if err != nil {
		return wrapDBErrorf(err, "查询系统设置 key=%s", key)
	}
	setting.SettingValue = value
	if err := r.db.Save(&setting).Error; err != nil {
		return wrapDBErrorf(err, "更新系统设置 key=%s", key)
	}
	return nil
}
