// Package repository 提供数据访问层的具体实现
// 本文件实现 RadioRepository 接口
package repository

import (
	"tak_portal_server/internal/model"

	"gorm.io/gorm"
)

// radioRepository RadioRepository 接口的实现
type radioRepository struct {
	db *gorm.DB
}

// NewRadioRepository 创建 RadioRepository 实例
func NewRadioRepository(db *gorm.DB) RadioRepository {
	return &radioRepository{db: db}
}

// FindByUuid 根据 UUID 查找电台
func (r *radioRepository) FindByUuid(uuid string) (*model.Radio, error) {
	var radio model.Radio
	if err := r.db.Where("uuid = ?", uuid).First(&radio).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询电台 uuid=%s", uuid)
	}
	return &radio, nil
}

// FindAll 查找所有电台
func (r *radioRepository) FindAll() ([]model.Radio, error) {
	var radios []model.Radio
	if err := r.db.Order("name asc").Find(&radios).Error; err != nil {
		return nil, wrapDBError(err, "查询电台列表")
	}
	return radios, nil
}

// Create 创建电台
func (r *radioRepository) Create(radio *model.Radio) error {
	if err := r.db.Create(radio).Error; err != nil {
		return wrapDBErrorf(err, "创建电台 name=%s", radio.Name)
	}
	return nil
}

// Update 更新电台
func (r *radioRepository) Update(radio *model.Radio) error {
	if err := r.db.Save(radio).Error; err != nil {
		return wrapDBErrorf(err, "更新电台 uuid=%s", radio.Uuid)
	}
	return nil
}

// Delete 删除电台
func (r *radioRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Radio{}).Error; err != nil {
		return wrapDBErrorf(err, "删除电台 uuid=%s", uuid)
	}
	return nil
}
