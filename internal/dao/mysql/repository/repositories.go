package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db         *gorm.DB             // GORM 数据库实例
	Channel    ChannelRepository    // 信道 Repository
	Group      GroupRepository      // 信道组 Repository
	Membership MembershipRepository // 槽位关联 Repository
	Radio      RadioRepository      // 电台 Repository
	User       UserRepository       // 用户 Repository
	Setting    SettingRepository    // 系统设置 Repository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Channel:    NewChannelRepository(db),
		Group:      NewGroupRepository(db),
		Membership: NewMembershipRepository(db),
		Radio:      NewRadioRepository(db),
		User:       NewUserRepository(db),
		Setting:    NewSettingRepository(db),
	}
}

// NewStubRepositories 用注入的实现拼装聚合（测试用）
// db 为 nil，此时 Transaction 直接在当前实例上执行
func NewStubRepositories(channel ChannelRepository, group GroupRepository, membership MembershipRepository,
	radio RadioRepository, user UserRepository, setting SettingRepository) *Repositories {
	return &Repositories{
		Channel:    channel,
		Group:      group,
		Membership: membership,
		Radio:      radio,
		User:       user,
		Setting:    setting,
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚：
// 成员变更和合并 URL 重新生成必须作为同一个工作单元提交
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		// 无事务环境（注入的测试实现），直接执行
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
