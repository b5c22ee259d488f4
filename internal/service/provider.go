// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"tak_portal_server/internal/dao/mysql/repository"
	myredis "tak_portal_server/internal/dao/redis"
	"tak_portal_server/internal/meshtastic"
	"tak_portal_server/internal/service/auth"
	"tak_portal_server/internal/service/channel"
	"tak_portal_server/internal/service/group"
	"tak_portal_server/internal/service/radio"
	"tak_portal_server/internal/service/radioprogram"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Auth         AuthService         // 认证 Service
	Channel      ChannelService      // 信道 Service
	Group        GroupService        // 信道组 Service
	Radio        RadioService        // 电台 Service
	RadioProgram RadioProgramService // 写频 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 创建 Meshtastic 编解码器和合并引擎
//  2. 创建各个 Service 实例，注入 Repository、Cache 和引擎依赖
//  3. 返回 Services 聚合
//
// repos: Repository 层聚合实例
// cacheService: 缓存服务实例
// 返回: Services 聚合指针
func NewServices(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *Services {
	codec := meshtastic.NewCodec()
	combiner := meshtastic.NewCombiner(codec)

	return &Services{
		Auth:         auth.NewAuthService(repos, cacheService),
		Channel:      channel.NewChannelService(repos, cacheService, codec, combiner),
		Group:        group.NewGroupService(repos, cacheService, combiner),
		Radio:        radio.NewRadioService(repos),
		RadioProgram: radioprogram.NewRadioProgramService(repos),
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Group.AddChannel() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 和 Redis 初始化之后
func InitServices(repos *repository.Repositories, cacheService myredis.AsyncCacheService) {
	Svc = NewServices(repos, cacheService)
}
