// Package router 提供 HTTP 路由注册
// 本文件定义信道相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"tak_portal_server/internal/infrastructure/middleware"
)

// RegisterChannelRoutes 注册信道相关路由（需要认证）
// 写操作和管理查询挂管理员中间件
func (rt *Router) RegisterChannelRoutes(rg *gin.RouterGroup) {
	channelGroup := rg.Group("/channel")
	{
		channelGroup.GET("/getChannelInfo", rt.handlers.Channel.GetChannelInfo) // 信道详情
		channelGroup.GET("/getChannelList", rt.handlers.Channel.GetChannelList) // 信道列表
	}

	adminGroup := rg.Group("/channel", middleware.AdminAuth(rt.services.Auth))
	{
		adminGroup.POST("/createChannel", rt.handlers.Channel.CreateChannel)              // 创建信道
		adminGroup.POST("/updateChannel", rt.handlers.Channel.UpdateChannel)              // 更新信道
		adminGroup.POST("/deleteChannel", rt.handlers.Channel.DeleteChannel)              // 删除信道
		adminGroup.POST("/syncChannel", rt.handlers.Channel.SyncChannel)                  // 外部镜像同步导入
		adminGroup.GET("/getUngroupedChannels", rt.handlers.Channel.GetUngroupedChannels) // 未入组信道
		adminGroup.GET("/getChannelGroups", rt.handlers.Channel.GetChannelGroups)         // 信道所属组
	}
}
