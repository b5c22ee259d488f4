// Package router 提供 HTTP 路由注册
// 本文件定义信道组相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"tak_portal_server/internal/infrastructure/middleware"
)

// RegisterGroupRoutes 注册信道组相关路由（需要认证）
// 列表和详情按调用者可见性过滤；成员管理和 URL 重新生成是管理员操作
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/group")
	{
		groupGroup.GET("/getGroupList", rt.handlers.Group.GetGroupList) // 可见组列表
		groupGroup.GET("/getGroupInfo", rt.handlers.Group.GetGroupInfo) // 组详情（Handler 内做可见性校验）
	}

	adminGroup := rg.Group("/group", middleware.AdminAuth(rt.services.Auth))
	{
		// ===== 组基本操作 =====
		adminGroup.GET("/getAllGroups", rt.handlers.Group.GetAllGroups) // 全量组列表
		adminGroup.POST("/createGroup", rt.handlers.Group.CreateGroup)  // 创建组
		adminGroup.POST("/updateGroup", rt.handlers.Group.UpdateGroup)  // 更新组
		adminGroup.POST("/deleteGroup", rt.handlers.Group.DeleteGroup)  // 删除组（成员信道只脱离不删除）

		// ===== 插槽成员管理 =====
		adminGroup.POST("/addChannel", rt.handlers.Group.AddChannel)               // 信道入槽
		adminGroup.POST("/removeChannel", rt.handlers.Group.RemoveChannel)         // 信道出组
		adminGroup.POST("/updateChannelSlot", rt.handlers.Group.UpdateChannelSlot) // 调槽

		// ===== 组合 URL =====
		adminGroup.POST("/regenerateUrl", rt.handlers.Group.RegenerateUrl)         // 单组重新生成
		adminGroup.POST("/regenerateAllUrls", rt.handlers.Group.RegenerateAllUrls) // 全量重新生成
	}
}
