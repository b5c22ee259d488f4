// Package router 提供 HTTP 路由注册
// 本文件定义电台相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"tak_portal_server/internal/infrastructure/middleware"
)

// RegisterRadioRoutes 注册电台相关路由（需要认证）
// 写频接口对所有登录用户开放，细粒度权限在 Service 层校验
func (rt *Router) RegisterRadioRoutes(rg *gin.RouterGroup) {
	radioGroup := rg.Group("/radio")
	{
		radioGroup.GET("/getRadioInfo", rt.handlers.Radio.GetRadioInfo)    // 电台详情
		radioGroup.GET("/getRadioList", rt.handlers.Radio.GetRadioList)    // 电台列表
		radioGroup.POST("/programConfig", rt.handlers.Radio.ProgramConfig) // 装配写频配置
	}

	adminGroup := rg.Group("/radio", middleware.AdminAuth(rt.services.Auth))
	{
		adminGroup.POST("/createRadio", rt.handlers.Radio.CreateRadio) // 登记电台
		adminGroup.POST("/updateRadio", rt.handlers.Radio.UpdateRadio) // 更新电台
		adminGroup.POST("/deleteRadio", rt.handlers.Radio.DeleteRadio) // 删除电台
	}
}
