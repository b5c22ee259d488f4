// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"tak_portal_server/internal/handler"
	"tak_portal_server/internal/infrastructure/middleware"
	"tak_portal_server/internal/service"
)

// Router 路由注册器
// 持有 Handler 聚合和 Service 聚合（管理员中间件需要查询用户角色）
type Router struct {
	handlers *handler.Handlers
	services *service.Services
}

// NewRouter 创建路由注册器
func NewRouter(handlers *handler.Handlers, services *service.Services) *Router {
	return &Router{
		handlers: handlers,
		services: services,
	}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 登录和刷新令牌不需要认证，其余接口都挂 JWT 中间件
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r) // 认证路由（登录、刷新令牌）

	authed := r.Group("/", middleware.JWTAuth())
	rt.RegisterChannelRoutes(authed) // 信道路由
	rt.RegisterGroupRoutes(authed)   // 信道组路由
	rt.RegisterRadioRoutes(authed)   // 电台路由
}
