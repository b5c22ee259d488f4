// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"tak_portal_server/internal/infrastructure/middleware"
)

// RegisterAuthRoutes 注册认证相关路由
// 登录和刷新令牌公开访问；用户管理挂 JWT + 管理员中间件
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", rt.handlers.Auth.Login)               // 密码登录
		authGroup.POST("/refreshToken", rt.handlers.Auth.RefreshToken) // 刷新令牌
	}

	authedGroup := r.Group("/auth", middleware.JWTAuth())
	{
		authedGroup.GET("/myInfo", rt.handlers.Auth.GetMyInfo) // 当前用户信息
	}

	adminGroup := r.Group("/auth", middleware.JWTAuth(), middleware.AdminAuth(rt.services.Auth))
	{
		adminGroup.POST("/createUser", rt.handlers.Auth.CreateUser) // 创建用户
	}
}
