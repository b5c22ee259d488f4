package middleware

import (
	"net/http"

	"tak_portal_server/internal/service"
	"tak_portal_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AdminAuth 管理员校验中间件，必须挂在 JWTAuth 之后
// 普通用户访问管理接口时返回统一信封里的无权访问错误
func AdminAuth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetString("user_id")
		user, err := authSvc.GetUserInfo(userId)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "用户不存在",
			})
			return
		}
		if user.IsAdmin != 1 {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"code": errorx.CodeForbidden,
				"msg":  "需要管理员权限",
			})
			return
		}
		c.Next()
	}
}
