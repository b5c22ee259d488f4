package request

// CreateUserRequest 创建用户请求（管理员功能）
// 使用位置:
//   - internal/handler/auth_handler.go: CreateUser
//   - internal/service/auth/service.go: CreateUser
type CreateUserRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
	Callsign     string `json:"callsign"`
	Role         string `json:"role"`
	IsAdmin      int8   `json:"is_admin"`
	IsRadioAdmin int8   `json:"is_radio_admin"`
}
