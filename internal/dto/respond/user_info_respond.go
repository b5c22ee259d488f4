package respond

// UserInfoRespond 用户基本信息
// 使用位置:
//   - internal/handler/auth_handler.go: GetUserInfo
type UserInfoRespond struct {
	UserId       string `json:"user_id"`
	Username     string `json:"username"`
	Callsign     string `json:"callsign"`
	Role         string `json:"role"`
	IsAdmin      int8   `json:"is_admin"`
	IsRadioAdmin int8   `json:"is_radio_admin"`
}
