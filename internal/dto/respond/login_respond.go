package respond

// LoginRespond 登录 / 刷新令牌的返回数据
// 使用位置:
//   - internal/handler/auth_handler.go: Login, RefreshToken
type LoginRespond struct {
	UserId       string `json:"user_id"`
	Username     string `json:"username"`
	Callsign     string `json:"callsign"`
	IsAdmin      int8   `json:"is_admin"`
	IsRadioAdmin int8   `json:"is_radio_admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
