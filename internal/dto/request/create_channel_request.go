package request

// CreateChannelRequest 创建信道请求
// Url 为空时由服务端生成随机 PSK 并编码出新的分享 URL
// 使用位置:
//   - internal/handler/channel_handler.go: CreateChannel
//   - internal/service/channel/service.go: CreateChannel
type CreateChannelRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Url             string `json:"url"`
	DeviceConfig    string `json:"device_config"`
	IsDefaultConfig int8   `json:"is_default_config"`
	ShowOnHomepage  int8   `json:"show_on_homepage"`
	IsPublic        int8   `json:"is_public"`
}
