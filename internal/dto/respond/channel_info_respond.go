package respond

// ChannelInfoRespond 信道详情
// 使用位置:
//   - internal/handler/channel_handler.go: GetChannelInfo, GetChannelList
type ChannelInfoRespond struct {
	ChannelId       string  `json:"channel_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Url             string  `json:"url"`
	DeviceConfig    string  `json:"device_config"`
	LastSynced      *string `json:"last_synced"`
	IsDefaultConfig int8    `json:"is_default_config"`
	ShowOnHomepage  int8    `json:"show_on_homepage"`
	IsPublic        int8    `json:"is_public"`
}
