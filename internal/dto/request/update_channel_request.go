package request

// UpdateChannelRequest 更新信道请求
// 指针字段为 nil 表示不修改该字段（部分更新）
type UpdateChannelRequest struct {
	ChannelId       string  `json:"channel_id" binding:"required"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Url             *string `json:"url"`
	DeviceConfig    *string `json:"device_config"`
	IsDefaultConfig *int8   `json:"is_default_config"`
	ShowOnHomepage  *int8   `json:"show_on_homepage"`
	IsPublic        *int8   `json:"is_public"`
}
