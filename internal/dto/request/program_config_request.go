package request

// ProgramConfigRequest 电台写频配置请求
// ChannelGroupId 和 ChannelId 必须恰好传一个
// 使用位置:
//   - internal/handler/radio_handler.go: ProgramConfig
type ProgramConfigRequest struct {
	RadioId        string `json:"radio_id" binding:"required"`
	ChannelGroupId string `json:"channel_group_id"`
	ChannelId      string `json:"channel_id"`
}
