package request

// RemoveChannelRequest 把信道移出信道组
// 使用位置:
//   - internal/handler/group_handler.go: RemoveChannel
type RemoveChannelRequest struct {
	GroupId   string `json:"group_id" binding:"required"`
	ChannelId string `json:"channel_id" binding:"required"`
}
