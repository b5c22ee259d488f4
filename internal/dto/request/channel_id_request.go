package request

// ChannelIdRequest 按信道 ID 操作的通用请求（查询详情、删除、查成员组）
type ChannelIdRequest struct {
	ChannelId string `json:"channel_id" form:"channelId" binding:"required"`
}
