package request

// AddChannelRequest 把信道加入信道组的指定插槽
// SlotNumber 用指针以区分"未传"和"传 0"（0 号为主插槽，合法值）
// 使用位置:
//   - internal/handler/group_handler.go: AddChannel
type AddChannelRequest struct {
	GroupId    string `json:"group_id" binding:"required"`
	ChannelId  string `json:"channel_id" binding:"required"`
	SlotNumber *int   `json:"slot_number" binding:"required"`
}
