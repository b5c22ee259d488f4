package request

// UpdateSlotRequest 调整组内信道的插槽号
// 使用位置:
//   - internal/handler/group_handler.go: UpdateChannelSlot
type UpdateSlotRequest struct {
	GroupId    string `json:"group_id" binding:"required"`
	ChannelId  string `json:"channel_id" binding:"required"`
	SlotNumber *int   `json:"slot_number" binding:"required"`
}
