package respond

// SlotChangeRespond 成员变更（加入、移出、调槽）后的结果
// CombinedUrl 为变更后同一事务里重新生成的组合 URL
// 使用位置:
//   - internal/handler/group_handler.go: AddChannel, RemoveChannel, UpdateChannelSlot
type SlotChangeRespond struct {
	GroupId     string  `json:"group_id"`
	ChannelId   string  `json:"channel_id"`
	SlotNumber  int     `json:"slot_number"`
	CombinedUrl *string `json:"combined_url"`
}
