package respond

// ChannelSlotRespond 组内某个插槽上的信道
// 使用位置:
//   - internal/handler/group_handler.go: GetGroupInfo
//   - internal/handler/radio_handler.go: ProgramConfig
type ChannelSlotRespond struct {
	ChannelId  string  `json:"channel_id"`
	Name       string  `json:"name"`
	SlotNumber int     `json:"slot_number"`
	Url        string  `json:"url"`
	LastSynced *string `json:"last_synced"`
}
