package respond

// ChannelMembershipRespond 信道所属的信道组及占用的插槽
// 使用位置:
//   - internal/handler/channel_handler.go: GetChannelGroups
type ChannelMembershipRespond struct {
	GroupId    string `json:"group_id"`
	GroupName  string `json:"group_name"`
	SlotNumber int    `json:"slot_number"`
}
