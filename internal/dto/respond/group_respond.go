package respond

// GroupSummaryRespond 信道组列表项，Channels 按插槽升序
// Roles 仅管理员全量列表填充
// 使用位置:
//   - internal/handler/group_handler.go: GetGroupList, GetAllGroups
type GroupSummaryRespond struct {
	GroupId        string               `json:"group_id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	CombinedUrl    *string              `json:"combined_url"`
	IsPublic       int8                 `json:"is_public"`
	ShowOnHomepage int8                 `json:"show_on_homepage"`
	ChannelCount   int                  `json:"channel_count"`
	Channels       []ChannelSlotRespond `json:"channels"`
	Roles          []string             `json:"roles,omitempty"`
}

// GroupDetailRespond 信道组详情，含按插槽升序排列的成员信道
// 使用位置:
//   - internal/handler/group_handler.go: GetGroupInfo
type GroupDetailRespond struct {
	GroupId        string               `json:"group_id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	CombinedUrl    *string              `json:"combined_url"`
	ConfigTemplate string               `json:"config_template"`
	IsPublic       int8                 `json:"is_public"`
	ShowOnHomepage int8                 `json:"show_on_homepage"`
	Roles          []string             `json:"roles"`
	Users          []string             `json:"users"`
	Channels       []ChannelSlotRespond `json:"channels"`
}
