package request

// UpdateGroupRequest 更新信道组请求
// 指针字段为空表示不修改；Roles/Users 非空时整体替换授权列表
// 使用位置:
//   - internal/handler/group_handler.go: UpdateGroup
type UpdateGroupRequest struct {
	GroupId        string    `json:"group_id" binding:"required"`
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	ConfigTemplate *string   `json:"config_template"`
	IsPublic       *int8     `json:"is_public"`
	ShowOnHomepage *int8     `json:"show_on_homepage"`
	Roles          *[]string `json:"roles"`
	Users          *[]string `json:"users"`
}
