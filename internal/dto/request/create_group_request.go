package request

// CreateGroupRequest 创建信道组请求
// 使用位置:
//   - internal/handler/group_handler.go: CreateGroup
type CreateGroupRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	ConfigTemplate string   `json:"config_template"`
	IsPublic       int8     `json:"is_public"`
	ShowOnHomepage int8     `json:"show_on_homepage"`
	Roles          []string `json:"roles"`
	Users          []string `json:"users"`
}
