package request

// GroupIdRequest 按信道组 ID 操作的通用请求（查询详情、删除、重新生成组合 URL）
type GroupIdRequest struct {
	GroupId string `json:"group_id" form:"groupId" binding:"required"`
}
