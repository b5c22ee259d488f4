package request

// RadioIdRequest 按电台 ID 操作的通用请求（查询详情、删除）
type RadioIdRequest struct {
	RadioId string `json:"radio_id" form:"radioId" binding:"required"`
}
