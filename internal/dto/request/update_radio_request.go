package request

// UpdateRadioRequest 更新电台信息请求，指针字段为空表示不修改
// 使用位置:
//   - internal/handler/radio_handler.go: UpdateRadio
type UpdateRadioRequest struct {
	RadioId          string  `json:"radio_id" binding:"required"`
	Name             *string `json:"name"`
	ShortName        *string `json:"short_name"`
	LongName         *string `json:"long_name"`
	Mac              *string `json:"mac"`
	AssignedUserUuid *string `json:"assigned_user_uuid"`
	OwnerUuid        *string `json:"owner_uuid"`
}
