package request

// CreateRadioRequest 登记电台请求
// 使用位置:
//   - internal/handler/radio_handler.go: CreateRadio
type CreateRadioRequest struct {
	Name             string `json:"name" binding:"required"`
	RadioType        string `json:"radio_type"`
	ShortName        string `json:"short_name"`
	LongName         string `json:"long_name"`
	Mac              string `json:"mac"`
	AssignedUserUuid string `json:"assigned_user_uuid"`
	OwnerUuid        string `json:"owner_uuid"`
}
