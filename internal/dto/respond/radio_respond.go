package respond

// RadioRespond 电台信息
// 使用位置:
//   - internal/handler/radio_handler.go: GetRadioInfo, GetRadioList
type RadioRespond struct {
	RadioId          string  `json:"radio_id"`
	Name             string  `json:"name"`
	RadioType        string  `json:"radio_type"`
	ShortName        string  `json:"short_name"`
	LongName         string  `json:"long_name"`
	Mac              string  `json:"mac"`
	AssignedUserUuid *string `json:"assigned_user_uuid"`
	OwnerUuid        *string `json:"owner_uuid"`
}
