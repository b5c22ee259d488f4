package respond

// ProgramConfigRespond 写频配置装配结果
// ResolvedConfig 为占位符替换后的配置文本；占位符缺值时保留原样并记入 UnresolvedPlaceholders
// 使用位置:
//   - internal/handler/radio_handler.go: ProgramConfig
type ProgramConfigRespond struct {
	RadioId                string               `json:"radio_id"`
	RadioName              string               `json:"radio_name"`
	ShortName              string               `json:"short_name"`
	LongName               string               `json:"long_name"`
	UserId                 *string              `json:"user_id"`
	Callsign               *string              `json:"callsign"`
	Channels               []ChannelSlotRespond `json:"channels"`
	CombinedUrl            *string              `json:"combined_url"`
	ResolvedConfig         string               `json:"resolved_config"`
	UnresolvedPlaceholders []string             `json:"unresolved_placeholders"`
}
