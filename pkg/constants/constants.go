package constants

const (
	MAX_SLOT_COUNT             = 8     // 每个信道组最多 8 个槽位（Meshtastic 设备限制）
	PRIMARY_SLOT               = 0     // 槽位 0 为主信道
	PSK_SIZE                   = 32    // 新建信道默认生成 256 位 PSK
	REDIS_TIMEOUT              = 1     // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168   // Refresh Token 有效期（小时），168小时 = 7天

	// MESHTASTIC_URL_PREFIX 分享 URL 的标准前缀，payload 在最后一个 # 之后
	MESHTASTIC_URL_PREFIX = "https://meshtastic.org/e/#"

	// RADIO_TYPE_MESHTASTIC 可下发信道配置的设备类型
	RADIO_TYPE_MESHTASTIC = "meshtastic"

	// SETTING_SELF_PROGRAMMING 系统设置键：是否允许非管理员给自己的设备下发配置
	SETTING_SELF_PROGRAMMING = "radio_self_programming_enabled"
)
