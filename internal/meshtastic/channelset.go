// Package meshtastic 实现 Meshtastic 分享 URL 的信道集编解码与合并
// 分享 URL 形如 https://meshtastic.org/e/#<payload>，payload 是 URL-safe base64
// 编码的 ChannelSet protobuf 消息（去掉了补位等号）
package meshtastic

// ChannelSettings 单个信道的设置（ChannelSet 中 settings 字段的一项）
// 解析为显式结构体，未识别的字段原样保留在 Unknown 中，保证重编码按位兼容
type ChannelSettings struct {
	ChannelNum      uint32 // 信道号（协议中已废弃，仍需透传）
	Psk             []byte // 信道密钥
	Name            string // 信道名
	Id              uint32 // 信道id (fixed32)
	UplinkEnabled   bool   // 是否允许上行
	DownlinkEnabled bool   // 是否允许下行
	ModuleSettings  []byte // module_settings 子消息，原样透传
	Unknown         []byte // 未识别字段的原始字节
}

// LoraConfig LoRa 调制解调器配置（ChannelSet 中 lora_config 字段）
// 组内所有信道共用一套，合并时采用第一个出现的配置
type LoraConfig struct {
	UsePreset       bool    // 是否使用预设
	ModemPreset     uint32  // 预设编号
	Bandwidth       uint32  // 带宽
	SpreadFactor    uint32  // 扩频因子
	CodingRate      uint32  // 编码率
	FrequencyOffset float32 // 频率偏移
	Region          uint32  // 区域
	HopLimit        uint32  // 跳数限制
	TxEnabled       bool    // 是否允许发射
	TxPower         int32   // 发射功率
	ChannelNum      uint32  // LoRa 信道号
	Unknown         []byte  // 未识别字段的原始字节
}

// ChannelSet 一条分享 URL 携带的完整信道集
// Settings 的顺序即设备导入后的槽位顺序
type ChannelSet struct {
	Settings   []*ChannelSettings // 按槽位排列的信道设置
	LoraConfig *LoraConfig        // 可选的共享调制解调器配置
	Unknown    []byte             // 未识别字段的原始字节
}

// ChannelSet 各字段的 protobuf 字段号
const (
	fieldSetSettings   = 1
	fieldSetLoraConfig = 2
)

// ChannelSettings 各字段的 protobuf 字段号
const (
	fieldChChannelNum      = 1
	fieldChPsk             = 2
	fieldChName            = 3
	fieldChId              = 4
	fieldChUplinkEnabled   = 5
	fieldChDownlinkEnabled = 6
	fieldChModuleSettings  = 7
)

// LoraConfig 各字段的 protobuf 字段号
const (
	fieldLoraUsePreset       = 1
	fieldLoraModemPreset     = 2
	fieldLoraBandwidth       = 3
	fieldLoraSpreadFactor    = 4
	fieldLoraCodingRate      = 5
	fieldLoraFrequencyOffset = 6
	fieldLoraRegion          = 7
	fieldLoraHopLimit        = 8
	fieldLoraTxEnabled       = 9
	fieldLoraTxPower         = 10
	fieldLoraChannelNum      = 11
)
