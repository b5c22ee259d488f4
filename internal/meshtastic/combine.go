package meshtastic

import (
	"sort"

	"go.uber.org/zap"
)

// MemberURL 合并输入：组内一个成员信道的分享 URL 与槽位号
type MemberURL struct {
	ChannelName string // 信道名，仅用于日志
	Url         string // 单信道分享 URL，可能为空
	SlotNumber  int    // 槽位号 0-7
}

// Combiner 合并引擎：把组内每个成员的单信道 URL 合并为一条多信道分享 URL
// 编解码器通过构造函数注入；引擎自身绝不向调用方抛错，
// 任何引擎级失败都降级为回退 URL（槽位 0 的原始 URL，其次第一个可用 URL，否则 nil）
type Combiner struct {
	codec Codec
}

// NewCombiner 创建合并引擎，codec 可以为 nil（此时只走回退路径）
func NewCombiner(codec Codec) *Combiner {
	return &Combiner{codec: codec}
}

// Combine 按槽位顺序合并成员信道设置
// 返回 nil 表示该组没有可用 URL（空组或全部成员无 URL）
//
// 规则：
//  1. 过滤掉没有 URL 的成员，全滤空则返回 nil
//  2. 逐个解码成员 URL，畸形 URL（无 #、base64/protobuf 解析失败）记日志跳过，不中断整体
//  3. 按槽位顺序累加每个成员的信道设置；LoRa 配置采用第一个出现的，
//     后续的不再覆盖——组内信道约定共用同一套调制解调器配置，不做冲突調解
//  4. 至少合并到一条信道设置时重编码为标准分享 URL
//  5. 引擎级失败（编解码器缺失、重编码失败、全部成员解码失败）回退到
//     槽位 0 成员的原始 URL，其次第一个有 URL 的成员，最后 nil
func (c *Combiner) Combine(members []MemberURL) *string {
	usable := make([]MemberURL, 0, len(members))
	for _, m := range members {
		if m.Url == "" {
			continue
		}
		usable = append(usable, m)
	}
	if len(usable) == 0 {
		return nil
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].SlotNumber < usable[j].SlotNumber
	})

	if c.codec == nil {
		zap.L().Warn("channel set codec unavailable, falling back to member url")
		return fallbackUrl(usable)
	}

	combined := &ChannelSet{}
	for _, m := range usable {
		set, err := DecodeURL(c.codec, m.Url)
		if err != nil {
			// 单个成员解码失败只跳过该成员
			zap.L().Warn("skip malformed channel share url",
				zap.String("channel", m.ChannelName),
				zap.Int("slot", m.SlotNumber),
				zap.Error(err),
			)
			continue
		}
		combined.Settings = append(combined.Settings, set.Settings...)
		if combined.LoraConfig == nil && set.LoraConfig != nil {
			combined.LoraConfig = set.LoraConfig
			zap.L().Debug("combined channel set lora config taken from member",
				zap.String("channel", m.ChannelName),
				zap.Int("slot", m.SlotNumber),
			)
		}
	}

	if len(combined.Settings) == 0 {
		// 全部成员都解码失败，降级为回退 URL
		zap.L().Warn("no decodable member urls, falling back")
		return fallbackUrl(usable)
	}

	url, err := EncodeURL(c.codec, combined)
	if err != nil {
		zap.L().Error("encode combined channel set failed, falling back", zap.Error(err))
		return fallbackUrl(usable)
	}
	return &url
}

// fallbackUrl 回退路径：优先槽位 0 成员的原始 URL，其次第一个有 URL 的成员
// 入参已按槽位排序且 URL 非空
func fallbackUrl(usable []MemberURL) *string {
	for _, m := range usable {
		if m.SlotNumber == 0 {
			u := m.Url
			return &u
		}
	}
	u := usable[0].Url
	return &u
}
