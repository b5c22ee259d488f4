package meshtastic

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Codec 信道集编解码接口
// 合并引擎通过该接口使用编解码器；注入 nil 时引擎降级为回退路径
type Codec interface {
	// Decode 解析 ChannelSet 二进制
	Decode(data []byte) (*ChannelSet, error)
	// Encode 序列化 ChannelSet 二进制
	Encode(set *ChannelSet) ([]byte, error)
}

// protoCodec Codec 的 protobuf wire 实现
// 按 Meshtastic AppOnly.ChannelSet 消息布局手工编解码，
// 已识别字段解析进结构体，未识别字段原样透传，保证重编码按位兼容
type protoCodec struct{}

// NewCodec 创建默认编解码器
func NewCodec() Codec {
	return protoCodec{}
}

// Decode 解析 ChannelSet 二进制
func (protoCodec) Decode(data []byte) (*ChannelSet, error) {
	set := &ChannelSet{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("channel set: bad tag: %w", protowire.ParseError(n))
		}
		rest := b[n:]
		switch {
		case num == fieldSetSettings && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(rest)
			if m < 0 {
				return nil, fmt.Errorf("channel set: settings: %w", protowire.ParseError(m))
			}
			ch, err := decodeChannelSettings(v)
			if err != nil {
				return nil, err
			}
			set.Settings = append(set.Settings, ch)
			b = rest[m:]
		case num == fieldSetLoraConfig && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(rest)
			if m < 0 {
				return nil, fmt.Errorf("channel set: lora config: %w", protowire.ParseError(m))
			}
			lc, err := decodeLoraConfig(v)
			if err != nil {
				return nil, err
			}
			set.LoraConfig = lc
			b = rest[m:]
		default:
			// 未识别字段原样保留，保证新版本固件的 URL 位级兼容
			m := protowire.ConsumeFieldValue(num, typ, rest)
			if m < 0 {
				return nil, fmt.Errorf("channel set: field %d: %w", num, protowire.ParseError(m))
			}
			set.Unknown = append(set.Unknown, b[:n+m]...)
			b = rest[m:]
		}
	}
	return set, nil
}

// Encode 序列化 ChannelSet 二进制
func (protoCodec) Encode(set *ChannelSet) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("channel set: nil input")
	}
	var out []byte
	for _, ch := range set.Settings {
		if ch == nil {
			continue
		}
		body := encodeChannelSettings(ch)
		out = protowire.AppendTag(out, fieldSetSettings, protowire.BytesType)
		out = protowire.AppendBytes(out, body)
	}
	if set.LoraConfig != nil {
		body := encodeLoraConfig(set.LoraConfig)
		out = protowire.AppendTag(out, fieldSetLoraConfig, protowire.BytesType)
		out = protowire.AppendBytes(out, body)
	}
	out = append(out, set.Unknown...)
	return out, nil
}

// decodeChannelSettings 解析单个信道设置子消息
func decodeChannelSettings(data []byte) (*ChannelSettings, error) {
	ch := &ChannelSettings{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("channel settings: bad tag: %w", protowire.ParseError(n))
		}
		rest := b[n:]
		switch {
		case num == fieldChChannelNum && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.ChannelNum = uint32(v)
			b = rest[m:]
		case num == fieldChPsk && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.Psk = append([]byte(nil), v...)
			b = rest[m:]
		case num == fieldChName && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.Name = string(v)
			b = rest[m:]
		case num == fieldChId && typ == protowire.Fixed32Type:
			v, m := protowire.ConsumeFixed32(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.Id = v
			b = rest[m:]
		case num == fieldChUplinkEnabled && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.UplinkEnabled = v != 0
			b = rest[m:]
		case num == fieldChDownlinkEnabled && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.DownlinkEnabled = v != 0
			b = rest[m:]
		case num == fieldChModuleSettings && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ch.ModuleSettings = append([]byte(nil), v...)
			b = rest[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, rest)
			if m < 0 {
				return nil, fmt.Errorf("channel settings: field %d: %w", num, protowire.ParseError(m))
			}
			// 原样保留 tag + value
			ch.Unknown = append(ch.Unknown, b[:n+m]...)
			b = rest[m:]
		}
	}
	return ch, nil
}

// encodeChannelSettings 序列化单个信道设置，proto3 语义：零值字段不输出
func encodeChannelSettings(ch *ChannelSettings) []byte {
	var out []byte
	if ch.ChannelNum != 0 {
		out = protowire.AppendTag(out, fieldChChannelNum, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(ch.ChannelNum))
	}
	if len(ch.Psk) > 0 {
		out = protowire.AppendTag(out, fieldChPsk, protowire.BytesType)
		out = protowire.AppendBytes(out, ch.Psk)
	}
	if ch.Name != "" {
		out = protowire.AppendTag(out, fieldChName, protowire.BytesType)
		out = protowire.AppendString(out, ch.Name)
	}
	if ch.Id != 0 {
		out = protowire.AppendTag(out, fieldChId, protowire.Fixed32Type)
		out = protowire.AppendFixed32(out, ch.Id)
	}
	if ch.UplinkEnabled {
		out = protowire.AppendTag(out, fieldChUplinkEnabled, protowire.VarintType)
		out = protowire.AppendVarint(out, 1)
	}
	if ch.DownlinkEnabled {
		out = protowire.AppendTag(out, fieldChDownlinkEnabled, protowire.VarintType)
		out = protowire.AppendVarint(out, 1)
	}
	if len(ch.ModuleSettings) > 0 {
		out = protowire.AppendTag(out, fieldChModuleSettings, protowire.BytesType)
		out = protowire.AppendBytes(out, ch.ModuleSettings)
	}
	out = append(out, ch.Unknown...)
	return out
}

// decodeLoraConfig 解析 LoRa 配置子消息
func decodeLoraConfig(data []byte) (*LoraConfig, error) {
	lc := &LoraConfig{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("lora config: bad tag: %w", protowire.ParseError(n))
		}
		rest := b[n:]
		consumed := false
		if typ == protowire.VarintType {
			v, m := protowire.ConsumeVarint(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			consumed = true
			switch num {
			case fieldLoraUsePreset:
				lc.UsePreset = v != 0
			case fieldLoraModemPreset:
				lc.ModemPreset = uint32(v)
			case fieldLoraBandwidth:
				lc.Bandwidth = uint32(v)
			case fieldLoraSpreadFactor:
				lc.SpreadFactor = uint32(v)
			case fieldLoraCodingRate:
				lc.CodingRate = uint32(v)
			case fieldLoraRegion:
				lc.Region = uint32(v)
			case fieldLoraHopLimit:
				lc.HopLimit = uint32(v)
			case fieldLoraTxEnabled:
				lc.TxEnabled = v != 0
			case fieldLoraTxPower:
				lc.TxPower = int32(v)
			case fieldLoraChannelNum:
				lc.ChannelNum = uint32(v)
			default:
				consumed = false
			}
			if consumed {
				b = rest[m:]
			}
		} else if num == fieldLoraFrequencyOffset && typ == protowire.Fixed32Type {
			v, m := protowire.ConsumeFixed32(rest)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			lc.FrequencyOffset = math.Float32frombits(v)
			consumed = true
			b = rest[m:]
		}
		if !consumed {
			m := protowire.ConsumeFieldValue(num, typ, rest)
			if m < 0 {
				return nil, fmt.Errorf("lora config: field %d: %w", num, protowire.ParseError(m))
			}
			lc.Unknown = append(lc.Unknown, b[:n+m]...)
			b = rest[m:]
		}
	}
	return lc, nil
}

// encodeLoraConfig 序列化 LoRa 配置，proto3 语义：零值字段不输出
func encodeLoraConfig(lc *LoraConfig) []byte {
	var out []byte
	if lc.UsePreset {
		out = protowire.AppendTag(out, fieldLoraUsePreset, protowire.VarintType)
		out = protowire.AppendVarint(out, 1)
	}
	if lc.ModemPreset != 0 {
		out = protowire.AppendTag(out, fieldLoraModemPreset, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.ModemPreset))
	}
	if lc.Bandwidth != 0 {
		out = protowire.AppendTag(out, fieldLoraBandwidth, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.Bandwidth))
	}
	if lc.SpreadFactor != 0 {
		out = protowire.AppendTag(out, fieldLoraSpreadFactor, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.SpreadFactor))
	}
	if lc.CodingRate != 0 {
		out = protowire.AppendTag(out, fieldLoraCodingRate, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.CodingRate))
	}
	if lc.FrequencyOffset != 0 {
		out = protowire.AppendTag(out, fieldLoraFrequencyOffset, protowire.Fixed32Type)
		out = protowire.AppendFixed32(out, math.Float32bits(lc.FrequencyOffset))
	}
	if lc.Region != 0 {
		out = protowire.AppendTag(out, fieldLoraRegion, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.Region))
	}
	if lc.HopLimit != 0 {
		out = protowire.AppendTag(out, fieldLoraHopLimit, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.HopLimit))
	}
	if lc.TxEnabled {
		out = protowire.AppendTag(out, fieldLoraTxEnabled, protowire.VarintType)
		out = protowire.AppendVarint(out, 1)
	}
	if lc.TxPower != 0 {
		out = protowire.AppendTag(out, fieldLoraTxPower, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.TxPower))
	}
	if lc.ChannelNum != 0 {
		out = protowire.AppendTag(out, fieldLoraChannelNum, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(lc.ChannelNum))
	}
	out = append(out, lc.Unknown...)
	return out
}
