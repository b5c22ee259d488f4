package meshtastic

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// URLPrefix 标准分享 URL 前缀
const URLPrefix = "https://meshtastic.org/e/#"

// ExtractPayload 取分享 URL 最后一个 # 之后的 payload
// 没有 # 的视为畸形/历史遗留 URL
func ExtractPayload(url string) (string, error) {
	idx := strings.LastIndex(url, "#")
	if idx < 0 {
		return "", fmt.Errorf("share url has no '#' fragment: %s", url)
	}
	payload := url[idx+1:]
	if payload == "" {
		return "", fmt.Errorf("share url has empty fragment: %s", url)
	}
	return payload, nil
}

// DecodePayload 解码 payload：URL-safe base64，按需补齐等号后解析为信道集
func DecodePayload(codec Codec, payload string) (*ChannelSet, error) {
	if codec == nil {
		return nil, fmt.Errorf("channel set codec unavailable")
	}
	if m := len(payload) % 4; m != 0 {
		payload += strings.Repeat("=", 4-m)
	}
	raw, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode share url payload: %w", err)
	}
	return codec.Decode(raw)
}

// EncodeURL 序列化信道集并生成标准分享 URL（base64url，不带补位等号）
func EncodeURL(codec Codec, set *ChannelSet) (string, error) {
	if codec == nil {
		return "", fmt.Errorf("channel set codec unavailable")
	}
	raw, err := codec.Encode(set)
	if err != nil {
		return "", err
	}
	return URLPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeURL 解析完整分享 URL 为信道集
func DecodeURL(codec Codec, url string) (*ChannelSet, error) {
	payload, err := ExtractPayload(url)
	if err != nil {
		return nil, err
	}
	return DecodePayload(codec, payload)
}
