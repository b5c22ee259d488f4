// Package radioprogram 实现写频配置装配
// 包括按电台/用户解析配置模板占位符和带权限校验的配置组装
package radioprogram

import (
	"strings"

	"tak_portal_server/internal/model"
)

// 模板里可识别的占位符，值来源于电台记录和关联用户
const (
	PlaceholderShortName = "${shortName}"
	PlaceholderLongName  = "${longName}"
	PlaceholderMac       = "${mac}"
	PlaceholderCallsign  = "${callsign}"
)

// ResolvePlaceholders 把电台/用户信息代入配置模板
// 值非空时替换全部出现；值为空时占位符原样保留并记入未解析列表，
// 让操作员知道下发的配置不完整，而不是悄悄发出残缺模板
// 四个占位符之外的 ${} 标记一律不动
// user 可以为 nil（电台没有关联用户）
func ResolvePlaceholders(template string, radio *model.Radio, user *model.UserInfo) (string, []string) {
	callsign := ""
	if user != nil {
		callsign = user.Callsign
	}

	values := []struct {
		placeholder string
		value       string
	}{
		{PlaceholderShortName, radio.ShortName},
		{PlaceholderLongName, radio.LongName},
		{PlaceholderMac, radio.Mac},
		{PlaceholderCallsign, callsign},
	}

	resolved := template
	unresolved := make([]string, 0)
	for _, v := range values {
		if !strings.Contains(resolved, v.placeholder) {
			continue
		}
		if v.value == "" {
			unresolved = append(unresolved, v.placeholder)
			continue
		}
		resolved = strings.ReplaceAll(resolved, v.placeholder, v.value)
	}
	return resolved, unresolved
}
