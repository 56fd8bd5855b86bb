package utils

import "strings"

// NormalizePhone 把渠道身份归一成网关期望的国际格式（带 + 前缀）。
// Meta webhook 的 from 字段是不带 + 的纯数字，如 5215512345678。
func NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	digits := sb.String()
	if digits == "" {
		return ""
	}

	return "+" + digits
}
