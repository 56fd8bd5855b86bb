package utils

import (
	"time"
)

// FormatCheckTime 把网关返回的打卡时间渲染成用户可读的 HH:MM。
// timestamp 为 RFC3339，tz 为 IANA 时区名；解析失败时原样返回，
// 宁可展示原始值也不丢掉时间信息。
func FormatCheckTime(timestamp, tz string) string {
	if timestamp == "" {
		return ""
	}

	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}

	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			t = t.In(loc)
		}
	}

	return t.Format("15:04")
}
