// Package timefmt 将秒数格式化为 HH:MM:SS
package timefmt

import "fmt"

// Format 返回零填充的 HH:MM:SS，小时不按 24 取模
func Format(seconds uint64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatFloat 截断小数部分后格式化，负数按 0 处理
func FormatFloat(seconds float64) string {
	if seconds < 0 {
		return Format(0)
	}
	return Format(uint64(seconds))
}
