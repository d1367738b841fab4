package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay 時間文字標準化為當日分鐘數
// 支援 H、H:MM、HH:MM、H:MM:SS（秒數捨去）
// 無法解析時 ok 為 false，不丟錯誤
func TimeOfDay(raw string) (minutes int, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}

	minute := 0
	if len(parts) >= 2 {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}
	// parts[2] 為秒數，紀錄來源只到分鐘精度，直接捨去

	return hour*60 + minute, true
}

// ClockText 分鐘數轉 HH:MM 文字
func ClockText(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FirstHourOfRange 取時間範圍字串第一段的小時數
// 支援 "8"、"8:30"、"8:30-12:00"
func FirstHourOfRange(token string) (hour int, ok bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, false
	}
	if idx := strings.Index(s, "-"); idx >= 0 {
		s = s[:idx]
	}
	minutes, ok := TimeOfDay(s)
	if !ok {
		return 0, false
	}
	return minutes / 60, true
}
