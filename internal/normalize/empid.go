package normalize

import "strings"

// EmployeeID 員工編號標準化
// 去除空白與小數尾巴（Excel 數值欄會把 0075 讀成 75.0），補 0 至 4 碼
func EmployeeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}

	if idx := strings.Index(s, "."); idx >= 0 {
		s = s[:idx]
	}

	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
