package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	sevenDigits      = regexp.MustCompile(`^\d{7}$`)
	parenSuffix      = regexp.MustCompile(`[（(][^（()）]*[)）]\s*$`)
	canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// 依序嘗試的日期格式
// 前段為完整年月日，後段為只有月日的表頭（年份取處理年度）
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"01-02",
	"1-2",
	"01/02",
	"1/2",
}

// Date 日期標準化為 YYYY-MM-DD
// 支援民國七碼 (1141201)、斜線/點分隔、只有月日的表頭
// 無法解析時原樣回傳（表頭欄位也會被當日期候選掃描，不可丟錯誤）
// 呼叫端若要把結果當日期欄位使用，需再以 IsCanonicalDate 驗證
func Date(raw string, currentYear int) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}

	// 民國年七碼：前三碼 + 1911 為西元年，不驗證月日範圍
	if sevenDigits.MatchString(s) {
		year, _ := strconv.Atoi(s[:3])
		month, _ := strconv.Atoi(s[3:5])
		day, _ := strconv.Atoi(s[5:7])
		return fmt.Sprintf("%04d-%02d-%02d", year+1911, month, day)
	}

	// 去除括號註記，例如 "12/1(一)"
	s = strings.TrimSpace(parenSuffix.ReplaceAllString(s, ""))

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		year := t.Year()
		// 年份 0 表示格式不含年；1900 是「無年份」的常見哨兵值
		if year == 0 || year == 1900 {
			year = currentYear
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, int(t.Month()), t.Day())
	}

	// 盡力而為：解析失敗原樣回傳
	return raw
}

// IsCanonicalDate 是否為標準 YYYY-MM-DD 格式
func IsCanonicalDate(s string) bool {
	return canonicalPattern.MatchString(s)
}
