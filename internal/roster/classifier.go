package roster

import (
	"strings"
	"unicode"

	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
)

// 班別文字中的時段標記
const (
	markerFullDay   = "全"
	markerMorning   = "早"
	markerAfternoon = "午"
	markerEvening   = "晚"
)

// 時段數字判斷界線（以起始小時計）
const (
	afternoonStartHour = 13
	eveningStartHour   = 18
)

// ClassifyShift 解析班別文字涵蓋的時段
// 以逗號、換行、空白切割；含「全」視為三診全到
// 不含時段標記的片段嘗試以起始小時判斷時段，解析失敗直接忽略
func ClassifyShift(cell string) model.PeriodSet {
	periods := model.NewPeriodSet()

	tokens := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == '，' || r == '\n' || r == '\r' || unicode.IsSpace(r)
	})

	for _, tok := range tokens {
		if tok == "" {
			continue
		}

		if strings.Contains(tok, markerFullDay) {
			periods.Add(model.PeriodMorning)
			periods.Add(model.PeriodAfternoon)
			periods.Add(model.PeriodEvening)
			continue
		}

		marked := false
		if strings.Contains(tok, markerMorning) {
			periods.Add(model.PeriodMorning)
			marked = true
		}
		if strings.Contains(tok, markerAfternoon) {
			periods.Add(model.PeriodAfternoon)
			marked = true
		}
		if strings.Contains(tok, markerEvening) {
			periods.Add(model.PeriodEvening)
			marked = true
		}
		if marked {
			continue
		}

		// 無標記：以時間範圍起始小時判斷
		hour, ok := normalize.FirstHourOfRange(tok)
		if !ok {
			continue
		}
		switch {
		case hour < afternoonStartHour:
			periods.Add(model.PeriodMorning)
		case hour < eveningStartHour:
			periods.Add(model.PeriodAfternoon)
		default:
			periods.Add(model.PeriodEvening)
		}
	}

	return periods
}
