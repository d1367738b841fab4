package roster

import (
	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
)

// Policy 收班時間修正規則
// 門檻依 (旗艦診所, 時段, 角色) 查表，時間一律以當日分鐘數比較
type Policy struct {
	LateBufferMinutes int // 超時加計的緩衝分鐘數

	MorningThreshold     int // 早診標準收班
	PureMorningThreshold int // 純早班早診標準收班
	AfternoonFlagship    int // 午診標準收班（旗艦）
	AfternoonFixed       int // 午診固定收班（非旗艦，不做動態修正）
	EveningFlagship      int // 晚診標準收班（旗艦）
	EveningThreshold     int // 晚診標準收班（非旗艦）
}

// DefaultPolicy 預設修正規則
func DefaultPolicy() Policy {
	return Policy{
		LateBufferMinutes:    5,
		MorningThreshold:     12 * 60,
		PureMorningThreshold: 13 * 60,
		AfternoonFlagship:    17 * 60,
		AfternoonFixed:       18 * 60,
		EveningFlagship:      21 * 60,
		EveningThreshold:     21*60 + 30,
	}
}

// threshold 查標準收班時間
func (p Policy) threshold(period model.ShiftPeriod, flagship, pureMorning bool) int {
	switch period {
	case model.PeriodMorning:
		if pureMorning {
			return p.PureMorningThreshold
		}
		return p.MorningThreshold
	case model.PeriodAfternoon:
		return p.AfternoonFlagship
	case model.PeriodEvening:
		if flagship {
			return p.EveningFlagship
		}
		return p.EveningThreshold
	}
	return 0
}

// Correct 依實際完診時間計算修正後收班時間
// 回傳空字串表示無資料可修正；無資料不算超時
// 超時（實際晚於標準）加計緩衝分鐘並回報 delayed；提早或準時補到標準收班
// 非旗艦午診無動態追蹤，一律回傳固定收班且不算超時
func (p Policy) Correct(actual string, period model.ShiftPeriod, flagship, pureMorning bool) (corrected string, delayed bool) {
	minutes, ok := normalize.TimeOfDay(actual)
	if !ok {
		return "", false
	}

	if period == model.PeriodAfternoon && !flagship {
		return normalize.ClockText(p.AfternoonFixed), false
	}

	threshold := p.threshold(period, flagship, pureMorning)
	if minutes > threshold {
		return normalize.ClockText(minutes + p.LateBufferMinutes), true
	}
	return normalize.ClockText(threshold), false
}
