package model

// ShiftPeriod 診次時段
type ShiftPeriod int

const (
	PeriodMorning   ShiftPeriod = iota // 早診
	PeriodAfternoon                    // 午診
	PeriodEvening                      // 晚診
)

// AllPeriods 按診次順序排列的全部時段
var AllPeriods = []ShiftPeriod{PeriodMorning, PeriodAfternoon, PeriodEvening}

// String 時段名稱
func (p ShiftPeriod) String() string {
	switch p {
	case PeriodMorning:
		return "morning"
	case PeriodAfternoon:
		return "afternoon"
	case PeriodEvening:
		return "evening"
	}
	return "unknown"
}

// Label 時段中文名稱
func (p ShiftPeriod) Label() string {
	switch p {
	case PeriodMorning:
		return "早診"
	case PeriodAfternoon:
		return "午診"
	case PeriodEvening:
		return "晚診"
	}
	return ""
}

// PeriodSet 一格班別文字涵蓋的時段集合
type PeriodSet map[ShiftPeriod]bool

// NewPeriodSet 建立時段集合
func NewPeriodSet(periods ...ShiftPeriod) PeriodSet {
	s := make(PeriodSet, len(periods))
	for _, p := range periods {
		s[p] = true
	}
	return s
}

// Add 加入時段
func (s PeriodSet) Add(p ShiftPeriod) {
	s[p] = true
}

// Has 是否包含時段
func (s PeriodSet) Has(p ShiftPeriod) bool {
	return s[p]
}

// Empty 是否為空集合
func (s PeriodSet) Empty() bool {
	return len(s) == 0
}

// Ordered 依診次順序回傳包含的時段
func (s PeriodSet) Ordered() []ShiftPeriod {
	out := make([]ShiftPeriod, 0, len(s))
	for _, p := range AllPeriods {
		if s[p] {
			out = append(out, p)
		}
	}
	return out
}
