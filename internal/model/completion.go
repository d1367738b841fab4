package model

// CompletionRecord 單日完診時間紀錄
// 欄位為空字串表示該時段無資料，不產生修正
type CompletionRecord struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// ActualFor 取得指定時段的實際完診時間文字
func (r CompletionRecord) ActualFor(p ShiftPeriod) string {
	switch p {
	case PeriodMorning:
		return r.Morning
	case PeriodAfternoon:
		return r.Afternoon
	case PeriodEvening:
		return r.Evening
	}
	return ""
}

// CompletionLookup 日期到完診時間紀錄的對照表
type CompletionLookup struct {
	Clinic  string                      `json:"clinic"` // 分析表上的診所名稱
	Records map[string]CompletionRecord `json:"records"`
}

// Get 取得指定日期的紀錄
func (l *CompletionLookup) Get(date string) (CompletionRecord, bool) {
	r, ok := l.Records[date]
	return r, ok
}
