package model

import "regexp"

// 標準日期欄位格式 YYYY-MM-DD
var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDateKey 判斷欄位名稱是否為標準日期欄位
func IsDateKey(column string) bool {
	return dateKeyPattern.MatchString(column)
}

// ScheduleRow 排班表單列：欄位名稱到儲存格文字
type ScheduleRow map[string]string

// ScheduleTable 排班表
// 欄位順序與原始檔案一致；日期欄位名稱一律為 YYYY-MM-DD
type ScheduleTable struct {
	Columns []string      `json:"columns"`
	Rows    []ScheduleRow `json:"rows"`

	NameColumn string `json:"nameColumn"` // 姓名欄位
	IDColumn   string `json:"idColumn"`   // 員工編號欄位，可為空
}

// DateColumns 依欄位順序回傳所有日期欄位
func (t *ScheduleTable) DateColumns() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if IsDateKey(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names 回傳所有非空姓名（去重、保持列序）
func (t *ScheduleTable) Names() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := row[t.NameColumn]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Clone 深拷貝排班表
func (t *ScheduleTable) Clone() *ScheduleTable {
	out := &ScheduleTable{
		Columns:    append([]string(nil), t.Columns...),
		Rows:       make([]ScheduleRow, len(t.Rows)),
		NameColumn: t.NameColumn,
		IDColumn:   t.IDColumn,
	}
	for i, row := range t.Rows {
		cp := make(ScheduleRow, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}
