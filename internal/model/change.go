package model

// ChangeRecord 單一儲存格的修正紀錄
// 由對帳引擎產生，經使用者確認後才寫回排班表
type ChangeRecord struct {
	Name    string `json:"name"`
	Date    string `json:"date"` // YYYY-MM-DD
	OldText string `json:"oldText"`
	NewText string `json:"newText"`
	Execute bool   `json:"execute"` // 預設是否套用
	Delayed bool   `json:"delayed"` // 任一時段超時
	Note    string `json:"note,omitempty"`
}

// ReconcileResult 一次對帳的結果摘要
type ReconcileResult struct {
	Changes      []ChangeRecord `json:"changes"`
	RowsScanned  int            `json:"rowsScanned"`
	CellsScanned int            `json:"cellsScanned"`
	DelayedCount int            `json:"delayedCount"`
}
