package roster

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

// Engine 排班對帳引擎
// 純計算：輸入排班表、角色表與完診時間對照表，輸出修正清單
// 不修改輸入資料，寫回由呼叫端確認後執行
type Engine struct {
	policy         Policy
	compose        ComposeConfig
	flagshipMarker string

	suppressRoles map[model.StaffRole]bool // 預設不套用的角色
	requireDelay  bool                     // 僅超時時預設套用

	logger *zap.Logger
}

// EngineOptions 引擎規則設定
type EngineOptions struct {
	Policy         Policy
	Compose        ComposeConfig
	FlagshipMarker string
	SuppressRoles  []model.StaffRole
	RequireDelay   bool
}

// DefaultEngineOptions 預設引擎設定
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Policy:         DefaultPolicy(),
		Compose:        DefaultComposeConfig(),
		FlagshipMarker: "總院",
		SuppressRoles:  []model.StaffRole{model.RoleDoctor, model.RolePureMorning},
		RequireDelay:   true,
	}
}

// NewEngine 建立對帳引擎
func NewEngine(opts EngineOptions, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	suppress := make(map[model.StaffRole]bool, len(opts.SuppressRoles))
	for _, r := range opts.SuppressRoles {
		suppress[r] = true
	}
	return &Engine{
		policy:         opts.Policy,
		compose:        opts.Compose,
		flagshipMarker: opts.FlagshipMarker,
		suppressRoles:  suppress,
		requireDelay:   opts.RequireDelay,
		logger:         logger,
	}
}

// IsFlagship 以診所名稱關鍵字判斷是否為旗艦診所
func (e *Engine) IsFlagship(clinic string) bool {
	return e.flagshipMarker != "" && strings.Contains(clinic, e.flagshipMarker)
}

// Reconcile 逐列逐日比對排班表與完診時間，產生修正清單
// targetDates 為空時處理所有日期欄位；只處理對照表有資料的日期
// 單格解析失敗只影響該格，不中斷整批處理
func (e *Engine) Reconcile(table *model.ScheduleTable, roles model.RoleAssignments, lookup *model.CompletionLookup, targetDates []string) *model.ReconcileResult {
	result := &model.ReconcileResult{Changes: []model.ChangeRecord{}}
	if table == nil || lookup == nil || len(lookup.Records) == 0 {
		return result
	}

	flagship := e.IsFlagship(lookup.Clinic)

	dates := targetDates
	if len(dates) == 0 {
		dates = table.DateColumns()
	}

	for _, row := range table.Rows {
		name := strings.TrimSpace(row[table.NameColumn])
		if name == "" {
			continue
		}
		result.RowsScanned++

		role := roles.RoleOf(name)
		pureMorning := role == model.RolePureMorning

		for _, date := range dates {
			record, ok := lookup.Get(date)
			if !ok {
				continue
			}

			cell := strings.TrimSpace(row[date])
			if cell == "" || strings.EqualFold(cell, "nan") {
				continue
			}
			result.CellsScanned++

			periods := ClassifyShift(cell)
			if periods.Empty() {
				continue
			}

			corrected := make(map[model.ShiftPeriod]string, len(periods))
			anyDelayed := false
			for _, p := range periods.Ordered() {
				actual := record.ActualFor(p)
				if actual == "" {
					continue
				}
				end, delayed := e.policy.Correct(actual, p, flagship, pureMorning)
				if end == "" {
					continue
				}
				corrected[p] = end
				if delayed {
					anyDelayed = true
				}
			}
			if len(corrected) == 0 {
				continue
			}

			newText, note := Compose(periods, corrected, flagship, e.compose)
			if note != "" {
				// 組合無定義：留給人工確認，不預設套用
				result.Changes = append(result.Changes, model.ChangeRecord{
					Name:    name,
					Date:    date,
					OldText: cell,
					NewText: newText,
					Execute: false,
					Delayed: anyDelayed,
					Note:    note,
				})
				if anyDelayed {
					result.DelayedCount++
				}
				continue
			}
			if newText == "" || newText == cell {
				continue
			}

			execute := (anyDelayed || !e.requireDelay) &&
				!e.suppressRoles[role] &&
				roles.IsActive(name)

			result.Changes = append(result.Changes, model.ChangeRecord{
				Name:    name,
				Date:    date,
				OldText: cell,
				NewText: newText,
				Execute: execute,
				Delayed: anyDelayed,
			})
			if anyDelayed {
				result.DelayedCount++
			}
		}
	}

	e.logger.Info("對帳完成",
		zap.String("clinic", lookup.Clinic),
		zap.Bool("flagship", flagship),
		zap.Int("rows", result.RowsScanned),
		zap.Int("cells", result.CellsScanned),
		zap.Int("changes", len(result.Changes)),
		zap.Int("delayed", result.DelayedCount),
	)

	return result
}

// Apply 把確認套用的修正寫回排班表
// 只處理 Execute 為真且新內容非空的紀錄，回傳實際寫入筆數
func Apply(table *model.ScheduleTable, changes []model.ChangeRecord) int {
	applied := 0
	for _, ch := range changes {
		if !ch.Execute || ch.NewText == "" {
			continue
		}
		for _, row := range table.Rows {
			if strings.TrimSpace(row[table.NameColumn]) != ch.Name {
				continue
			}
			if row[ch.Date] == ch.OldText {
				row[ch.Date] = ch.NewText
				applied++
			}
		}
	}
	return applied
}
