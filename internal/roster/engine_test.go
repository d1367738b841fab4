package roster

import (
	"reflect"
	"testing"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

const testDate = "2025-12-01"

func makeTable(cells map[string]string) *model.ScheduleTable {
	table := &model.ScheduleTable{
		Columns:    []string{"姓名", testDate},
		NameColumn: "姓名",
	}
	for name, cell := range cells {
		table.Rows = append(table.Rows, model.ScheduleRow{
			"姓名":     name,
			testDate: cell,
		})
	}
	return table
}

func makeLookup(clinic string, rec model.CompletionRecord) *model.CompletionLookup {
	rec.Date = testDate
	return &model.CompletionLookup{
		Clinic:  clinic,
		Records: map[string]model.CompletionRecord{testDate: rec},
	}
}

func regularRoles(names ...string) model.RoleAssignments {
	roles := make(model.RoleAssignments)
	for _, n := range names {
		roles[n] = model.RoleAssignment{Name: n, Role: model.RoleRegular, Active: true}
	}
	return roles
}

func TestReconcile_MorningDelayNonFlagship(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "08:00-12:10"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Morning: "12:10"})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("want 1 change got %d", len(result.Changes))
	}
	ch := result.Changes[0]
	if ch.NewText != "08:00-12:15" {
		t.Fatalf("want 08:00-12:15 got %s", ch.NewText)
	}
	if !ch.Delayed || !ch.Execute {
		t.Fatalf("want delayed+execute got delayed=%v execute=%v", ch.Delayed, ch.Execute)
	}
	if result.DelayedCount != 1 {
		t.Fatalf("want delayedCount=1 got %d", result.DelayedCount)
	}
}

func TestReconcile_AfternoonFixedNonFlagship(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "午"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Afternoon: "16:30"})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("want 1 change got %d", len(result.Changes))
	}
	ch := result.Changes[0]
	if ch.NewText != "15:00-18:00" {
		t.Fatalf("want 15:00-18:00 got %s", ch.NewText)
	}
	// 固定收班不算超時，預設不勾選套用
	if ch.Delayed || ch.Execute {
		t.Fatalf("want no delay, no default execute got delayed=%v execute=%v", ch.Delayed, ch.Execute)
	}
}

func TestReconcile_FullDayFlagship(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "全"})
	lookup := makeLookup("台中總院", model.CompletionRecord{
		Morning:   "11:50",
		Afternoon: "17:20",
		Evening:   "20:55",
	})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("want 1 change got %d", len(result.Changes))
	}
	ch := result.Changes[0]
	if ch.NewText != "08:00-12:00,14:00-17:25,18:30-21:00" {
		t.Fatalf("unexpected text: %s", ch.NewText)
	}
	if !ch.Delayed || !ch.Execute {
		t.Fatalf("afternoon 17:20 exceeds 17:00, want delayed+execute")
	}
}

func TestReconcile_NoChangeWhenTextEqual(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "15:00-18:00"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Afternoon: "16:30"})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 0 {
		t.Fatalf("identical composition should not emit change, got %d", len(result.Changes))
	}
}

func TestReconcile_NoCompletionDataNoChange(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	// 格子只有早診，但分析表只有晚診資料
	table := makeTable(map[string]string{"王小明": "早"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Evening: "21:40"})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 0 {
		t.Fatalf("no data for present periods should not emit change, got %d", len(result.Changes))
	}
}

func TestReconcile_DoctorSuppressedByDefault(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"林醫師": "08:00-12:10"})
	roles := model.RoleAssignments{
		"林醫師": {Name: "林醫師", Role: model.RoleDoctor, Active: true},
	}
	lookup := makeLookup("大里診所", model.CompletionRecord{Morning: "12:10"})

	result := engine.Reconcile(table, roles, lookup, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("want 1 change got %d", len(result.Changes))
	}
	if result.Changes[0].Execute {
		t.Fatalf("doctor change should not default to execute")
	}
	if !result.Changes[0].Delayed {
		t.Fatalf("doctor change should still report delay")
	}
}

func TestReconcile_RequireDelayKnob(t *testing.T) {
	t.Parallel()
	opts := DefaultEngineOptions()
	opts.RequireDelay = false
	engine := NewEngine(opts, nil)

	// 無超時，但 require_delay 關閉時預設仍勾選
	table := makeTable(map[string]string{"王小明": "午"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Afternoon: "16:30"})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("want 1 change got %d", len(result.Changes))
	}
	if !result.Changes[0].Execute {
		t.Fatalf("with require_delay off, change should default to execute")
	}
}

func TestReconcile_NonFlagshipTripleFlagged(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "全"})
	lookup := makeLookup("大里診所", model.CompletionRecord{
		Morning:   "12:10",
		Afternoon: "16:30",
		Evening:   "21:40",
	})

	result := engine.Reconcile(table, regularRoles("王小明"), lookup, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("want 1 flagged change got %d", len(result.Changes))
	}
	ch := result.Changes[0]
	if ch.Note == "" || ch.Execute || ch.NewText != "" {
		t.Fatalf("triple should be flagged for manual review: %+v", ch)
	}
	// 早診 12:10 超過門檻，延遲也要算進統計
	if !ch.Delayed || result.DelayedCount != 1 {
		t.Fatalf("flagged delay should count: delayed=%v count=%d", ch.Delayed, result.DelayedCount)
	}
}

func TestReconcile_SkipsEmptyAndNanCells(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"甲": "", "乙": "nan", "丙": "休"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Morning: "12:10"})

	result := engine.Reconcile(table, regularRoles("甲", "乙", "丙"), lookup, nil)
	if len(result.Changes) != 0 {
		t.Fatalf("want 0 changes got %d", len(result.Changes))
	}
}

func TestReconcile_TargetDatesFilter(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "08:00-12:10"})
	lookup := makeLookup("大里診所", model.CompletionRecord{Morning: "12:10"})

	// 指定其他日期時不處理任何儲存格
	result := engine.Reconcile(table, regularRoles("王小明"), lookup, []string{"2025-12-02"})
	if len(result.Changes) != 0 {
		t.Fatalf("want 0 changes for other dates got %d", len(result.Changes))
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	t.Parallel()
	engine := NewEngine(DefaultEngineOptions(), nil)

	table := makeTable(map[string]string{"王小明": "全", "李四": "08:00-12:10"})
	lookup := makeLookup("台中總院", model.CompletionRecord{
		Morning:   "12:10",
		Afternoon: "17:20",
		Evening:   "20:55",
	})
	roles := regularRoles("王小明", "李四")

	first := engine.Reconcile(table, roles, lookup, nil)
	second := engine.Reconcile(table, roles, lookup, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconcile not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestApply_OnlyExecuteChanges(t *testing.T) {
	t.Parallel()

	table := makeTable(map[string]string{"王小明": "08:00-12:10", "林醫師": "08:00-12:10"})
	changes := []model.ChangeRecord{
		{Name: "王小明", Date: testDate, OldText: "08:00-12:10", NewText: "08:00-12:15", Execute: true},
		{Name: "林醫師", Date: testDate, OldText: "08:00-12:10", NewText: "08:00-12:15", Execute: false},
	}

	applied := Apply(table, changes)
	if applied != 1 {
		t.Fatalf("want 1 applied got %d", applied)
	}
	for _, row := range table.Rows {
		switch row["姓名"] {
		case "王小明":
			if row[testDate] != "08:00-12:15" {
				t.Fatalf("王小明 should be updated, got %s", row[testDate])
			}
		case "林醫師":
			if row[testDate] != "08:00-12:10" {
				t.Fatalf("林醫師 should be untouched, got %s", row[testDate])
			}
		}
	}
}

func TestApply_SkipsWhenCellChangedSinceReconcile(t *testing.T) {
	t.Parallel()

	table := makeTable(map[string]string{"王小明": "改過了"})
	changes := []model.ChangeRecord{
		{Name: "王小明", Date: testDate, OldText: "08:00-12:10", NewText: "08:00-12:15", Execute: true},
	}

	if applied := Apply(table, changes); applied != 0 {
		t.Fatalf("stale change should not apply, got %d", applied)
	}
}
