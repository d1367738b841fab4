package roster

import (
	"testing"

	"github.com/lilo791027/clinic-schedule/internal/model"
)

func assertPeriods(t *testing.T, cell string, want ...model.ShiftPeriod) {
	t.Helper()
	got := ClassifyShift(cell)
	if len(got) != len(want) {
		t.Fatalf("%q want %d periods got %d (%v)", cell, len(want), len(got), got.Ordered())
	}
	for _, p := range want {
		if !got.Has(p) {
			t.Fatalf("%q missing period %s", cell, p)
		}
	}
}

func TestClassifyShift_Markers(t *testing.T) {
	t.Parallel()

	assertPeriods(t, "早", model.PeriodMorning)
	assertPeriods(t, "午", model.PeriodAfternoon)
	assertPeriods(t, "晚", model.PeriodEvening)
	assertPeriods(t, "早,晚", model.PeriodMorning, model.PeriodEvening)
	assertPeriods(t, "全", model.PeriodMorning, model.PeriodAfternoon, model.PeriodEvening)
}

func TestClassifyShift_NumericFallback(t *testing.T) {
	t.Parallel()

	assertPeriods(t, "08:00-12:10", model.PeriodMorning)
	assertPeriods(t, "15:00-18:00", model.PeriodAfternoon)
	assertPeriods(t, "18:30-21:30", model.PeriodEvening)
	// 邊界：13 點起算午診，18 點起算晚診
	assertPeriods(t, "12:59", model.PeriodMorning)
	assertPeriods(t, "13:00", model.PeriodAfternoon)
	assertPeriods(t, "17:30", model.PeriodAfternoon)
	assertPeriods(t, "18:00", model.PeriodEvening)
}

func TestClassifyShift_UnionAcrossSeparators(t *testing.T) {
	t.Parallel()

	// 逗號、空白、換行切割結果一致
	for _, cell := range []string{"早,晚", "早 晚", "早\n晚", "早，晚"} {
		assertPeriods(t, cell, model.PeriodMorning, model.PeriodEvening)
	}
}

func TestClassifyShift_MixedTokens(t *testing.T) {
	t.Parallel()

	assertPeriods(t, "08:00-12:00,15:00-18:00", model.PeriodMorning, model.PeriodAfternoon)
	assertPeriods(t, "早,15:00-18:00", model.PeriodMorning, model.PeriodAfternoon)
	// 重複偵測合併為集合
	assertPeriods(t, "早,早,08:00", model.PeriodMorning)
}

func TestClassifyShift_NoiseIgnored(t *testing.T) {
	t.Parallel()

	assertPeriods(t, "")
	assertPeriods(t, "休")
	assertPeriods(t, "off, 備註")
	// 噪音與有效片段混合時只取有效片段
	assertPeriods(t, "休,晚", model.PeriodEvening)
}
