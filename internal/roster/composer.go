package roster

import (
	"strings"

	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
)

// ComposeConfig 班別字串組合設定
type ComposeConfig struct {
	MorningStart           int    // 早診開始
	AfternoonStartFlagship int    // 午診開始（旗艦）
	AfternoonStart         int    // 午診開始（非旗艦）
	EveningStart           int    // 晚診開始
	Separator              string // 段落分隔符號
}

// DefaultComposeConfig 預設組合設定
func DefaultComposeConfig() ComposeConfig {
	return ComposeConfig{
		MorningStart:           8 * 60,
		AfternoonStartFlagship: 14 * 60,
		AfternoonStart:         15 * 60,
		EveningStart:           18*60 + 30,
		Separator:              ",",
	}
}

// startOf 時段的開始時間
func (c ComposeConfig) startOf(period model.ShiftPeriod, flagship bool) int {
	switch period {
	case model.PeriodMorning:
		return c.MorningStart
	case model.PeriodAfternoon:
		if flagship {
			return c.AfternoonStartFlagship
		}
		return c.AfternoonStart
	case model.PeriodEvening:
		return c.EveningStart
	}
	return 0
}

// segment 組出單一時段的 開始-結束 文字
func (c ComposeConfig) segment(period model.ShiftPeriod, end string, flagship bool) string {
	return normalize.ClockText(c.startOf(period, flagship)) + "-" + end
}

// Compose 依時段集合與修正後收班時間重組班別字串
// corrected 中缺漏的時段（無完診資料）不納入輸出
// 旗艦診所各時段獨立成段；非旗艦依組合表處理：
// 午診或晚診在場時早診段落一律捨棄（來源業務規則），三診全到輸出為空並以 note 回報
// 回傳空字串表示該格不需變動
func Compose(periods model.PeriodSet, corrected map[model.ShiftPeriod]string, flagship bool, cfg ComposeConfig) (text string, note string) {
	if periods.Empty() {
		return "", ""
	}

	if flagship {
		segs := make([]string, 0, 3)
		for _, p := range periods.Ordered() {
			if end := corrected[p]; end != "" {
				segs = append(segs, cfg.segment(p, end, true))
			}
		}
		return strings.Join(segs, cfg.Separator), ""
	}

	hasM := periods.Has(model.PeriodMorning)
	hasA := periods.Has(model.PeriodAfternoon)
	hasE := periods.Has(model.PeriodEvening)

	// 三診全到在非旗艦組合表中沒有定義，輸出留空交人工確認
	if hasM && hasA && hasE {
		return "", "非旗艦三診全到無對應組合，請人工確認"
	}

	segs := make([]string, 0, 2)
	// 早診只有單獨出現才成段；午診或晚診在場時早診段落捨棄
	if hasM && !hasA && !hasE {
		if end := corrected[model.PeriodMorning]; end != "" {
			segs = append(segs, cfg.segment(model.PeriodMorning, end, false))
		}
	}
	if hasA {
		if end := corrected[model.PeriodAfternoon]; end != "" {
			segs = append(segs, cfg.segment(model.PeriodAfternoon, end, false))
		}
	}
	if hasE {
		if end := corrected[model.PeriodEvening]; end != "" {
			segs = append(segs, cfg.segment(model.PeriodEvening, end, false))
		}
	}

	return strings.Join(segs, cfg.Separator), ""
}
