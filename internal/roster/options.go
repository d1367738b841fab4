package roster

import (
	"github.com/lilo791027/clinic-schedule/internal/config"
	"github.com/lilo791027/clinic-schedule/internal/model"
	"github.com/lilo791027/clinic-schedule/internal/normalize"
)

// minutesOr 解析 HH:MM 設定值，解析失敗時用預設值
func minutesOr(raw string, fallback int) int {
	if m, ok := normalize.TimeOfDay(raw); ok {
		return m
	}
	return fallback
}

// EngineOptionsFromConfig 由設定檔組出引擎規則
// 設定值缺漏或格式錯誤的門檻以預設規則補上
func EngineOptionsFromConfig(cfg *config.AppConfig) EngineOptions {
	opts := DefaultEngineOptions()
	if cfg == nil {
		return opts
	}

	p := cfg.Policy
	if p.LateBufferMinutes > 0 {
		opts.Policy.LateBufferMinutes = p.LateBufferMinutes
	}
	opts.Policy.MorningThreshold = minutesOr(p.MorningThreshold, opts.Policy.MorningThreshold)
	opts.Policy.PureMorningThreshold = minutesOr(p.PureMorningThreshold, opts.Policy.PureMorningThreshold)
	opts.Policy.AfternoonFlagship = minutesOr(p.AfternoonThresholdFlagship, opts.Policy.AfternoonFlagship)
	opts.Policy.AfternoonFixed = minutesOr(p.AfternoonFixed, opts.Policy.AfternoonFixed)
	opts.Policy.EveningFlagship = minutesOr(p.EveningThresholdFlagship, opts.Policy.EveningFlagship)
	opts.Policy.EveningThreshold = minutesOr(p.EveningThreshold, opts.Policy.EveningThreshold)

	c := cfg.Clinic
	if c.FlagshipMarker != "" {
		opts.FlagshipMarker = c.FlagshipMarker
	}
	if c.Separator != "" {
		opts.Compose.Separator = c.Separator
	}
	opts.Compose.MorningStart = minutesOr(c.MorningStart, opts.Compose.MorningStart)
	opts.Compose.AfternoonStartFlagship = minutesOr(c.AfternoonStartFlagship, opts.Compose.AfternoonStartFlagship)
	opts.Compose.AfternoonStart = minutesOr(c.AfternoonStart, opts.Compose.AfternoonStart)
	opts.Compose.EveningStart = minutesOr(c.EveningStart, opts.Compose.EveningStart)

	if p.SuppressRoles != nil {
		opts.SuppressRoles = opts.SuppressRoles[:0]
		for _, r := range p.SuppressRoles {
			opts.SuppressRoles = append(opts.SuppressRoles, model.StaffRole(r))
		}
	}
	opts.RequireDelay = p.RequireDelay

	return opts
}
