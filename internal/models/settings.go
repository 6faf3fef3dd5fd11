package models

import "time"

// MeterConfig holds level meter animation settings. The bar count and
// weight profile are fixed; only the timing and gains are tunable.
type MeterConfig struct {
	TickMs  int64   `yaml:"tick_ms"`
	Attack  float64 `yaml:"attack"`  // smoothing gain while rising
	Release float64 `yaml:"release"` // smoothing gain while falling
}

// Settings represents indicator tunables.
// This corresponds to <config dir>/whispr/settings.yaml.
type Settings struct {
	Version        int         `yaml:"version"`
	StalenessMs    int64       `yaml:"staleness_ms"`
	DebounceMs     int64       `yaml:"debounce_ms"`
	PollIntervalMs int64       `yaml:"poll_interval_ms"`
	SuccessFlashMs int64       `yaml:"success_flash_ms"`
	ErrorFlashMs   int64       `yaml:"error_flash_ms"`
	ClickWindowMs  int64       `yaml:"click_window_ms"`
	Meter          MeterConfig `yaml:"meter"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:        1,
		StalenessMs:    5000,
		DebounceMs:     50,
		PollIntervalMs: 1000,
		SuccessFlashMs: 2500,
		ErrorFlashMs:   4000,
		ClickWindowMs:  250,
		Meter: MeterConfig{
			TickMs:  150,
			Attack:  0.55,
			Release: 0.20,
		},
	}
}

// Duration helpers. Non-positive values fall back to defaults so a
// hand-edited settings file cannot disable a timer entirely.

func (s *Settings) Staleness() time.Duration    { return msOrDefault(s.StalenessMs, 5000) }
func (s *Settings) Debounce() time.Duration     { return msOrDefault(s.DebounceMs, 50) }
func (s *Settings) PollInterval() time.Duration { return msOrDefault(s.PollIntervalMs, 1000) }
func (s *Settings) SuccessFlash() time.Duration { return msOrDefault(s.SuccessFlashMs, 2500) }
func (s *Settings) ErrorFlash() time.Duration   { return msOrDefault(s.ErrorFlashMs, 4000) }
func (s *Settings) ClickWindow() time.Duration  { return msOrDefault(s.ClickWindowMs, 250) }
func (s *Settings) MeterTick() time.Duration    { return msOrDefault(s.Meter.TickMs, 150) }

func msOrDefault(ms, def int64) time.Duration {
	if ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
