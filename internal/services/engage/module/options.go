package module

import (
	"time"

	"yellowboard/internal/platform/config"
)

// Options holds configuration settings for the engage module
type Options struct {
	WindowDays int
	Points     int
	Workers    int

	APIKey     string
	APIBase    string
	APITimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_ENGAGE_")
	sf := cfg.Prefix("SOCIAL_API_")
	return Options{
		WindowDays: ef.MayInt("WINDOW_DAYS", 3),
		Points:     ef.MayInt("POINTS", 2),
		Workers:    ef.MayInt("WORKERS", 4),
		APIKey:     sf.MustString("KEY"),
		APIBase:    sf.MayString("BASE", ""),
		APITimeout: sf.MayDuration("TIMEOUT", 40*time.Second),
	}
}
