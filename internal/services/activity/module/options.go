package module

import "yellowboard/internal/platform/config"

// Options holds configuration settings for the activity module
type Options struct {
	SessionCap int
	Bonus      float64
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_ACTIVITY_")
	return Options{
		SessionCap: af.MayInt("SESSION_CAP", 10),
		Bonus:      af.MayFloat64("BONUS", 1.25),
	}
}
