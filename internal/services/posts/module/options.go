package module

import (
	"strings"
	"time"

	"yellowboard/internal/platform/config"
)

// Options holds configuration settings for the posts module
type Options struct {
	MetricsWindowDays int
	MetricsBatch      int
	ScanLookbackDays  int
	ScanKeywords      []string

	APIKey     string
	APIBase    string
	APITimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_ENGAGE_")
	sf := cfg.Prefix("SOCIAL_API_")
	return Options{
		MetricsWindowDays: ef.MayInt("METRICS_WINDOW_DAYS", 7),
		MetricsBatch:      ef.MayInt("METRICS_BATCH", 100),
		ScanLookbackDays:  ef.MayInt("SCAN_LOOKBACK_DAYS", 2),
		ScanKeywords:      splitKeywords(ef.MayString("SCAN_KEYWORDS", "")),
		APIKey:            sf.MayString("KEY", ""),
		APIBase:           sf.MayString("BASE", ""),
		APITimeout:        sf.MayDuration("TIMEOUT", 40*time.Second),
	}
}

func splitKeywords(csv string) []string {
	var out []string
	for _, kw := range strings.Split(csv, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
