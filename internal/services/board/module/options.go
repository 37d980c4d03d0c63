package module

import (
	"yellowboard/internal/platform/config"
	postsdom "yellowboard/internal/services/posts/domain"
)

// Options holds configuration settings for the board module
type Options struct {
	Weights postsdom.Weights
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("CORE_BOARD_")
	def := postsdom.DefaultWeights()
	return Options{
		Weights: postsdom.Weights{
			Text:   bf.MayFloat64("WEIGHT_TEXT", def.Text),
			Image:  bf.MayFloat64("WEIGHT_IMAGE", def.Image),
			Video:  bf.MayFloat64("WEIGHT_VIDEO", def.Video),
			Thread: bf.MayFloat64("WEIGHT_THREAD", def.Thread),
		},
	}
}
