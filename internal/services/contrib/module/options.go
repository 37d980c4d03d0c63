package module

import (
	"yellowboard/internal/platform/config"
	"yellowboard/internal/services/contrib/domain"
)

// Options holds configuration settings for the contrib module
type Options struct {
	Weights domain.Weights
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CONTRIB_")
	return Options{
		Weights: domain.Weights{
			domain.PartnerIntroduction:   cf.MayFloat64("POINTS_PARTNER_INTRODUCTION", 10),
			domain.HostingAMA:            cf.MayFloat64("POINTS_HOSTING_AMA", 10),
			domain.RecruitmentAmbassador: cf.MayFloat64("POINTS_RECRUITMENT_AMBASSADOR", 5),
			domain.ProductFeedback:       cf.MayFloat64("POINTS_PRODUCT_FEEDBACK", 5),
			domain.RecruitmentInvestor:   cf.MayFloat64("POINTS_RECRUITMENT_INVESTOR", 10),
		},
	}
}
