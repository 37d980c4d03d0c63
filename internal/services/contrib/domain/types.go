// Package domain defines the types and interfaces for the contrib service
package domain

import "time"

// Category classifies a manual contribution
type Category string

// The recognized contribution categories
const (
	PartnerIntroduction   Category = "partner_introduction"
	HostingAMA            Category = "hosting_ama"
	RecruitmentAmbassador Category = "recruitment_ambassador"
	ProductFeedback       Category = "product_feedback"
	RecruitmentInvestor   Category = "recruitment_investor"
)

// Categories returns every recognized category in a stable order
func Categories() []Category {
	return []Category{
		PartnerIntroduction,
		HostingAMA,
		RecruitmentAmbassador,
		ProductFeedback,
		RecruitmentInvestor,
	}
}

// Valid reports whether c is a recognized category
func (c Category) Valid() bool {
	switch c {
	case PartnerIntroduction, HostingAMA, RecruitmentAmbassador, ProductFeedback, RecruitmentInvestor:
		return true
	}
	return false
}

// Weights are the default points awarded per category when a
// contribution is recorded without an explicit amount
type Weights map[Category]float64

// For returns the default points for c, 0 for unknown categories
func (w Weights) For(c Category) float64 { return w[c] }

// Contribution is one manually recorded point award
type Contribution struct {
	ID         int64
	ChatID     int64
	Category   Category
	Points     float64
	Note       string
	RecordedBy string
	CreatedAt  time.Time
}

// CategoryCounts are per-participant contribution counts per category
type CategoryCounts map[Category]int
