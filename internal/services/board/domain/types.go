// Package domain defines the types and interfaces for the board service
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContribCounts are per-category manual contribution counts on a row
type ContribCounts struct {
	PartnerIntroduction   int
	HostingAMA            int
	RecruitmentAmbassador int
	ProductFeedback       int
	RecruitmentInvestor   int
}

// Row is one participant's leaderboard record
type Row struct {
	ChatID      int64
	Rank        int
	DisplayName string
	Handle      string

	TweetsText   int
	TweetsImage  int
	TweetsVideo  int
	TweetsThread int
	PostScore    float64

	RetweetsMade    int
	CommentsMade    int
	EngagementScore float64

	ActivityScore float64

	Contrib      ContribCounts
	ContribScore float64

	GrandTotal float64
}

// Result summarizes one generation attempt
type Result struct {
	// Generated is false when the date's snapshot already existed and
	// the run was a no-op
	Generated bool
	RunID     uuid.UUID
	Rows      int
}

// Snapshot is a dated leaderboard read back from history
type Snapshot struct {
	Date        string
	RunID       uuid.UUID
	GeneratedAt time.Time
	Rows        []Row
}
