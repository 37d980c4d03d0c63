// Package domain defines the types and interfaces for the activity service
package domain

import (
	"time"

	"yellowboard/internal/core/scoring"
)

// Message is one roster-relevant chat message to score
type Message struct {
	ID     int64
	ChatID int64 // sender chat id
	At     time.Time
}

// Record is one participant's scored day, keyed by (chat id, date)
type Record struct {
	ChatID   int64
	Date     string // session.DateLayout
	Sessions map[string]scoring.SessionState
	Total    float64
}

// Watermark marks the newest chat message already folded into records.
// Apply drops anything at or below LastID, so overlapping exports never
// score a message twice
type Watermark struct {
	LastID int64
	LastAt time.Time
}

// Stats summarizes one scoring run
type Stats struct {
	Messages     int
	Participants int
	Records      int
}
