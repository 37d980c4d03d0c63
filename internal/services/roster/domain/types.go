// Package domain defines the types and interfaces for the roster service
package domain

import "time"

// Participant is one ambassador tracked by the program
type Participant struct {
	ChatID      int64
	Handle      string // normalized social handle, empty until linked
	SocialID    string // social platform numeric id, empty until linked
	DisplayName string
	JoinedAt    time.Time
}

// Linked reports whether the participant has a social account attached
func (p Participant) Linked() bool { return p.SocialID != "" }
