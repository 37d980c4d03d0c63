// Package domain defines the types and interfaces for the engage service
package domain

import "time"

// Event is one credited engagement action, ready to persist
type Event struct {
	PostID        string
	PostAuthorID  int64 // author chat id
	ActorChatID   int64
	ActorSocialID string
	Action        string
	Points        int
	CreatedAt     time.Time
}

// ActionCounts are per-actor engagement counts split by action
type ActionCounts struct {
	Replies   int
	Amplifies int
}

// Stats summarizes one engage run
type Stats struct {
	Posts         int
	Events        int
	Inserted      int
	ThreadsMarked int
	FetchErrors   int
}
