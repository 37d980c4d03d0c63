package domain

import (
	"context"
	"time"
)

// WriterPort mutates stored posts
type WriterPort interface {
	// Ingest stores new posts, silently skipping ids already tracked
	Ingest(ctx context.Context, posts []Post) (Stats, error)

	// MarkThread records the outcome of a thread inspection
	MarkThread(ctx context.Context, postID string, isThread bool) error
}

// CollectorPort scans participant timelines for new posts
type CollectorPort interface {
	// CollectTimelines fetches each author's recent tweets and ingests
	// the ones inside the lookback window
	CollectTimelines(ctx context.Context, authors []Author) (Stats, error)

	// CollectShared fetches tweets by id, typically permalinks dropped
	// into the chat, and ingests the ones authored by a participant in
	// authorIndex (social id to chat id)
	CollectShared(ctx context.Context, tweetIDs []string, authorIndex map[string]int64) (Stats, error)
}

// RefresherPort re-reads live metrics for recent posts
type RefresherPort interface {
	RefreshMetrics(ctx context.Context) (Stats, error)
}

// ReaderPort reads stored posts
type ReaderPort interface {
	// InWindow returns posts created at or after since, newest first
	InWindow(ctx context.Context, since time.Time) ([]Post, error)

	// SubtotalsByAuthor computes the weighted post score per author
	SubtotalsByAuthor(ctx context.Context, w Weights) (map[int64]float64, error)

	// CountsByAuthor counts posts per author per scoring bucket
	CountsByAuthor(ctx context.Context) (map[int64]AuthorCounts, error)
}

// Ports is a convenience interface over all post ports
type Ports interface {
	WriterPort
	CollectorPort
	RefresherPort
	ReaderPort
}
