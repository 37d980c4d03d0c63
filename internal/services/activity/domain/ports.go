package domain

import "context"

// RunnerPort scores chat messages into daily records
type RunnerPort interface {
	// Apply merges a batch of messages into existing records. Messages
	// at or below the stored watermark are dropped; the rest extend
	// their session buckets from the stored state, so overlapping or
	// replayed batches converge on the same record a full rebuild over
	// the day's entire message set would produce. Advances the watermark
	Apply(ctx context.Context, msgs []Message) (Stats, error)

	// Rebuild replaces every record of one date from a complete day of
	// messages, used for chat-history backfills. Advances the watermark
	// when the export outruns it
	Rebuild(ctx context.Context, date string, msgs []Message) (Stats, error)
}

// ReaderPort reads scored activity
type ReaderPort interface {
	ForParticipant(ctx context.Context, chatID int64, since, until string) ([]Record, error)

	// TotalsInWindow sums day totals per participant over [since, until]
	TotalsInWindow(ctx context.Context, since, until string) (map[int64]float64, error)

	Watermark(ctx context.Context) (Watermark, bool, error)
}

// Ports is a convenience interface for RunnerPort and ReaderPort
type Ports interface {
	RunnerPort
	ReaderPort
}
