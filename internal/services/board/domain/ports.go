package domain

import "context"

// GeneratorPort produces the daily leaderboard
type GeneratorPort interface {
	// Generate builds and stores the board for one UTC date. The run is
	// gated on history: a date that already has a snapshot is a logged
	// no-op. Live and history rows are written in one transaction
	Generate(ctx context.Context, date string) (Result, error)
}

// ReaderPort reads stored leaderboards
type ReaderPort interface {
	// Live returns the current board ordered by rank
	Live(ctx context.Context) ([]Row, error)

	// History returns the snapshot taken on one date
	History(ctx context.Context, date string) (Snapshot, error)

	// Dates lists snapshot dates, newest first
	Dates(ctx context.Context) ([]string, error)
}

// Ports is a convenience interface for GeneratorPort and ReaderPort
type Ports interface {
	GeneratorPort
	ReaderPort
}
