package domain

import "context"

// WriterPort mutates manual contributions
type WriterPort interface {
	// Add records a new contribution and returns its id. A zero Points
	// falls back to the category default weight
	Add(ctx context.Context, c Contribution) (int64, error)

	// Update rewrites the points and note of an existing contribution
	Update(ctx context.Context, id int64, points float64, note string) error

	// Remove deletes a contribution by id
	Remove(ctx context.Context, id int64) error
}

// ReaderPort reads manual contributions
type ReaderPort interface {
	List(ctx context.Context, chatID int64) ([]Contribution, error)

	// SumByParticipant totals contribution points per chat id
	SumByParticipant(ctx context.Context) (map[int64]float64, error)

	// CountsByParticipant counts contributions per chat id per category
	CountsByParticipant(ctx context.Context) (map[int64]CategoryCounts, error)
}

// Ports is a convenience interface for ReaderPort and WriterPort
type Ports interface {
	ReaderPort
	WriterPort
}
