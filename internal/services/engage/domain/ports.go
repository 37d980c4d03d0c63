package domain

import "context"

// RunnerPort executes one cross-engagement tracking pass
type RunnerPort interface {
	Run(ctx context.Context) (Stats, error)
}

// ReaderPort reads accumulated engagement
type ReaderPort interface {
	// PointsByActor sums credited points per participant
	PointsByActor(ctx context.Context) (map[int64]float64, error)

	// CountsByActor counts credited actions per participant
	CountsByActor(ctx context.Context) (map[int64]ActionCounts, error)
}

// Ports is a convenience interface for RunnerPort and ReaderPort
type Ports interface {
	RunnerPort
	ReaderPort
}
