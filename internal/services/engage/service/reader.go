package service

import (
	"context"

	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/engage/domain"
	"yellowboard/internal/services/engage/repo"
)

// Reader serves accumulated engagement without the tracking sources,
// for processes that only read credited events
type Reader struct {
	Storage repo.Storage
}

// NewReader constructs a read-only engage service
func NewReader(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Reader {
	if db == nil {
		panic("engage.Reader requires a non nil TxRunner")
	}
	return &Reader{Storage: binder.Bind(db)}
}

// PointsByActor implements domain.ReaderPort
func (r *Reader) PointsByActor(ctx context.Context) (map[int64]float64, error) {
	return r.Storage.PointsByActor(ctx)
}

// CountsByActor implements domain.ReaderPort
func (r *Reader) CountsByActor(ctx context.Context) (map[int64]domain.ActionCounts, error) {
	return r.Storage.CountsByActor(ctx)
}
