package service

import (
	"context"

	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/board/domain"
	"yellowboard/internal/services/board/repo"
)

// Reader serves stored leaderboards without the generation sources,
// for processes that only read the board
type Reader struct {
	Storage repo.Storage
}

// NewReader constructs a read-only board service
func NewReader(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Reader {
	if db == nil {
		panic("board.Reader requires a non nil TxRunner")
	}
	return &Reader{Storage: binder.Bind(db)}
}

// Live implements domain.ReaderPort
func (r *Reader) Live(ctx context.Context) ([]domain.Row, error) {
	return r.Storage.Live(ctx)
}

// History implements domain.ReaderPort
func (r *Reader) History(ctx context.Context, date string) (domain.Snapshot, error) {
	return r.Storage.History(ctx, date)
}

// Dates implements domain.ReaderPort
func (r *Reader) Dates(ctx context.Context) ([]string, error) {
	return r.Storage.Dates(ctx)
}
