// Package repo provides Postgres bindings for the contrib service
package repo

import (
	"context"

	"yellowboard/internal/modkit/repokit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/services/contrib/domain"
)

// Storage is the persistence surface for manual contributions
type Storage interface {
	Insert(ctx context.Context, c domain.Contribution) (int64, error)
	Update(ctx context.Context, id int64, points float64, note string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, chatID int64) ([]domain.Contribution, error)
	SumByParticipant(ctx context.Context) (map[int64]float64, error)
	CountsByParticipant(ctx context.Context) (map[int64]domain.CategoryCounts, error)
}

type (
	// PG is a binder that binds the contrib repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, c domain.Contribution) (int64, error) {
	const sql = `
INSERT INTO manual_contributions (chat_id, category, points, note, recorded_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	var id int64
	err := r.q.QueryRow(ctx, sql,
		c.ChatID, string(c.Category), c.Points, c.Note, c.RecordedBy, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *queries) Update(ctx context.Context, id int64, points float64, note string) error {
	const sql = `
UPDATE manual_contributions
SET points = $2, note = $3
WHERE id = $1
`
	tag, err := r.q.Exec(ctx, sql, id, points, note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("contribution %d not found", id)
	}
	return nil
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	const sql = `DELETE FROM manual_contributions WHERE id = $1`
	tag, err := r.q.Exec(ctx, sql, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("contribution %d not found", id)
	}
	return nil
}

func (r *queries) List(ctx context.Context, chatID int64) ([]domain.Contribution, error) {
	const sql = `
SELECT id, chat_id, category, points, COALESCE(note, ''), COALESCE(recorded_by, ''), created_at
FROM manual_contributions
WHERE chat_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := r.q.Query(ctx, sql, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		var cat string
		if err := rows.Scan(&c.ID, &c.ChatID, &cat, &c.Points, &c.Note, &c.RecordedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Category = domain.Category(cat)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *queries) SumByParticipant(ctx context.Context) (map[int64]float64, error) {
	const sql = `
SELECT chat_id, COALESCE(SUM(points), 0)
FROM manual_contributions
GROUP BY chat_id
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]float64)
	for rows.Next() {
		var chatID int64
		var sum float64
		if err := rows.Scan(&chatID, &sum); err != nil {
			return nil, err
		}
		out[chatID] = sum
	}
	return out, rows.Err()
}

func (r *queries) CountsByParticipant(ctx context.Context) (map[int64]domain.CategoryCounts, error) {
	const sql = `
SELECT chat_id, category, COUNT(*)
FROM manual_contributions
GROUP BY chat_id, category
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.CategoryCounts)
	for rows.Next() {
		var chatID int64
		var cat string
		var n int
		if err := rows.Scan(&chatID, &cat, &n); err != nil {
			return nil, err
		}
		if out[chatID] == nil {
			out[chatID] = domain.CategoryCounts{}
		}
		out[chatID][domain.Category(cat)] = n
	}
	return out, rows.Err()
}
