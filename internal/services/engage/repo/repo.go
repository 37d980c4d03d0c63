// Package repo provides Postgres bindings for the engage service
package repo

import (
	"context"

	"yellowboard/internal/core/engage"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/engage/domain"
)

// Storage is the persistence surface for engagement events
type Storage interface {
	// InsertEvents writes events, skipping (post, actor, action) pairs
	// already credited. Returns the number actually inserted
	InsertEvents(ctx context.Context, evs []domain.Event) (int, error)

	PointsByActor(ctx context.Context) (map[int64]float64, error)
	CountsByActor(ctx context.Context) (map[int64]domain.ActionCounts, error)
}

type (
	// PG is a binder that binds the engage repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

func (r *queries) InsertEvents(ctx context.Context, evs []domain.Event) (int, error) {
	const sql = `
INSERT INTO engagement_events (
	post_id, post_author_id, actor_chat_id, actor_social_id,
	action_type, points, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (post_id, actor_social_id, action_type) DO NOTHING
`
	inserted := 0
	for _, ev := range evs {
		tag, err := r.q.Exec(ctx, sql,
			ev.PostID, ev.PostAuthorID, ev.ActorChatID, ev.ActorSocialID,
			ev.Action, ev.Points, ev.CreatedAt,
		)
		if err != nil {
			return inserted, err
		}
		if tag.RowsAffected() > 0 {
			inserted++
		}
	}
	return inserted, nil
}

func (r *queries) PointsByActor(ctx context.Context) (map[int64]float64, error) {
	const sql = `
SELECT actor_chat_id, SUM(points)::float8
FROM engagement_events
GROUP BY actor_chat_id
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]float64)
	for rows.Next() {
		var chatID int64
		var pts float64
		if err := rows.Scan(&chatID, &pts); err != nil {
			return nil, err
		}
		out[chatID] = pts
	}
	return out, rows.Err()
}

func (r *queries) CountsByActor(ctx context.Context) (map[int64]domain.ActionCounts, error) {
	const sql = `
SELECT actor_chat_id,
	COUNT(*) FILTER (WHERE action_type = $1),
	COUNT(*) FILTER (WHERE action_type = $2)
FROM engagement_events
GROUP BY actor_chat_id
`
	rows, err := r.q.Query(ctx, sql, string(engage.ActionReply), string(engage.ActionRetweetOrQuote))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.ActionCounts)
	for rows.Next() {
		var chatID int64
		var c domain.ActionCounts
		if err := rows.Scan(&chatID, &c.Replies, &c.Amplifies); err != nil {
			return nil, err
		}
		out[chatID] = c
	}
	return out, rows.Err()
}
