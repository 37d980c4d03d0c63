// Package repo provides Postgres bindings for the roster service
package repo

import (
	"context"

	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/roster/domain"
)

// Storage is the persistence surface for participants
type Storage interface {
	List(ctx context.Context) ([]domain.Participant, error)
	ByChatID(ctx context.Context, chatID int64) (domain.Participant, bool, error)
	BySocialID(ctx context.Context, socialID string) (domain.Participant, bool, error)
	Upsert(ctx context.Context, p domain.Participant) error
	SetSocial(ctx context.Context, chatID int64, handle, socialID string) error
}

type (
	// PG is a binder that binds the roster repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

func (r *queries) List(ctx context.Context) ([]domain.Participant, error) {
	const sql = `
SELECT chat_id, COALESCE(handle, ''), COALESCE(social_id, ''), COALESCE(display_name, ''), joined_at
FROM participants
ORDER BY chat_id
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ChatID, &p.Handle, &p.SocialID, &p.DisplayName, &p.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) ByChatID(ctx context.Context, chatID int64) (domain.Participant, bool, error) {
	const sql = `
SELECT chat_id, COALESCE(handle, ''), COALESCE(social_id, ''), COALESCE(display_name, ''), joined_at
FROM participants
WHERE chat_id = $1
`
	return r.one(ctx, sql, chatID)
}

func (r *queries) BySocialID(ctx context.Context, socialID string) (domain.Participant, bool, error) {
	const sql = `
SELECT chat_id, COALESCE(handle, ''), COALESCE(social_id, ''), COALESCE(display_name, ''), joined_at
FROM participants
WHERE social_id = $1
`
	return r.one(ctx, sql, socialID)
}

func (r *queries) one(ctx context.Context, sql string, arg any) (domain.Participant, bool, error) {
	rows, err := r.q.Query(ctx, sql, arg)
	if err != nil {
		return domain.Participant{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.Participant{}, false, rows.Err()
	}
	var p domain.Participant
	if err := rows.Scan(&p.ChatID, &p.Handle, &p.SocialID, &p.DisplayName, &p.JoinedAt); err != nil {
		return domain.Participant{}, false, err
	}
	return p, true, rows.Err()
}

func (r *queries) Upsert(ctx context.Context, p domain.Participant) error {
	const sql = `
INSERT INTO participants (chat_id, handle, social_id, display_name, joined_at)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5)
ON CONFLICT (chat_id) DO UPDATE SET
	handle       = COALESCE(NULLIF(EXCLUDED.handle, ''), participants.handle),
	social_id    = COALESCE(NULLIF(EXCLUDED.social_id, ''), participants.social_id),
	display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), participants.display_name)
`
	_, err := r.q.Exec(ctx, sql, p.ChatID, p.Handle, p.SocialID, p.DisplayName, p.JoinedAt)
	return err
}

func (r *queries) SetSocial(ctx context.Context, chatID int64, handle, socialID string) error {
	const sql = `
UPDATE participants
SET handle = NULLIF($2, ''), social_id = NULLIF($3, '')
WHERE chat_id = $1
`
	_, err := r.q.Exec(ctx, sql, chatID, handle, socialID)
	return err
}
