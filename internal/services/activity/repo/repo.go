// Package repo provides Postgres bindings for the activity service
package repo

import (
	"context"
	json "encoding/json/v2"
	"fmt"

	"yellowboard/internal/core/scoring"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/activity/domain"
)

// Storage is the persistence surface for activity records
type Storage interface {
	ForDate(ctx context.Context, date string, chatIDs []int64) ([]domain.Record, error)
	UpsertRecords(ctx context.Context, recs []domain.Record) error
	DeleteDay(ctx context.Context, date string) error

	ForParticipant(ctx context.Context, chatID int64, since, until string) ([]domain.Record, error)
	TotalsInWindow(ctx context.Context, since, until string) (map[int64]float64, error)

	Watermark(ctx context.Context) (domain.Watermark, bool, error)
	SetWatermark(ctx context.Context, wm domain.Watermark) error
}

type (
	// PG is a binder that binds the activity repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

// watermarkSource keys the single chat feed in activity_watermarks
const watermarkSource = "chat"

func (r *queries) ForDate(ctx context.Context, date string, chatIDs []int64) ([]domain.Record, error) {
	const sql = `
SELECT chat_id, activity_date::text, sessions, total_day_score
FROM user_activity
WHERE activity_date = $1 AND chat_id = ANY($2)
`
	rows, err := r.q.Query(ctx, sql, date, chatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *queries) UpsertRecords(ctx context.Context, recs []domain.Record) error {
	const sql = `
INSERT INTO user_activity (chat_id, activity_date, sessions, total_day_score)
VALUES ($1, $2, $3, $4)
ON CONFLICT (chat_id, activity_date) DO UPDATE SET
	sessions        = EXCLUDED.sessions,
	total_day_score = EXCLUDED.total_day_score
`
	for _, rec := range recs {
		blob, err := json.Marshal(rec.Sessions)
		if err != nil {
			return fmt.Errorf("activity: marshal sessions: %w", err)
		}
		if _, err := r.q.Exec(ctx, sql, rec.ChatID, rec.Date, blob, rec.Total); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) DeleteDay(ctx context.Context, date string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_activity WHERE activity_date = $1`, date)
	return err
}

func (r *queries) ForParticipant(
	ctx context.Context,
	chatID int64,
	since, until string,
) ([]domain.Record, error) {
	const sql = `
SELECT chat_id, activity_date::text, sessions, total_day_score
FROM user_activity
WHERE chat_id = $1 AND activity_date BETWEEN $2 AND $3
ORDER BY activity_date
`
	rows, err := r.q.Query(ctx, sql, chatID, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *queries) TotalsInWindow(ctx context.Context, since, until string) (map[int64]float64, error) {
	const sql = `
SELECT chat_id, SUM(total_day_score)
FROM user_activity
WHERE activity_date BETWEEN $1 AND $2
GROUP BY chat_id
`
	rows, err := r.q.Query(ctx, sql, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]float64)
	for rows.Next() {
		var chatID int64
		var total float64
		if err := rows.Scan(&chatID, &total); err != nil {
			return nil, err
		}
		out[chatID] = total
	}
	return out, rows.Err()
}

func (r *queries) Watermark(ctx context.Context) (domain.Watermark, bool, error) {
	const sql = `
SELECT last_message_id, last_message_at
FROM activity_watermarks
WHERE source = $1
`
	rows, err := r.q.Query(ctx, sql, watermarkSource)
	if err != nil {
		return domain.Watermark{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.Watermark{}, false, rows.Err()
	}
	var wm domain.Watermark
	if err := rows.Scan(&wm.LastID, &wm.LastAt); err != nil {
		return domain.Watermark{}, false, err
	}
	return wm, true, rows.Err()
}

func (r *queries) SetWatermark(ctx context.Context, wm domain.Watermark) error {
	const sql = `
INSERT INTO activity_watermarks (source, last_message_id, last_message_at)
VALUES ($1, $2, $3)
ON CONFLICT (source) DO UPDATE SET
	last_message_id = EXCLUDED.last_message_id,
	last_message_at = EXCLUDED.last_message_at
`
	_, err := r.q.Exec(ctx, sql, watermarkSource, wm.LastID, wm.LastAt)
	return err
}

func scanRecords(rows repokit.Rows) ([]domain.Record, error) {
	var out []domain.Record
	for rows.Next() {
		var rec domain.Record
		var blob []byte
		if err := rows.Scan(&rec.ChatID, &rec.Date, &blob, &rec.Total); err != nil {
			return nil, err
		}
		rec.Sessions = map[string]scoring.SessionState{}
		if len(blob) > 0 {
			if err := json.Unmarshal(blob, &rec.Sessions); err != nil {
				return nil, fmt.Errorf("activity: decode sessions: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
