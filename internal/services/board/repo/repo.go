// Package repo provides Postgres bindings for the board service
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yellowboard/internal/modkit/repokit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/services/board/domain"
)

// Storage is the persistence surface for leaderboards
type Storage interface {
	// HistoryExists reports whether a snapshot was already taken on date
	HistoryExists(ctx context.Context, date string) (bool, error)

	// ReplaceLive clears the live board and inserts rows in rank order
	ReplaceLive(ctx context.Context, rows []domain.Row, runID uuid.UUID, at time.Time) error

	// InsertHistory appends one dated snapshot
	InsertHistory(ctx context.Context, date string, rows []domain.Row, runID uuid.UUID, at time.Time) error

	Live(ctx context.Context) ([]domain.Row, error)
	History(ctx context.Context, date string) (domain.Snapshot, error)
	Dates(ctx context.Context) ([]string, error)
}

type (
	// PG is a binder that binds the board repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

const rowColumns = `
chat_id, rank, display_name, handle,
tweets_text, tweets_image, tweets_video, tweets_thread, post_score,
retweets_made, comments_made, engagement_score,
activity_score,
contrib_partner_introduction, contrib_hosting_ama, contrib_recruitment_ambassador,
contrib_product_feedback, contrib_recruitment_investor, contrib_score,
grand_total`

func scanRow(rows repokit.Rows) (domain.Row, error) {
	var r domain.Row
	err := rows.Scan(
		&r.ChatID, &r.Rank, &r.DisplayName, &r.Handle,
		&r.TweetsText, &r.TweetsImage, &r.TweetsVideo, &r.TweetsThread, &r.PostScore,
		&r.RetweetsMade, &r.CommentsMade, &r.EngagementScore,
		&r.ActivityScore,
		&r.Contrib.PartnerIntroduction, &r.Contrib.HostingAMA, &r.Contrib.RecruitmentAmbassador,
		&r.Contrib.ProductFeedback, &r.Contrib.RecruitmentInvestor, &r.ContribScore,
		&r.GrandTotal,
	)
	return r, err
}

func rowArgs(r domain.Row) []any {
	return []any{
		r.ChatID, r.Rank, r.DisplayName, r.Handle,
		r.TweetsText, r.TweetsImage, r.TweetsVideo, r.TweetsThread, r.PostScore,
		r.RetweetsMade, r.CommentsMade, r.EngagementScore,
		r.ActivityScore,
		r.Contrib.PartnerIntroduction, r.Contrib.HostingAMA, r.Contrib.RecruitmentAmbassador,
		r.Contrib.ProductFeedback, r.Contrib.RecruitmentInvestor, r.ContribScore,
		r.GrandTotal,
	}
}

func (r *queries) HistoryExists(ctx context.Context, date string) (bool, error) {
	const sql = `SELECT 1 FROM leaderboard_history WHERE snapshot_date = $1 LIMIT 1`
	rows, err := r.q.Query(ctx, sql, date)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	return rows.Next(), rows.Err()
}

func (r *queries) ReplaceLive(ctx context.Context, board []domain.Row, runID uuid.UUID, at time.Time) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM leaderboard`); err != nil {
		return err
	}
	const sql = `
INSERT INTO leaderboard (` + rowColumns + `, run_id, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
`
	for _, row := range board {
		args := append(rowArgs(row), runID, at)
		if _, err := r.q.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) InsertHistory(ctx context.Context, date string, board []domain.Row, runID uuid.UUID, at time.Time) error {
	const sql = `
INSERT INTO leaderboard_history (snapshot_date, ` + rowColumns + `, run_id, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
`
	for _, row := range board {
		args := append([]any{date}, rowArgs(row)...)
		args = append(args, runID, at)
		if _, err := r.q.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) Live(ctx context.Context) ([]domain.Row, error) {
	const sql = `SELECT ` + rowColumns + ` FROM leaderboard ORDER BY rank`
	return r.board(ctx, sql)
}

func (r *queries) History(ctx context.Context, date string) (domain.Snapshot, error) {
	const sql = `
SELECT run_id, generated_at, ` + rowColumns + `
FROM leaderboard_history
WHERE snapshot_date = $1
ORDER BY rank
`
	rows, err := r.q.Query(ctx, sql, date)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer rows.Close()

	snap := domain.Snapshot{Date: date}
	for rows.Next() {
		var row domain.Row
		err := rows.Scan(
			&snap.RunID, &snap.GeneratedAt,
			&row.ChatID, &row.Rank, &row.DisplayName, &row.Handle,
			&row.TweetsText, &row.TweetsImage, &row.TweetsVideo, &row.TweetsThread, &row.PostScore,
			&row.RetweetsMade, &row.CommentsMade, &row.EngagementScore,
			&row.ActivityScore,
			&row.Contrib.PartnerIntroduction, &row.Contrib.HostingAMA, &row.Contrib.RecruitmentAmbassador,
			&row.Contrib.ProductFeedback, &row.Contrib.RecruitmentInvestor, &row.ContribScore,
			&row.GrandTotal,
		)
		if err != nil {
			return domain.Snapshot{}, err
		}
		snap.Rows = append(snap.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	if len(snap.Rows) == 0 {
		return domain.Snapshot{}, perr.NotFoundf("no snapshot for %s", date)
	}
	return snap, nil
}

func (r *queries) Dates(ctx context.Context) ([]string, error) {
	const sql = `
SELECT DISTINCT snapshot_date::text
FROM leaderboard_history
ORDER BY snapshot_date DESC
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *queries) board(ctx context.Context, sql string, args ...any) ([]domain.Row, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
