// Package repo provides Postgres bindings for the posts service
package repo

import (
	"context"
	"time"

	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/posts/domain"
)

// Storage is the persistence surface for posts
type Storage interface {
	Insert(ctx context.Context, posts []domain.Post) (int, error)
	UpdateMetrics(ctx context.Context, ups []domain.MetricsUpdate) error
	MarkThread(ctx context.Context, postID string, isThread bool) error

	IDsNewerThan(ctx context.Context, since time.Time) ([]string, error)
	InWindow(ctx context.Context, since time.Time) ([]domain.Post, error)
	SubtotalsByAuthor(ctx context.Context, w domain.Weights) (map[int64]float64, error)
	CountsByAuthor(ctx context.Context) (map[int64]domain.AuthorCounts, error)
}

type (
	// PG is a binder that binds the posts repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, posts []domain.Post) (int, error) {
	const sql = `
INSERT INTO posts (
	post_id, author_chat_id, author_social_id, url, text, created_at,
	content_type, views, likes, retweets, replies, quotes
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (post_id) DO NOTHING
`
	inserted := 0
	for _, p := range posts {
		tag, err := r.q.Exec(ctx, sql,
			p.ID, p.AuthorChatID, p.AuthorSocialID, p.URL, p.Text, p.CreatedAt,
			string(p.ContentType), p.Views, p.Likes, p.Retweets, p.Replies, p.Quotes,
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

func (r *queries) UpdateMetrics(ctx context.Context, ups []domain.MetricsUpdate) error {
	const sql = `
UPDATE posts SET
	views        = $2,
	likes        = $3,
	retweets     = $4,
	replies      = $5,
	quotes       = $6,
	content_type = $7
WHERE post_id = $1
`
	for _, u := range ups {
		if _, err := r.q.Exec(ctx, sql,
			u.ID, u.Views, u.Likes, u.Retweets, u.Replies, u.Quotes, string(u.ContentType),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) MarkThread(ctx context.Context, postID string, isThread bool) error {
	const sql = `
UPDATE posts SET is_thread = $2, is_thread_checked = TRUE
WHERE post_id = $1
`
	_, err := r.q.Exec(ctx, sql, postID, isThread)
	return err
}

func (r *queries) IDsNewerThan(ctx context.Context, since time.Time) ([]string, error) {
	const sql = `
SELECT post_id
FROM posts
WHERE created_at >= $1
ORDER BY created_at DESC
`
	rows, err := r.q.Query(ctx, sql, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *queries) InWindow(ctx context.Context, since time.Time) ([]domain.Post, error) {
	const sql = `
SELECT
	post_id, author_chat_id, COALESCE(author_social_id, ''), url, COALESCE(text, ''),
	created_at, content_type, views, likes, retweets, replies, quotes,
	is_thread, is_thread_checked
FROM posts
WHERE created_at >= $1
ORDER BY created_at DESC
`
	rows, err := r.q.Query(ctx, sql, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		var p domain.Post
		var ct string
		if err := rows.Scan(
			&p.ID, &p.AuthorChatID, &p.AuthorSocialID, &p.URL, &p.Text,
			&p.CreatedAt, &ct, &p.Views, &p.Likes, &p.Retweets, &p.Replies, &p.Quotes,
			&p.IsThread, &p.ThreadChecked,
		); err != nil {
			return nil, err
		}
		p.ContentType = domain.ContentType(ct)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) SubtotalsByAuthor(ctx context.Context, w domain.Weights) (map[int64]float64, error) {
	const sql = `
SELECT author_chat_id,
	SUM(CASE
		WHEN is_thread THEN $1::float8
		WHEN content_type = 'video' THEN $2::float8
		WHEN content_type = 'image' THEN $3::float8
		ELSE $4::float8
	END)
FROM posts
GROUP BY author_chat_id
`
	rows, err := r.q.Query(ctx, sql, w.Thread, w.Video, w.Image, w.Text)
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

func (r *queries) CountsByAuthor(ctx context.Context) (map[int64]domain.AuthorCounts, error) {
	const sql = `
SELECT author_chat_id,
	COUNT(*) FILTER (WHERE NOT is_thread AND content_type = 'text_only'),
	COUNT(*) FILTER (WHERE NOT is_thread AND content_type = 'image'),
	COUNT(*) FILTER (WHERE NOT is_thread AND content_type = 'video'),
	COUNT(*) FILTER (WHERE is_thread)
FROM posts
GROUP BY author_chat_id
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.AuthorCounts)
	for rows.Next() {
		var chatID int64
		var c domain.AuthorCounts
		if err := rows.Scan(&chatID, &c.Text, &c.Image, &c.Video, &c.Thread); err != nil {
			return nil, err
		}
		out[chatID] = c
	}
	return out, rows.Err()
}
