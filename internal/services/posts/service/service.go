// Package service implements the posts service
package service

import (
	"context"
	"strings"
	"time"

	"yellowboard/internal/adapters/social"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/services/posts/domain"
	"yellowboard/internal/services/posts/repo"
)

// MetricsSource fetches live tweet documents for stored post ids
type MetricsSource interface {
	TweetsByIDs(ctx context.Context, ids []social.ID) ([]social.Tweet, error)
}

// TimelineSource fetches a user's recent tweets
type TimelineSource interface {
	UserLastTweets(ctx context.Context, userName string) ([]social.Tweet, error)
}

// Source is the full platform surface the posts service reads from
type Source interface {
	MetricsSource
	TimelineSource
}

// Config for the posts service
type Config struct {
	MetricsWindowDays int
	BatchSize         int

	// LookbackDays bounds the timeline scan window
	LookbackDays int

	// Keywords filters scanned tweets when non empty, matched case
	// insensitively against the tweet text
	Keywords []string
}

// Service implements domain.WriterPort, domain.CollectorPort,
// domain.RefresherPort and domain.ReaderPort
type Service struct {
	Storage repo.Storage
	Source  Source
	Cfg     Config

	log logger.Logger
	now func() time.Time
}

// New constructs a posts service. Source may be nil when the caller
// never scans timelines or refreshes metrics
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], src Source, cfg Config) *Service {
	if db == nil {
		panic("posts.Service requires a non nil TxRunner")
	}
	if cfg.MetricsWindowDays <= 0 {
		cfg.MetricsWindowDays = 7
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 2
	}
	return &Service{
		Storage: binder.Bind(db),
		Source:  src,
		Cfg:     cfg,
		log:     *logger.Named("posts"),
		now:     time.Now,
	}
}

// Ingest implements domain.WriterPort
func (s *Service) Ingest(ctx context.Context, posts []domain.Post) (domain.Stats, error) {
	eligible := make([]domain.Post, 0, len(posts))
	skipped := 0
	for _, p := range posts {
		if p.ID == "" || p.AuthorChatID == 0 {
			skipped++
			continue
		}
		eligible = append(eligible, p)
	}

	written, err := s.Storage.Insert(ctx, eligible)
	if err != nil {
		return domain.Stats{}, err
	}
	s.log.Info().
		Int("offered", len(posts)).
		Int("written", written).
		Int("skipped", skipped).
		Msg("posts ingested")
	return domain.Stats{Fetched: len(posts), Written: written, Skipped: skipped}, nil
}

// MarkThread implements domain.WriterPort
func (s *Service) MarkThread(ctx context.Context, postID string, isThread bool) error {
	return s.Storage.MarkThread(ctx, postID, isThread)
}

// CollectTimelines implements domain.CollectorPort. A failed author
// fetch is logged and skipped so one suspended account cannot stall
// the whole scan
func (s *Service) CollectTimelines(ctx context.Context, authors []domain.Author) (domain.Stats, error) {
	if s.Source == nil {
		return domain.Stats{}, nil
	}
	since := s.now().UTC().AddDate(0, 0, -s.Cfg.LookbackDays)

	var found []domain.Post
	failed := 0
	for _, a := range authors {
		if a.Handle == "" || a.ChatID == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return domain.Stats{}, err
		}

		tweets, err := s.Source.UserLastTweets(ctx, a.Handle)
		if err != nil {
			s.log.Warn().Err(err).Str("handle", a.Handle).Msg("timeline fetch failed")
			failed++
			continue
		}
		for _, t := range tweets {
			if t.IsReply || t.CreatedAt.Time.Before(since) {
				continue
			}
			if !s.matchesKeywords(t.Text) {
				continue
			}
			found = append(found, domain.FromTweet(t, a.ChatID))
		}
	}

	stats, err := s.Ingest(ctx, found)
	if err != nil {
		return stats, err
	}
	s.log.Info().
		Int("authors", len(authors)).
		Int("failed", failed).
		Int("found", len(found)).
		Int("written", stats.Written).
		Msg("timeline scan complete")
	return stats, nil
}

// CollectShared implements domain.CollectorPort. Shared permalinks are
// an explicit claim, so no lookback or keyword filter applies
func (s *Service) CollectShared(ctx context.Context, tweetIDs []string, authorIndex map[string]int64) (domain.Stats, error) {
	if s.Source == nil || len(tweetIDs) == 0 {
		return domain.Stats{}, nil
	}

	seen := make(map[string]struct{}, len(tweetIDs))
	ids := make([]social.ID, 0, len(tweetIDs))
	for _, id := range tweetIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, social.ID(id))
	}

	var found []domain.Post
	for start := 0; start < len(ids); start += s.Cfg.BatchSize {
		end := min(start+s.Cfg.BatchSize, len(ids))
		tweets, err := s.Source.TweetsByIDs(ctx, ids[start:end])
		if err != nil {
			return domain.Stats{}, err
		}
		for _, t := range tweets {
			chatID, ok := authorIndex[string(t.Author.ID)]
			if !ok {
				continue
			}
			found = append(found, domain.FromTweet(t, chatID))
		}
	}

	stats, err := s.Ingest(ctx, found)
	if err != nil {
		return stats, err
	}
	s.log.Info().
		Int("links", len(ids)).
		Int("found", len(found)).
		Int("written", stats.Written).
		Msg("shared posts collected")
	return stats, nil
}

func (s *Service) matchesKeywords(text string) bool {
	if len(s.Cfg.Keywords) == 0 {
		return true
	}
	lowered := strings.ToLower(text)
	for _, kw := range s.Cfg.Keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RefreshMetrics implements domain.RefresherPort. Recent posts are
// refreshed newest first so a partial run still covers the posts whose
// counters move fastest
func (s *Service) RefreshMetrics(ctx context.Context) (domain.Stats, error) {
	if s.Source == nil {
		return domain.Stats{}, nil
	}
	since := s.now().UTC().AddDate(0, 0, -s.Cfg.MetricsWindowDays)
	ids, err := s.Storage.IDsNewerThan(ctx, since)
	if err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{Fetched: len(ids)}
	for start := 0; start < len(ids); start += s.Cfg.BatchSize {
		end := min(start+s.Cfg.BatchSize, len(ids))
		batch := make([]social.ID, 0, end-start)
		for _, id := range ids[start:end] {
			batch = append(batch, social.ID(id))
		}

		tweets, err := s.Source.TweetsByIDs(ctx, batch)
		if err != nil {
			return stats, err
		}

		ups := make([]domain.MetricsUpdate, 0, len(tweets))
		for _, t := range tweets {
			ups = append(ups, domain.MetricsUpdate{
				ID:          string(t.ID),
				Views:       t.ViewCount,
				Likes:       t.LikeCount,
				Retweets:    t.RetweetCount,
				Replies:     t.ReplyCount,
				Quotes:      t.QuoteCount,
				ContentType: domain.Classify(t),
			})
		}
		if err := s.Storage.UpdateMetrics(ctx, ups); err != nil {
			return stats, err
		}
		stats.Written += len(ups)
	}

	s.log.Info().
		Int("candidates", stats.Fetched).
		Int("refreshed", stats.Written).
		Msg("post metrics refreshed")
	return stats, nil
}

// InWindow implements domain.ReaderPort
func (s *Service) InWindow(ctx context.Context, since time.Time) ([]domain.Post, error) {
	return s.Storage.InWindow(ctx, since)
}

// SubtotalsByAuthor implements domain.ReaderPort
func (s *Service) SubtotalsByAuthor(ctx context.Context, w domain.Weights) (map[int64]float64, error) {
	return s.Storage.SubtotalsByAuthor(ctx, w)
}

// CountsByAuthor implements domain.ReaderPort
func (s *Service) CountsByAuthor(ctx context.Context) (map[int64]domain.AuthorCounts, error) {
	return s.Storage.CountsByAuthor(ctx)
}
