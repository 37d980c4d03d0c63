// Package service implements the engage service
package service

import (
	"context"
	"sync"
	"time"

	"yellowboard/internal/adapters/social"
	coreengage "yellowboard/internal/core/engage"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/services/engage/domain"
	"yellowboard/internal/services/engage/repo"
	postsdom "yellowboard/internal/services/posts/domain"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// InteractionSource fetches the interaction surface of a post
type InteractionSource interface {
	RepliesAndQuotes(ctx context.Context, tweetID social.ID) ([]social.Tweet, error)
	Retweeters(ctx context.Context, tweetID social.ID) ([]social.User, error)
}

// Config for the engage service
type Config struct {
	WindowDays int
	Points     int
	Workers    int
}

// Service implements domain.RunnerPort and domain.ReaderPort
type Service struct {
	Storage repo.Storage
	Source  InteractionSource
	Roster  rosterdom.ReaderPort
	Posts   postsdom.ReaderPort
	Marker  postsdom.WriterPort
	Cfg     Config

	log logger.Logger
	now func() time.Time
}

// New constructs an engage service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	src InteractionSource,
	roster rosterdom.ReaderPort,
	posts postsdom.ReaderPort,
	marker postsdom.WriterPort,
	cfg Config,
) *Service {
	if db == nil {
		panic("engage.Service requires a non nil TxRunner")
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 3
	}
	if cfg.Points <= 0 {
		cfg.Points = coreengage.DefaultPoints
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Service{
		Storage: binder.Bind(db),
		Source:  src,
		Roster:  roster,
		Posts:   posts,
		Marker:  marker,
		Cfg:     cfg,
		log:     *logger.Named("engage"),
		now:     time.Now,
	}
}

// outcome of one inspected post
type postResult struct {
	events   []domain.Event
	isThread bool
	checked  bool
	failed   bool
}

// Run implements domain.RunnerPort
func (s *Service) Run(ctx context.Context) (domain.Stats, error) {
	idx, err := s.Roster.SocialIndex(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	roster := make(map[string]struct{}, len(idx))
	for socialID := range idx {
		roster[socialID] = struct{}{}
	}

	since := s.now().UTC().AddDate(0, 0, -s.Cfg.WindowDays)
	posts, err := s.Posts.InWindow(ctx, since)
	if err != nil {
		return domain.Stats{}, err
	}
	if len(posts) == 0 {
		s.log.Info().Msg("no posts in engagement window")
		return domain.Stats{}, nil
	}

	classifier := coreengage.NewClassifier(s.Cfg.Points, roster)

	out := make([]postResult, len(posts))
	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range posts {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			out[i] = s.inspect(ctx, classifier, idx, posts[i])
		}(i)
	}
	wg.Wait()

	stats := domain.Stats{Posts: len(posts)}
	var flat []domain.Event
	for i := range out {
		if out[i].failed {
			stats.FetchErrors++
			continue
		}
		flat = append(flat, out[i].events...)
		if out[i].checked {
			if err := s.Marker.MarkThread(ctx, posts[i].ID, out[i].isThread); err != nil {
				return stats, err
			}
			stats.ThreadsMarked++
		}
	}
	stats.Events = len(flat)

	if len(flat) > 0 {
		inserted, err := s.Storage.InsertEvents(ctx, flat)
		if err != nil {
			return stats, err
		}
		stats.Inserted = inserted
	}

	s.log.Info().
		Int("posts", stats.Posts).
		Int("events", stats.Events).
		Int("inserted", stats.Inserted).
		Int("threads_marked", stats.ThreadsMarked).
		Int("fetch_errors", stats.FetchErrors).
		Msg("engagement run complete")
	return stats, nil
}

func (s *Service) inspect(
	ctx context.Context,
	classifier *coreengage.Classifier,
	idx map[string]int64,
	post postsdom.Post,
) postResult {
	postID := social.ID(post.ID)

	tweets, err := s.Source.RepliesAndQuotes(ctx, postID)
	if err != nil {
		s.log.Warn().Err(err).Str("post_id", post.ID).Msg("replies fetch failed")
		return postResult{failed: true}
	}
	retweeters, err := s.Source.Retweeters(ctx, postID)
	if err != nil {
		s.log.Warn().Err(err).Str("post_id", post.ID).Msg("retweeters fetch failed")
		return postResult{failed: true}
	}

	in := coreengage.Interactions{
		PostID:   post.ID,
		AuthorID: post.AuthorSocialID,
	}
	for _, u := range retweeters {
		in.Retweeters = append(in.Retweeters, string(u.ID))
	}
	type stampKey struct {
		actor  string
		action coreengage.Action
	}
	stamps := make(map[stampKey]time.Time, len(tweets))
	selfReplied := false
	for _, t := range tweets {
		actor := string(t.Author.ID)
		if t.QuotesID(postID) {
			in.Quoters = append(in.Quoters, actor)
			stamps[stampKey{actor, coreengage.ActionRetweetOrQuote}] = t.CreatedAt.Time
			continue
		}
		in.Repliers = append(in.Repliers, actor)
		if _, dup := stamps[stampKey{actor, coreengage.ActionReply}]; !dup {
			stamps[stampKey{actor, coreengage.ActionReply}] = t.CreatedAt.Time
		}
		if actor == post.AuthorSocialID {
			selfReplied = true
		}
	}

	// Retweeter listings carry no timestamp; fetch time is the closest bound.
	fetchedAt := s.now().UTC()
	res := postResult{checked: !post.ThreadChecked, isThread: selfReplied}
	for _, ev := range classifier.Classify(in) {
		at, ok := stamps[stampKey{ev.ActorID, ev.Action}]
		if !ok || at.IsZero() {
			at = fetchedAt
		}
		res.events = append(res.events, domain.Event{
			PostID:        ev.PostID,
			PostAuthorID:  post.AuthorChatID,
			ActorChatID:   idx[ev.ActorID],
			ActorSocialID: ev.ActorID,
			Action:        string(ev.Action),
			Points:        ev.Points,
			CreatedAt:     at.UTC(),
		})
	}
	return res
}

// PointsByActor implements domain.ReaderPort
func (s *Service) PointsByActor(ctx context.Context) (map[int64]float64, error) {
	return s.Storage.PointsByActor(ctx)
}

// CountsByActor implements domain.ReaderPort
func (s *Service) CountsByActor(ctx context.Context) (map[int64]domain.ActionCounts, error) {
	return s.Storage.CountsByActor(ctx)
}
