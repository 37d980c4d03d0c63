// Package service implements the leaderboard generation service
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yellowboard/internal/core/rank"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/platform/logger"
	activitydom "yellowboard/internal/services/activity/domain"
	"yellowboard/internal/services/board/domain"
	"yellowboard/internal/services/board/repo"
	contribdom "yellowboard/internal/services/contrib/domain"
	engagedom "yellowboard/internal/services/engage/domain"
	postsdom "yellowboard/internal/services/posts/domain"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// Sources are the read ports the generator aggregates over
type Sources struct {
	Roster   rosterdom.ReaderPort
	Posts    postsdom.ReaderPort
	Engage   engagedom.ReaderPort
	Activity activitydom.ReaderPort
	Contrib  contribdom.ReaderPort
}

// activityEpoch bounds the all-time activity window
const activityEpoch = "1970-01-01"

// Service implements domain.GeneratorPort and domain.ReaderPort
type Service struct {
	Storage repo.Storage
	Src     Sources
	Weights postsdom.Weights

	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	log    logger.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// New constructs a board service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], src Sources, w postsdom.Weights) *Service {
	if db == nil {
		panic("board.Service requires a non nil TxRunner")
	}
	if src.Roster == nil || src.Posts == nil || src.Engage == nil || src.Activity == nil || src.Contrib == nil {
		panic("board.Service requires all source ports")
	}
	return &Service{
		Storage: binder.Bind(db),
		Src:     src,
		Weights: w,
		binder:  binder,
		db:      db,
		log:     *logger.Named("board"),
		now:     time.Now,
		newID:   uuid.New,
	}
}

// Generate implements domain.GeneratorPort
func (s *Service) Generate(ctx context.Context, date string) (domain.Result, error) {
	exists, err := s.Storage.HistoryExists(ctx, date)
	if err != nil {
		return domain.Result{}, err
	}
	if exists {
		s.log.Info().Str("date", date).Msg("snapshot already taken, skipping")
		return domain.Result{}, nil
	}

	rows, err := s.collect(ctx, date)
	if err != nil {
		return domain.Result{}, err
	}

	runID := s.newID()
	at := s.now().UTC()
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		if err := st.ReplaceLive(ctx, rows, runID, at); err != nil {
			return err
		}
		return st.InsertHistory(ctx, date, rows, runID, at)
	})
	if err != nil {
		return domain.Result{}, err
	}

	s.log.Info().
		Str("date", date).
		Str("run_id", runID.String()).
		Int("rows", len(rows)).
		Msg("leaderboard generated")
	return domain.Result{Generated: true, RunID: runID, Rows: len(rows)}, nil
}

// collect reads every scoring source and assembles ranked rows
func (s *Service) collect(ctx context.Context, date string) ([]domain.Row, error) {
	participants, err := s.Src.Roster.List(ctx)
	if err != nil {
		return nil, err
	}

	postScores, err := s.Src.Posts.SubtotalsByAuthor(ctx, s.Weights)
	if err != nil {
		return nil, err
	}
	postCounts, err := s.Src.Posts.CountsByAuthor(ctx)
	if err != nil {
		return nil, err
	}
	engageScores, err := s.Src.Engage.PointsByActor(ctx)
	if err != nil {
		return nil, err
	}
	engageCounts, err := s.Src.Engage.CountsByActor(ctx)
	if err != nil {
		return nil, err
	}
	activityScores, err := s.Src.Activity.TotalsInWindow(ctx, activityEpoch, date)
	if err != nil {
		return nil, err
	}
	contribScores, err := s.Src.Contrib.SumByParticipant(ctx)
	if err != nil {
		return nil, err
	}
	contribCounts, err := s.Src.Contrib.CountsByParticipant(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]rank.Entry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, rank.Entry{
			ChatID: p.ChatID,
			Subtotals: rank.Subtotals{
				Posts:         postScores[p.ChatID],
				Engagement:    engageScores[p.ChatID],
				Activity:      activityScores[p.ChatID],
				Contributions: contribScores[p.ChatID],
			},
		})
	}

	byChatID := make(map[int64]rosterdom.Participant, len(participants))
	for _, p := range participants {
		byChatID[p.ChatID] = p
	}

	ranked := rank.Order(entries)
	rows := make([]domain.Row, 0, len(ranked))
	for _, e := range ranked {
		p := byChatID[e.ChatID]
		pc := postCounts[e.ChatID]
		ec := engageCounts[e.ChatID]
		cc := contribCounts[e.ChatID]
		rows = append(rows, domain.Row{
			ChatID:      e.ChatID,
			Rank:        e.Rank,
			DisplayName: p.DisplayName,
			Handle:      p.Handle,

			TweetsText:   pc.Text,
			TweetsImage:  pc.Image,
			TweetsVideo:  pc.Video,
			TweetsThread: pc.Thread,
			PostScore:    e.Posts,

			RetweetsMade:    ec.Amplifies,
			CommentsMade:    ec.Replies,
			EngagementScore: e.Engagement,

			ActivityScore: e.Activity,

			Contrib: domain.ContribCounts{
				PartnerIntroduction:   cc[contribdom.PartnerIntroduction],
				HostingAMA:            cc[contribdom.HostingAMA],
				RecruitmentAmbassador: cc[contribdom.RecruitmentAmbassador],
				ProductFeedback:       cc[contribdom.ProductFeedback],
				RecruitmentInvestor:   cc[contribdom.RecruitmentInvestor],
			},
			ContribScore: e.Contributions,

			GrandTotal: e.Total,
		})
	}
	return rows, nil
}

// Live implements domain.ReaderPort
func (s *Service) Live(ctx context.Context) ([]domain.Row, error) {
	return s.Storage.Live(ctx)
}

// History implements domain.ReaderPort
func (s *Service) History(ctx context.Context, date string) (domain.Snapshot, error) {
	return s.Storage.History(ctx, date)
}

// Dates implements domain.ReaderPort
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	return s.Storage.Dates(ctx)
}
