// Package service implements the activity scoring service
package service

import (
	"context"
	"time"

	"yellowboard/internal/core/scoring"
	"yellowboard/internal/core/session"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/services/activity/domain"
	"yellowboard/internal/services/activity/repo"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// Config for the activity service
type Config struct {
	Cap   int
	Bonus float64
}

// Service implements domain.RunnerPort and domain.ReaderPort
type Service struct {
	Storage repo.Storage
	Roster  rosterdom.ReaderPort
	Params  scoring.Params

	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	log    logger.Logger
}

// New constructs an activity service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], roster rosterdom.ReaderPort, cfg Config) *Service {
	if db == nil {
		panic("activity.Service requires a non nil TxRunner")
	}
	if roster == nil {
		panic("activity.Service requires a roster reader")
	}
	return &Service{
		Storage: binder.Bind(db),
		Roster:  roster,
		Params:  scoring.Params{Cap: cfg.Cap, Bonus: cfg.Bonus}.Normalized(),
		binder:  binder,
		db:      db,
		log:     *logger.Named("activity"),
	}
}

type dayKey struct {
	chatID int64
	date   string
}

// Apply implements domain.RunnerPort
func (s *Service) Apply(ctx context.Context, msgs []domain.Message) (domain.Stats, error) {
	tracked, err := s.Roster.ChatIDs(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	wm, _, err := s.Storage.Watermark(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	groups := make(map[dayKey]map[string]int)
	next := wm
	kept := 0
	for _, m := range msgs {
		if _, ok := tracked[m.ChatID]; !ok {
			continue
		}
		if m.ID <= wm.LastID {
			// already absorbed by an earlier batch
			continue
		}
		kept++
		at := m.At.UTC()
		k := dayKey{chatID: m.ChatID, date: session.Date(at)}
		if groups[k] == nil {
			groups[k] = map[string]int{}
		}
		groups[k][session.For(at)]++
		if m.ID > next.LastID {
			next = domain.Watermark{LastID: m.ID, LastAt: at}
		}
	}
	if len(groups) == 0 {
		s.log.Info().Int("messages", len(msgs)).Msg("no unscored roster messages in batch")
		return domain.Stats{}, nil
	}

	// group touched keys per date so existing records load in one query
	byDate := make(map[string][]int64)
	for k := range groups {
		byDate[k.date] = append(byDate[k.date], k.chatID)
	}

	stats := domain.Stats{Messages: kept}
	seen := make(map[int64]struct{})

	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)

		for date, chatIDs := range byDate {
			existing, err := st.ForDate(ctx, date, chatIDs)
			if err != nil {
				return err
			}
			prior := make(map[int64]domain.Record, len(existing))
			for _, rec := range existing {
				prior[rec.ChatID] = rec
			}

			recs := make([]domain.Record, 0, len(chatIDs))
			for _, chatID := range chatIDs {
				merged := scoring.ContinueDay(s.Params, prior[chatID].Sessions, groups[dayKey{chatID: chatID, date: date}])
				recs = append(recs, domain.Record{
					ChatID:   chatID,
					Date:     date,
					Sessions: merged,
					Total:    scoring.Round(scoring.DayTotal(merged)),
				})
				seen[chatID] = struct{}{}
			}
			if err := st.UpsertRecords(ctx, recs); err != nil {
				return err
			}
			stats.Records += len(recs)
		}
		return st.SetWatermark(ctx, next)
	})
	if err != nil {
		return domain.Stats{}, err
	}

	stats.Participants = len(seen)
	s.log.Info().
		Int("messages", stats.Messages).
		Int("participants", stats.Participants).
		Int("records", stats.Records).
		Int64("watermark_id", next.LastID).
		Msg("activity batch applied")
	return stats, nil
}

// Rebuild implements domain.RunnerPort. Records of the date are
// replaced wholesale; the watermark advances when the export outruns it
// so a later Apply cannot rescore messages the rebuild already absorbed
func (s *Service) Rebuild(ctx context.Context, date string, msgs []domain.Message) (domain.Stats, error) {
	tracked, err := s.Roster.ChatIDs(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	wm, _, err := s.Storage.Watermark(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	groups := make(map[int64][]time.Time)
	next := wm
	kept := 0
	for _, m := range msgs {
		if _, ok := tracked[m.ChatID]; !ok {
			continue
		}
		at := m.At.UTC()
		if session.Date(at) != date {
			continue
		}
		kept++
		groups[m.ChatID] = append(groups[m.ChatID], at)
		if m.ID > next.LastID {
			next = domain.Watermark{LastID: m.ID, LastAt: at}
		}
	}

	recs := make([]domain.Record, 0, len(groups))
	for chatID, times := range groups {
		sessions := scoring.ScoreDay(s.Params, times)
		recs = append(recs, domain.Record{
			ChatID:   chatID,
			Date:     date,
			Sessions: sessions,
			Total:    scoring.Round(scoring.DayTotal(sessions)),
		})
	}

	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		if err := st.DeleteDay(ctx, date); err != nil {
			return err
		}
		if err := st.UpsertRecords(ctx, recs); err != nil {
			return err
		}
		if next.LastID > wm.LastID {
			return st.SetWatermark(ctx, next)
		}
		return nil
	})
	if err != nil {
		return domain.Stats{}, err
	}

	s.log.Info().
		Str("date", date).
		Int("messages", kept).
		Int("records", len(recs)).
		Msg("activity day rebuilt")
	return domain.Stats{Messages: kept, Participants: len(groups), Records: len(recs)}, nil
}

// ForParticipant implements domain.ReaderPort
func (s *Service) ForParticipant(
	ctx context.Context,
	chatID int64,
	since, until string,
) ([]domain.Record, error) {
	return s.Storage.ForParticipant(ctx, chatID, since, until)
}

// TotalsInWindow implements domain.ReaderPort
func (s *Service) TotalsInWindow(ctx context.Context, since, until string) (map[int64]float64, error) {
	return s.Storage.TotalsInWindow(ctx, since, until)
}

// Watermark implements domain.ReaderPort
func (s *Service) Watermark(ctx context.Context) (domain.Watermark, bool, error) {
	return s.Storage.Watermark(ctx)
}
