// Package service implements the contrib service
package service

import (
	"context"
	"time"

	"yellowboard/internal/modkit/repokit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/platform/logger"
	"yellowboard/internal/services/contrib/domain"
	"yellowboard/internal/services/contrib/repo"
	rosterdom "yellowboard/internal/services/roster/domain"
)

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	Storage repo.Storage
	Roster  rosterdom.ReaderPort
	Weights domain.Weights

	log logger.Logger
	now func() time.Time
}

// New constructs a contrib service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], roster rosterdom.ReaderPort, w domain.Weights) *Service {
	if db == nil {
		panic("contrib.Service requires a non nil TxRunner")
	}
	if roster == nil {
		panic("contrib.Service requires a roster reader")
	}
	return &Service{
		Storage: binder.Bind(db),
		Roster:  roster,
		Weights: w,
		log:     *logger.Named("contrib"),
		now:     time.Now,
	}
}

// Add implements domain.WriterPort
func (s *Service) Add(ctx context.Context, c domain.Contribution) (int64, error) {
	if !c.Category.Valid() {
		return 0, perr.Newf(perr.ErrorCodeValidation, "unknown contribution category %q", c.Category)
	}
	if _, err := s.Roster.ByChatID(ctx, c.ChatID); err != nil {
		return 0, err
	}
	if c.Points <= 0 {
		c.Points = s.Weights.For(c.Category)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now().UTC()
	}

	id, err := s.Storage.Insert(ctx, c)
	if err != nil {
		return 0, err
	}
	s.log.Info().
		Int64("id", id).
		Int64("chat_id", c.ChatID).
		Str("category", string(c.Category)).
		Float64("points", c.Points).
		Msg("contribution recorded")
	return id, nil
}

// Update implements domain.WriterPort
func (s *Service) Update(ctx context.Context, id int64, points float64, note string) error {
	if points <= 0 {
		return perr.Newf(perr.ErrorCodeValidation, "points must be positive")
	}
	return s.Storage.Update(ctx, id, points, note)
}

// Remove implements domain.WriterPort
func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.Storage.Delete(ctx, id)
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context, chatID int64) ([]domain.Contribution, error) {
	return s.Storage.List(ctx, chatID)
}

// SumByParticipant implements domain.ReaderPort
func (s *Service) SumByParticipant(ctx context.Context) (map[int64]float64, error) {
	return s.Storage.SumByParticipant(ctx)
}

// CountsByParticipant implements domain.ReaderPort
func (s *Service) CountsByParticipant(ctx context.Context) (map[int64]domain.CategoryCounts, error) {
	return s.Storage.CountsByParticipant(ctx)
}
