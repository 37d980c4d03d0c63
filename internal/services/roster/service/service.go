// Package service implements the roster service
package service

import (
	"context"

	"yellowboard/internal/adapters/social"
	"yellowboard/internal/modkit/repokit"
	perr "yellowboard/internal/platform/errors"
	"yellowboard/internal/services/roster/domain"
	"yellowboard/internal/services/roster/repo"
)

// Service implements domain.ReaderPort and domain.WriterPort
type Service struct {
	Storage repo.Storage
	binder  repokit.Binder[repo.Storage]
	db      repokit.TxRunner
}

// New constructs a roster service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	if db == nil {
		panic("roster.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("roster.Service requires a non nil Storage binder")
	}
	return &Service{Storage: binder.Bind(db), binder: binder, db: db}
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context) ([]domain.Participant, error) {
	return s.Storage.List(ctx)
}

// ByChatID implements domain.ReaderPort
func (s *Service) ByChatID(ctx context.Context, chatID int64) (domain.Participant, error) {
	p, ok, err := s.Storage.ByChatID(ctx, chatID)
	if err != nil {
		return domain.Participant{}, err
	}
	if !ok {
		return domain.Participant{}, perr.Newf(perr.ErrorCodeNotFound, "participant %d not found", chatID)
	}
	return p, nil
}

// ChatIDs implements domain.ReaderPort
func (s *Service) ChatIDs(ctx context.Context) (map[int64]struct{}, error) {
	ps, err := s.Storage.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]struct{}, len(ps))
	for _, p := range ps {
		out[p.ChatID] = struct{}{}
	}
	return out, nil
}

// SocialIndex implements domain.ReaderPort
func (s *Service) SocialIndex(ctx context.Context) (map[string]int64, error) {
	ps, err := s.Storage.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(ps))
	for _, p := range ps {
		if p.Linked() {
			out[p.SocialID] = p.ChatID
		}
	}
	return out, nil
}

// Upsert implements domain.WriterPort
func (s *Service) Upsert(ctx context.Context, p domain.Participant) error {
	if p.ChatID == 0 {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "participant requires a chat id")
	}
	p.Handle = social.NormalizeHandle(p.Handle)
	return s.Storage.Upsert(ctx, p)
}

// LinkSocial implements domain.WriterPort. A social id links to exactly
// one participant; re-linking the same pair is a no-op and linking an
// id owned by another participant is rejected
func (s *Service) LinkSocial(ctx context.Context, chatID int64, handle, socialID string) error {
	if socialID == "" {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "social id required")
	}
	handle = social.NormalizeHandle(handle)

	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		owner, found, err := st.BySocialID(ctx, socialID)
		if err != nil {
			return err
		}
		if found && owner.ChatID != chatID {
			return perr.Newf(perr.ErrorCodeConflict, "social id already linked to participant %d", owner.ChatID)
		}
		return st.SetSocial(ctx, chatID, handle, socialID)
	})
}
