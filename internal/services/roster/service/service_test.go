package service

import (
	"context"
	"testing"
	"time"

	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/roster/domain"
	"yellowboard/internal/services/roster/repo"
)

type fakeStorage struct {
	byChat   map[int64]domain.Participant
	bySocial map[string]domain.Participant
	upserts  []domain.Participant
	linked   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		byChat:   map[int64]domain.Participant{},
		bySocial: map[string]domain.Participant{},
	}
}

func (f *fakeStorage) List(context.Context) ([]domain.Participant, error) {
	var out []domain.Participant
	for _, p := range f.byChat {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStorage) ByChatID(_ context.Context, chatID int64) (domain.Participant, bool, error) {
	p, ok := f.byChat[chatID]
	return p, ok, nil
}

func (f *fakeStorage) BySocialID(_ context.Context, socialID string) (domain.Participant, bool, error) {
	p, ok := f.bySocial[socialID]
	return p, ok, nil
}

func (f *fakeStorage) Upsert(_ context.Context, p domain.Participant) error {
	f.upserts = append(f.upserts, p)
	f.byChat[p.ChatID] = p
	return nil
}

func (f *fakeStorage) SetSocial(_ context.Context, chatID int64, handle, socialID string) error {
	f.linked = append(f.linked, socialID)
	p := f.byChat[chatID]
	p.ChatID = chatID
	p.Handle = handle
	p.SocialID = socialID
	f.byChat[chatID] = p
	f.bySocial[socialID] = p
	return nil
}

type fakeTx struct{}

func (fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(nil) }
func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }

func newService(st *fakeStorage) *Service {
	binder := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return st })
	return New(fakeTx{}, binder)
}

func TestUpsert_NormalizesHandle(t *testing.T) {
	st := newFakeStorage()
	svc := newService(st)

	p := domain.Participant{ChatID: 7, Handle: "@YellowFan", JoinedAt: time.Now()}
	if err := svc.Upsert(context.Background(), p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got := st.upserts[0].Handle; got != "yellowfan" {
		t.Fatalf("handle = %q, want normalized form", got)
	}
}

func TestUpsert_RequiresChatID(t *testing.T) {
	svc := newService(newFakeStorage())
	if err := svc.Upsert(context.Background(), domain.Participant{}); err == nil {
		t.Fatal("expected error for missing chat id")
	}
}

func TestLinkSocial_RejectsForeignOwner(t *testing.T) {
	st := newFakeStorage()
	st.bySocial["555"] = domain.Participant{ChatID: 1, SocialID: "555"}
	svc := newService(st)

	err := svc.LinkSocial(context.Background(), 2, "bob", "555")
	if err == nil {
		t.Fatal("expected conflict linking an owned social id")
	}
	if len(st.linked) != 0 {
		t.Fatalf("link written despite conflict: %v", st.linked)
	}
}

func TestLinkSocial_SamePairIsIdempotent(t *testing.T) {
	st := newFakeStorage()
	st.bySocial["555"] = domain.Participant{ChatID: 2, SocialID: "555"}
	svc := newService(st)

	if err := svc.LinkSocial(context.Background(), 2, "bob", "555"); err != nil {
		t.Fatalf("re-link of own social id failed: %v", err)
	}
}

func TestLinkSocial_RequiresSocialID(t *testing.T) {
	svc := newService(newFakeStorage())
	if err := svc.LinkSocial(context.Background(), 2, "bob", ""); err == nil {
		t.Fatal("expected error for empty social id")
	}
}

func TestByChatID_NotFound(t *testing.T) {
	svc := newService(newFakeStorage())
	if _, err := svc.ByChatID(context.Background(), 99); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestSocialIndex_SkipsUnlinked(t *testing.T) {
	st := newFakeStorage()
	st.byChat[1] = domain.Participant{ChatID: 1, SocialID: "555"}
	st.byChat[2] = domain.Participant{ChatID: 2}
	svc := newService(st)

	idx, err := svc.SocialIndex(context.Background())
	if err != nil {
		t.Fatalf("SocialIndex: %v", err)
	}
	if len(idx) != 1 || idx["555"] != 1 {
		t.Fatalf("index = %v", idx)
	}
}
