package service

import (
	"context"
	"testing"
	"time"

	"yellowboard/internal/adapters/social"
	"yellowboard/internal/modkit/repokit"
	"yellowboard/internal/services/engage/domain"
	"yellowboard/internal/services/engage/repo"
	postsdom "yellowboard/internal/services/posts/domain"
	rosterdom "yellowboard/internal/services/roster/domain"
)

type fakeStorage struct {
	events []domain.Event
	keys   map[string]struct{}
}

func newFakeStorage() *fakeStorage { return &fakeStorage{keys: map[string]struct{}{}} }

func (f *fakeStorage) InsertEvents(_ context.Context, evs []domain.Event) (int, error) {
	n := 0
	for _, ev := range evs {
		k := ev.PostID + "|" + ev.ActorSocialID + "|" + ev.Action
		if _, dup := f.keys[k]; dup {
			continue
		}
		f.keys[k] = struct{}{}
		f.events = append(f.events, ev)
		n++
	}
	return n, nil
}

func (f *fakeStorage) PointsByActor(context.Context) (map[int64]float64, error) { return nil, nil }
func (f *fakeStorage) CountsByActor(context.Context) (map[int64]domain.ActionCounts, error) {
	return nil, nil
}

type fakeRoster struct{ idx map[string]int64 }

func (f fakeRoster) List(context.Context) ([]rosterdom.Participant, error) { return nil, nil }
func (f fakeRoster) ByChatID(context.Context, int64) (rosterdom.Participant, error) {
	return rosterdom.Participant{}, nil
}
func (f fakeRoster) ChatIDs(context.Context) (map[int64]struct{}, error) { return nil, nil }
func (f fakeRoster) SocialIndex(context.Context) (map[string]int64, error) {
	return f.idx, nil
}

type fakePosts struct{ posts []postsdom.Post }

func (f fakePosts) InWindow(context.Context, time.Time) ([]postsdom.Post, error) {
	return f.posts, nil
}
func (f fakePosts) SubtotalsByAuthor(context.Context, postsdom.Weights) (map[int64]float64, error) {
	return nil, nil
}
func (f fakePosts) CountsByAuthor(context.Context) (map[int64]postsdom.AuthorCounts, error) {
	return nil, nil
}

type fakeMarker struct{ marks map[string]bool }

func (f *fakeMarker) Ingest(context.Context, []postsdom.Post) (postsdom.Stats, error) {
	return postsdom.Stats{}, nil
}
func (f *fakeMarker) MarkThread(_ context.Context, postID string, isThread bool) error {
	f.marks[postID] = isThread
	return nil
}

type fakeSource struct {
	replies    map[social.ID][]social.Tweet
	retweeters map[social.ID][]social.User
}

func (f fakeSource) RepliesAndQuotes(_ context.Context, id social.ID) ([]social.Tweet, error) {
	return f.replies[id], nil
}
func (f fakeSource) Retweeters(_ context.Context, id social.ID) ([]social.User, error) {
	return f.retweeters[id], nil
}

type fakeTx struct{}

func (fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(nil) }
func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }

func quoteOf(actor social.ID, quoted social.ID) social.Tweet {
	return social.Tweet{
		Author:      social.User{ID: actor},
		QuotedTweet: &social.Tweet{ID: quoted},
	}
}

func replyBy(actor social.ID) social.Tweet {
	return social.Tweet{Author: social.User{ID: actor}}
}

func newRun(
	st *fakeStorage,
	src fakeSource,
	posts []postsdom.Post,
	idx map[string]int64,
) (*Service, *fakeMarker) {
	marker := &fakeMarker{marks: map[string]bool{}}
	binder := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return st })
	svc := New(fakeTx{}, binder, src, fakeRoster{idx: idx}, fakePosts{posts: posts}, marker,
		Config{WindowDays: 3, Points: 2, Workers: 2})
	return svc, marker
}

func TestRun_CreditsRosterInteractions(t *testing.T) {
	post := postsdom.Post{ID: "p1", AuthorChatID: 1, AuthorSocialID: "A", ThreadChecked: true}
	src := fakeSource{
		replies: map[social.ID][]social.Tweet{
			"p1": {replyBy("B"), replyBy("stranger")},
		},
		retweeters: map[social.ID][]social.User{
			"p1": {{ID: "C"}},
		},
	}
	st := newFakeStorage()
	svc, _ := newRun(st, src, []postsdom.Post{post}, map[string]int64{"A": 1, "B": 2, "C": 3})

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Inserted != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	byActor := map[int64]string{}
	for _, ev := range st.events {
		byActor[ev.ActorChatID] = ev.Action
		if ev.Points != 2 || ev.PostAuthorID != 1 {
			t.Fatalf("event = %+v", ev)
		}
	}
	if byActor[2] != "reply" || byActor[3] != "retweet_or_quote" {
		t.Fatalf("actions = %v", byActor)
	}
}

func TestRun_RetweetAbsorbsQuote(t *testing.T) {
	post := postsdom.Post{ID: "p1", AuthorChatID: 1, AuthorSocialID: "A", ThreadChecked: true}
	src := fakeSource{
		replies: map[social.ID][]social.Tweet{
			"p1": {quoteOf("B", "p1")},
		},
		retweeters: map[social.ID][]social.User{
			"p1": {{ID: "B"}},
		},
	}
	st := newFakeStorage()
	svc, _ := newRun(st, src, []postsdom.Post{post}, map[string]int64{"A": 1, "B": 2})

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Inserted != 1 {
		t.Fatalf("retweet+quote should credit once, stats = %+v", stats)
	}
	if st.events[0].Action != "retweet_or_quote" {
		t.Fatalf("event = %+v", st.events[0])
	}
}

func TestRun_MarksSelfReplyThreads(t *testing.T) {
	post := postsdom.Post{ID: "p1", AuthorChatID: 1, AuthorSocialID: "A"}
	src := fakeSource{
		replies: map[social.ID][]social.Tweet{
			"p1": {replyBy("A")},
		},
	}
	st := newFakeStorage()
	svc, marker := newRun(st, src, []postsdom.Post{post}, map[string]int64{"A": 1})

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ThreadsMarked != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if isThread, ok := marker.marks["p1"]; !ok || !isThread {
		t.Fatalf("marks = %v", marker.marks)
	}
	// self engagement is never credited
	if stats.Inserted != 0 {
		t.Fatalf("author credited on own post: %+v", st.events)
	}
}

func TestRun_SkipsAlreadyCheckedThreads(t *testing.T) {
	post := postsdom.Post{ID: "p1", AuthorChatID: 1, AuthorSocialID: "A", ThreadChecked: true}
	st := newFakeStorage()
	svc, marker := newRun(st, fakeSource{}, []postsdom.Post{post}, map[string]int64{"A": 1})

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(marker.marks) != 0 {
		t.Fatalf("checked post re-marked: %v", marker.marks)
	}
}

func TestRun_StampsEventsWithInteractionTime(t *testing.T) {
	posted := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	replied := time.Date(2026, 8, 2, 12, 30, 0, 0, time.UTC)
	fetched := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	post := postsdom.Post{
		ID: "p1", AuthorChatID: 1, AuthorSocialID: "A",
		ThreadChecked: true, CreatedAt: posted,
	}
	reply := replyBy("B")
	reply.CreatedAt = social.Time{Time: replied}
	src := fakeSource{
		replies:    map[social.ID][]social.Tweet{"p1": {reply}},
		retweeters: map[social.ID][]social.User{"p1": {{ID: "C"}}},
	}
	st := newFakeStorage()
	svc, _ := newRun(st, src, []postsdom.Post{post}, map[string]int64{"A": 1, "B": 2, "C": 3})
	svc.now = func() time.Time { return fetched }

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(st.events) != 2 {
		t.Fatalf("events = %+v", st.events)
	}
	for _, ev := range st.events {
		switch ev.Action {
		case "reply":
			if !ev.CreatedAt.Equal(replied) {
				t.Fatalf("reply stamped %v, want reply time %v", ev.CreatedAt, replied)
			}
		case "retweet_or_quote":
			// retweeter listings carry no timestamp
			if !ev.CreatedAt.Equal(fetched) {
				t.Fatalf("retweet stamped %v, want fetch time %v", ev.CreatedAt, fetched)
			}
		}
	}
}

func TestRun_RerunInsertsNothingNew(t *testing.T) {
	post := postsdom.Post{ID: "p1", AuthorChatID: 1, AuthorSocialID: "A", ThreadChecked: true}
	src := fakeSource{
		replies: map[social.ID][]social.Tweet{"p1": {replyBy("B")}},
	}
	st := newFakeStorage()
	svc, _ := newRun(st, src, []postsdom.Post{post}, map[string]int64{"A": 1, "B": 2})

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if stats.Events != 1 || stats.Inserted != 0 {
		t.Fatalf("rerun stats = %+v", stats)
	}
}
