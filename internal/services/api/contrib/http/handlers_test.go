package http

import (
	"context"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yellowboard/internal/modkit/httpkit"
	"yellowboard/internal/services/contrib/domain"
)

type fakeWriter struct {
	added   []domain.Contribution
	updated map[int64]float64
	removed []int64
}

func (f *fakeWriter) Add(_ context.Context, c domain.Contribution) (int64, error) {
	f.added = append(f.added, c)
	return int64(len(f.added)), nil
}

func (f *fakeWriter) Update(_ context.Context, id int64, points float64, _ string) error {
	if f.updated == nil {
		f.updated = map[int64]float64{}
	}
	f.updated[id] = points
	return nil
}

func (f *fakeWriter) Remove(_ context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return nil
}

type fakeReader struct{ items []domain.Contribution }

func (f fakeReader) List(_ context.Context, chatID int64) ([]domain.Contribution, error) {
	var out []domain.Contribution
	for _, c := range f.items {
		if c.ChatID == chatID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeReader) SumByParticipant(context.Context) (map[int64]float64, error) { return nil, nil }
func (f fakeReader) CountsByParticipant(context.Context) (map[int64]domain.CategoryCounts, error) {
	return nil, nil
}

// run executes a handler and returns status code and body
func run(t *testing.T, h func(stdhttp.ResponseWriter, *stdhttp.Request), method, target, body string) (int, string) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	h(rec, req)
	b, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(b)
}

func TestAdd_RecordsContribution(t *testing.T) {
	w := &fakeWriter{}
	h := &handlers{writer: w}

	code, body := run(t, httpkit.JSON(h.add), stdhttp.MethodPost, "/contrib",
		`{"chat_id":42,"category":"hosting_ama","points":10,"note":"AMA","recorded_by":"admin"}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body %q", code, body)
	}
	if len(w.added) != 1 {
		t.Fatalf("added = %+v", w.added)
	}
	got := w.added[0]
	if got.ChatID != 42 || got.Category != domain.HostingAMA || got.Points != 10 || got.RecordedBy != "admin" {
		t.Fatalf("contribution = %+v", got)
	}
}

func TestAdd_MissingChatIDFailsValidation(t *testing.T) {
	w := &fakeWriter{}
	h := &handlers{writer: w}

	code, body := run(t, httpkit.JSON(h.add), stdhttp.MethodPost, "/contrib",
		`{"category":"hosting_ama","recorded_by":"admin"}`)
	if code < 400 {
		t.Fatalf("expected validation failure, got %d body %q", code, body)
	}
	if len(w.added) != 0 {
		t.Fatalf("invalid payload recorded: %+v", w.added)
	}
}

func TestAdd_UnknownCategoryRejected(t *testing.T) {
	w := &fakeWriter{}
	h := &handlers{writer: w}

	code, _ := run(t, httpkit.JSON(h.add), stdhttp.MethodPost, "/contrib",
		`{"chat_id":42,"category":"shoelace_tying","recorded_by":"admin"}`)
	if code < 400 {
		t.Fatalf("unknown category accepted, status %d", code)
	}
	if len(w.added) != 0 {
		t.Fatalf("invalid payload recorded: %+v", w.added)
	}
}

func TestUpdate_ZeroPointsFailsValidation(t *testing.T) {
	w := &fakeWriter{}
	h := &handlers{writer: w}

	code, _ := run(t, httpkit.JSON(h.update), stdhttp.MethodPut, "/contrib",
		`{"id":7,"points":0}`)
	if code < 400 {
		t.Fatalf("zero points accepted, status %d", code)
	}
	if len(w.updated) != 0 {
		t.Fatalf("invalid payload applied: %+v", w.updated)
	}
}

func TestRemove_RequiresID(t *testing.T) {
	w := &fakeWriter{}
	h := &handlers{writer: w}

	code, _ := run(t, httpkit.Call(h.remove), stdhttp.MethodDelete, "/contrib", "")
	if code < 400 {
		t.Fatalf("missing id accepted, status %d", code)
	}

	code, _ = run(t, httpkit.Call(h.remove), stdhttp.MethodDelete, "/contrib?id=9", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("remove status = %d", code)
	}
	if len(w.removed) != 1 || w.removed[0] != 9 {
		t.Fatalf("removed = %v", w.removed)
	}
}

func TestList_FiltersByChatID(t *testing.T) {
	rd := fakeReader{items: []domain.Contribution{
		{ID: 1, ChatID: 42, Category: domain.HostingAMA, Points: 10},
		{ID: 2, ChatID: 77, Category: domain.ProductFeedback, Points: 5},
	}}
	h := &handlers{reader: rd}

	code, body := run(t, httpkit.Call(h.list), stdhttp.MethodGet, "/contrib?chat_id=42", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body %q", code, body)
	}
	if !strings.Contains(body, `"hosting_ama"`) || strings.Contains(body, `"product_feedback"`) {
		t.Fatalf("body = %q", body)
	}
}
