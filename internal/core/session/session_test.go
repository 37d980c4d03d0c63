package session

import (
	"testing"
	"time"
)

func TestLabel_AllHours(t *testing.T) {
	want := map[int]string{
		0: "00-03", 1: "00-03", 2: "00-03",
		3: "03-06", 5: "03-06",
		6: "06-09", 8: "06-09",
		9: "09-12", 11: "09-12",
		12: "12-15", 14: "12-15",
		15: "15-18", 17: "15-18",
		18: "18-21", 20: "18-21",
		21: "21-24", 23: "21-24",
	}
	for h, w := range want {
		if got := Label(h); got != w {
			t.Fatalf("Label(%d) = %q, want %q", h, got, w)
		}
	}
}

func TestFor_UsesUTC(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC
	loc := time.FixedZone("plus2", 2*3600)
	ts := time.Date(2025, 4, 23, 23, 30, 0, 0, loc)
	if got := For(ts); got != "21-24" {
		t.Fatalf("For = %q, want 21-24", got)
	}
	if got := Date(ts); got != "2025-04-23" {
		t.Fatalf("Date = %q, want 2025-04-23", got)
	}
}

func TestLabels_CoversDayWithoutGaps(t *testing.T) {
	ls := Labels()
	if len(ls) != PerDay {
		t.Fatalf("expected %d labels, got %d", PerDay, len(ls))
	}
	seen := map[string]bool{}
	for h := 0; h < 24; h++ {
		seen[Label(h)] = true
	}
	if len(seen) != PerDay {
		t.Fatalf("expected %d distinct labels over 24 hours, got %d", PerDay, len(seen))
	}
}

func TestFloor(t *testing.T) {
	ts := time.Date(2025, 4, 23, 14, 59, 59, 0, time.UTC)
	got := Floor(ts)
	want := time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Floor = %v, want %v", got, want)
	}
}
