package social

import (
	json "encoding/json/v2"
	"testing"
	"time"
)

func TestID_AcceptsStringAndNumber(t *testing.T) {
	var tw Tweet
	if err := json.Unmarshal([]byte(`{"id":"190123","author":{"id":456}}`), &tw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tw.ID != "190123" {
		t.Fatalf("string id = %q", tw.ID)
	}
	if tw.Author.ID != "456" {
		t.Fatalf("numeric id = %q", tw.Author.ID)
	}
}

func TestTime_LegacyTwitterFormat(t *testing.T) {
	var tw Tweet
	raw := `{"createdAt":"Wed Apr 23 14:05:09 +0000 2025"}`
	if err := json.Unmarshal([]byte(raw), &tw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2025, 4, 23, 14, 5, 9, 0, time.UTC)
	if !tw.CreatedAt.Equal(want) {
		t.Fatalf("createdAt = %v, want %v", tw.CreatedAt.Time, want)
	}
}

func TestTime_RFC3339Fallback(t *testing.T) {
	var tw Tweet
	if err := json.Unmarshal([]byte(`{"createdAt":"2025-04-23T14:05:09Z"}`), &tw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tw.CreatedAt.IsZero() {
		t.Fatal("rfc3339 timestamp dropped")
	}
}

func TestTweet_MediaKinds(t *testing.T) {
	raw := `{"extendedEntities":{"media":[{"type":"photo"},{"type":"video"}]}}`
	var tw Tweet
	if err := json.Unmarshal([]byte(raw), &tw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tw.HasMedia() || !tw.HasVideo() {
		t.Fatalf("media flags wrong: media=%v video=%v", tw.HasMedia(), tw.HasVideo())
	}

	var bare Tweet
	if bare.HasMedia() || bare.HasVideo() {
		t.Fatal("empty tweet reports media")
	}
}

func TestNormalizeHandle(t *testing.T) {
	cases := map[string]string{
		"@YellowFan": "yellowfan",
		"  spaced  ": "spaced",
		"MiXeDcAsE":  "mixedcase",
		"@@double":   "@double",
		"":           "",
	}
	for in, want := range cases {
		if got := NormalizeHandle(in); got != want {
			t.Fatalf("NormalizeHandle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTweet_URL(t *testing.T) {
	tw := Tweet{ID: "42", Author: User{UserName: "alice"}}
	if got := tw.URL(); got != "https://twitter.com/alice/status/42" {
		t.Fatalf("URL = %q", got)
	}
	anon := Tweet{ID: "42"}
	if got := anon.URL(); got != "https://twitter.com/i/status/42" {
		t.Fatalf("fallback URL = %q", got)
	}
}
