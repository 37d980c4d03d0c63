package social

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// ID is a tweet or user identifier. The API is inconsistent about
// whether ids arrive as JSON strings or numbers, so both are accepted
// and normalized to the string form at the boundary.
type ID string

// UnmarshalJSON accepts both "123" and 123
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		if len(b) < 2 || b[len(b)-1] != '"' {
			return fmt.Errorf("social: malformed id %q", b)
		}
		*id = ID(b[1 : len(b)-1])
		return nil
	}
	*id = ID(b)
	return nil
}

// String interface
func (id ID) String() string { return string(id) }

const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Time wraps time.Time to accept the legacy twitter timestamp format
// alongside RFC 3339
type Time struct{ time.Time }

// UnmarshalJSON parses either timestamp form, always into UTC
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(createdAtLayout, s); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("social: unparseable timestamp %q", s)
	}
	t.Time = parsed.UTC()
	return nil
}

// User is a partial user document with the fields we use
type User struct {
	ID       ID     `json:"id"`
	UserName string `json:"userName"`
	Name     string `json:"name"`
}

// Media is one attachment on a tweet
type Media struct {
	Type string `json:"type"`
	URL  string `json:"media_url_https"`
}

type entities struct {
	Media []Media `json:"media"`
}

// Tweet is a partial tweet document with the fields we use
type Tweet struct {
	ID             ID       `json:"id"`
	Text           string   `json:"text"`
	Author         User     `json:"author"`
	CreatedAt      Time     `json:"createdAt"`
	ViewCount      int64    `json:"viewCount"`
	LikeCount      int      `json:"likeCount"`
	RetweetCount   int      `json:"retweetCount"`
	ReplyCount     int      `json:"replyCount"`
	QuoteCount     int      `json:"quoteCount"`
	ConversationID ID       `json:"conversationId"`
	InReplyToID    ID       `json:"inReplyToId"`
	IsReply        bool     `json:"isReply"`
	QuotedTweet    *Tweet   `json:"quoted_tweet"`
	Extended       entities `json:"extendedEntities"`
}

// HasVideo reports whether any attachment is a video
func (t Tweet) HasVideo() bool {
	for _, m := range t.Extended.Media {
		if m.Type == "video" {
			return true
		}
	}
	return false
}

// HasMedia reports whether the tweet carries any attachment
func (t Tweet) HasMedia() bool { return len(t.Extended.Media) > 0 }

// URL is the canonical permalink for the tweet
func (t Tweet) URL() string {
	handle := t.Author.UserName
	if handle == "" {
		handle = "i"
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", handle, t.ID)
}

// QuotesID reports whether the tweet quotes the given tweet id
func (t Tweet) QuotesID(id ID) bool {
	return t.QuotedTweet != nil && t.QuotedTweet.ID == id
}

// page envelopes returned by every list endpoint
type tweetsPage struct {
	Tweets      []Tweet `json:"tweets"`
	HasNextPage bool    `json:"has_next_page"`
	NextCursor  string  `json:"next_cursor"`
}

type usersPage struct {
	Users       []User `json:"users"`
	HasNextPage bool   `json:"has_next_page"`
	NextCursor  string `json:"next_cursor"`
}

var handleFolder = cases.Fold()

// NormalizeHandle canonicalizes a user-entered handle: strips the @
// prefix and whitespace, then casefolds so lookups are case stable
func NormalizeHandle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	return handleFolder.String(s)
}
