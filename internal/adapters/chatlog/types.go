// Package chatlog reads exported chat-history JSON dumps used for
// activity backfills
package chatlog

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Time wraps time.Time to accept the export's ISO timestamps, which
// may carry a Z suffix or a numeric offset
type Time struct{ time.Time }

// UnmarshalJSON parses the timestamp into UTC
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("chatlog: unparseable timestamp %q", s)
}

// Message is one chat message from the export
type Message struct {
	ID       int64  `json:"id"`
	SenderID int64  `json:"sender_id"`
	Sender   string `json:"sender_name"`
	Date     Time   `json:"date"`
	Text     string `json:"text"`
}

// Dump is one exported day of chat history
type Dump struct {
	Date     string    `json:"date"`
	Messages []Message `json:"messages"`
}
