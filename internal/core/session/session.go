// Package session maps timestamps to the fixed three hour scoring buckets
// that reset the chat activity bonus chain
package session

import (
	"fmt"
	"time"
)

// Hours is the width of one bucket
const Hours = 3

// PerDay is the number of buckets in a calendar day
const PerDay = 24 / Hours

// DateLayout is the canonical calendar date format used by activity records
const DateLayout = "2006-01-02"

// Label returns the bucket label for an hour of day 0..23, e.g. hour 14 -> "12-15"
func Label(hour int) string {
	start := (hour / Hours) * Hours
	return fmt.Sprintf("%02d-%02d", start, start+Hours)
}

// For returns the bucket label for a timestamp, evaluated in UTC
func For(t time.Time) string {
	return Label(t.UTC().Hour())
}

// Date returns the canonical calendar date of a timestamp in UTC
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Floor returns the UTC start of the bucket containing t
func Floor(t time.Time) time.Time {
	u := t.UTC()
	start := (u.Hour() / Hours) * Hours
	return time.Date(u.Year(), u.Month(), u.Day(), start, 0, 0, 0, time.UTC)
}

// Labels returns all bucket labels of a day in order
func Labels() []string {
	out := make([]string, 0, PerDay)
	for h := 0; h < 24; h += Hours {
		out = append(out, Label(h))
	}
	return out
}
