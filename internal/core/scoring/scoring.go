// Package scoring implements the capped geometric chat activity scorer.
//
// Each message inside a session bucket earns the previous message's score
// times the bonus multiplier, starting at 1.0, until the session cap is
// reached. Once capped a session is frozen and further messages are ignored,
// which bounds the score obtainable per bucket regardless of message volume.
package scoring

import (
	"math"
	"sort"
	"time"

	"yellowboard/internal/core/session"
)

// Default parameter values observed across deployments
const (
	DefaultCap   = 10
	DefaultBonus = 1.25
)

// Params configures the scorer
type Params struct {
	// Cap is the maximum number of scoring messages per session
	Cap int
	// Bonus is the geometric multiplier applied to consecutive messages
	Bonus float64
}

// Normalized returns a copy of p with zero values replaced by defaults
func (p Params) Normalized() Params {
	if p.Cap <= 0 {
		p.Cap = DefaultCap
	}
	if p.Bonus <= 0 {
		p.Bonus = DefaultBonus
	}
	return p
}

// SessionState is the durable per bucket summary
// Score never decreases and is frozen once Messages reaches the cap
type SessionState struct {
	Messages int     `json:"messages"`
	Score    float64 `json:"score"`
}

// Scorer accumulates one session bucket message by message.
// Messages must be fed in timestamp ascending order; the bonus chain
// depends on it.
type Scorer struct {
	params Params
	state  SessionState
	last   float64
}

// NewScorer returns a Scorer for one session bucket
func NewScorer(p Params) *Scorer {
	return &Scorer{params: p.Normalized()}
}

// Add scores one message and returns the points awarded and whether the
// message counted. Messages past the cap award nothing and do not mutate
// state.
func (s *Scorer) Add() (float64, bool) {
	if s.state.Messages >= s.params.Cap {
		return 0, false
	}
	pts := 1.0
	if s.state.Messages > 0 {
		pts = s.last * s.params.Bonus
	}
	s.state.Messages++
	s.state.Score += pts
	s.last = pts
	return pts, true
}

// State returns the accumulated session state with the score rounded the
// way records are persisted
func (s *Scorer) State() SessionState {
	return SessionState{Messages: s.state.Messages, Score: Round(s.state.Score)}
}

// Round truncates a score to the 4 decimal places stored in records
func Round(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ScoreSession scores n messages of a single bucket in one shot
func ScoreSession(p Params, n int) SessionState {
	sc := NewScorer(p)
	for i := 0; i < n; i++ {
		sc.Add()
	}
	return sc.State()
}

// ScoreDay partitions one participant's message timestamps of a single
// calendar date into session buckets and scores each bucket. Timestamps are
// sorted ascending before scoring so unordered input is safe.
func ScoreDay(p Params, times []time.Time) map[string]SessionState {
	if len(times) == 0 {
		return map[string]SessionState{}
	}
	sorted := append([]time.Time(nil), times...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	scorers := map[string]*Scorer{}
	for _, ts := range sorted {
		label := session.For(ts)
		sc, ok := scorers[label]
		if !ok {
			sc = NewScorer(p)
			scorers[label] = sc
		}
		sc.Add()
	}

	out := make(map[string]SessionState, len(scorers))
	for label, sc := range scorers {
		out[label] = sc.State()
	}
	return out
}

// ContinueDay extends an existing session map with additional messages per
// bucket. The bonus chain is fully determined by a bucket's message count,
// so a touched bucket is rescored from its combined count and the outcome
// matches a full rebuild over the bucket's entire message set. Buckets
// without new messages are kept untouched.
func ContinueDay(p Params, existing map[string]SessionState, added map[string]int) map[string]SessionState {
	p = p.Normalized()
	out := make(map[string]SessionState, len(existing)+len(added))
	for label, st := range existing {
		out[label] = st
	}
	for label, n := range added {
		if n <= 0 {
			continue
		}
		out[label] = ScoreSession(p, out[label].Messages+n)
	}
	return out
}

// DayTotal sums a session map into the day score
func DayTotal(sessions map[string]SessionState) float64 {
	var total float64
	for _, st := range sessions {
		total += st.Score
	}
	return Round(total)
}
