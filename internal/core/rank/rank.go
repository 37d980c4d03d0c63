// Package rank orders leaderboard entries deterministically.
package rank

import "sort"

// Subtotals are the four scored components of a leaderboard entry.
type Subtotals struct {
	Posts         float64
	Engagement    float64
	Activity      float64
	Contributions float64
}

// Total is the grand total across all components.
func (s Subtotals) Total() float64 {
	return s.Posts + s.Engagement + s.Activity + s.Contributions
}

// Entry is one participant's unranked score card.
type Entry struct {
	ChatID int64
	Subtotals
}

// Ranked is an entry with its computed total and assigned position.
type Ranked struct {
	Entry
	Total float64
	Rank  int
}

// Order sorts entries by grand total descending and assigns contiguous
// ranks from 1. Ties break on chat id ascending so repeated runs over
// the same inputs produce the same board. The input slice is not
// modified.
func Order(entries []Entry) []Ranked {
	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = Ranked{Entry: e, Total: e.Total()}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].ChatID < out[j].ChatID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
