// Package engage classifies interactions on tracked posts into
// credited engagement events.
package engage

// Action identifies how an actor engaged with a post.
type Action string

const (
	// ActionReply credits a reply to the post.
	ActionReply Action = "reply"

	// ActionRetweetOrQuote credits an amplification of the post.
	// A retweet and a quote share one slot per actor per post.
	ActionRetweetOrQuote Action = "retweet_or_quote"
)

// DefaultPoints is the credit awarded per distinct engagement action.
const DefaultPoints = 2

// Event is a single credited engagement action by an actor on a post.
type Event struct {
	PostID  string
	ActorID string
	Action  Action
	Points  int
}

// Interactions is the raw interaction surface of one post as fetched
// from the social platform API. Actor lists may contain duplicates and
// actors outside the roster.
type Interactions struct {
	PostID     string
	AuthorID   string
	Retweeters []string
	Repliers   []string
	Quoters    []string
}

// Classifier turns raw interactions into deduplicated events for
// rostered actors.
type Classifier struct {
	points int
	roster map[string]struct{}
}

// NewClassifier builds a classifier crediting points per action and
// restricted to the given roster of actor ids. A nil roster rejects
// everyone.
func NewClassifier(points int, roster map[string]struct{}) *Classifier {
	if points <= 0 {
		points = DefaultPoints
	}
	return &Classifier{points: points, roster: roster}
}

// Classify produces at most one event per (actor, action) pair.
// Retweeters are credited before quoters so a quote never double-fills
// the amplification slot. The post author is never credited on their
// own post.
func (c *Classifier) Classify(in Interactions) []Event {
	type key struct {
		actor  string
		action Action
	}
	seen := make(map[key]struct{})
	var out []Event

	credit := func(actor string, action Action) {
		if actor == "" || actor == in.AuthorID {
			return
		}
		if _, ok := c.roster[actor]; !ok {
			return
		}
		k := key{actor, action}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, Event{
			PostID:  in.PostID,
			ActorID: actor,
			Action:  action,
			Points:  c.points,
		})
	}

	for _, a := range in.Retweeters {
		credit(a, ActionRetweetOrQuote)
	}
	for _, a := range in.Repliers {
		credit(a, ActionReply)
	}
	for _, a := range in.Quoters {
		credit(a, ActionRetweetOrQuote)
	}
	return out
}

// Tally sums credited points per actor across events.
func Tally(events []Event) map[string]int {
	totals := make(map[string]int, len(events))
	for _, ev := range events {
		totals[ev.ActorID] += ev.Points
	}
	return totals
}
