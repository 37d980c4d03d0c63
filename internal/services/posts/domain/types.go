// Package domain defines the types and interfaces for the posts service
package domain

import (
	"time"

	"yellowboard/internal/adapters/social"
)

// ContentType classifies a post for leaderboard weighting
type ContentType string

const (
	// ContentText is a plain text post
	ContentText ContentType = "text_only"

	// ContentImage is a post with at least one image attachment
	ContentImage ContentType = "image"

	// ContentVideo is a post with a video attachment
	ContentVideo ContentType = "video"
)

// Post is one tracked social post by a participant
type Post struct {
	ID             string
	AuthorChatID   int64
	AuthorSocialID string
	URL            string
	Text           string
	CreatedAt      time.Time
	ContentType    ContentType

	Views    int64
	Likes    int
	Retweets int
	Replies  int
	Quotes   int

	// IsThread marks a self-reply thread, which outweighs the content
	// type in scoring. ThreadChecked records that the engage run already
	// inspected the conversation
	IsThread      bool
	ThreadChecked bool
}

// Classify derives the content type from a tweet's attachments
func Classify(t social.Tweet) ContentType {
	switch {
	case t.HasVideo():
		return ContentVideo
	case t.HasMedia():
		return ContentImage
	default:
		return ContentText
	}
}

// FromTweet builds a Post from a fetched tweet and its resolved author
func FromTweet(t social.Tweet, authorChatID int64) Post {
	return Post{
		ID:             string(t.ID),
		AuthorChatID:   authorChatID,
		AuthorSocialID: string(t.Author.ID),
		URL:            t.URL(),
		Text:           t.Text,
		CreatedAt:      t.CreatedAt.Time,
		ContentType:    Classify(t),
		Views:          t.ViewCount,
		Likes:          t.LikeCount,
		Retweets:       t.RetweetCount,
		Replies:        t.ReplyCount,
		Quotes:         t.QuoteCount,
	}
}

// Author is one linked participant whose timeline gets scanned
type Author struct {
	ChatID   int64
	SocialID string
	Handle   string
}

// Weights are the per-content-type leaderboard weights
type Weights struct {
	Text   float64
	Image  float64
	Video  float64
	Thread float64
}

// DefaultWeights per program rules
func DefaultWeights() Weights {
	return Weights{Text: 1, Image: 2, Video: 3, Thread: 5}
}

// For returns the weight of one post
func (w Weights) For(p Post) float64 {
	if p.IsThread {
		return w.Thread
	}
	switch p.ContentType {
	case ContentVideo:
		return w.Video
	case ContentImage:
		return w.Image
	default:
		return w.Text
	}
}

// AuthorCounts are per-author post counts split by scoring bucket
type AuthorCounts struct {
	Text   int
	Image  int
	Video  int
	Thread int
}

// MetricsUpdate carries refreshed counters for one post
type MetricsUpdate struct {
	ID          string
	Views       int64
	Likes       int
	Retweets    int
	Replies     int
	Quotes      int
	ContentType ContentType
}

// Stats summarizes one ingest or refresh run
type Stats struct {
	Fetched int
	Written int
	Skipped int
}
