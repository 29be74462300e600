// Package leaderboard holds the pure weekly ranking pipeline: a windowed backward fetch over a
// feed, a deterministic engagement ranker and a threaded reply publisher.
// Transport, credentials and scheduling live outside this package
package leaderboard

import (
	"context"
	"time"
)

// Post is one timeline entry as seen by the ranker; newer posts carry larger ids
type Post struct {
	ID        int64
	CreatedAt time.Time
	Boosts    int
	Approvals int
	Quoting   bool
	Author    string
}

// Metric selects which engagement count drives a ranking
type Metric uint8

const (
	// Boost ranks by reshares (retweets)
	Boost Metric = iota
	// Approval ranks by likes (favorites)
	Approval
)

// DefaultTop is how many entries a weekly list holds
const DefaultTop = 3

// String implements fmt.Stringer
func (m Metric) String() string {
	switch m {
	case Boost:
		return "boost"
	case Approval:
		return "approval"
	default:
		return "unknown"
	}
}

// Count returns the post's count for m
func (m Metric) Count(p Post) int {
	if m == Approval {
		return p.Approvals
	}
	return p.Boosts
}

// Other returns the tie-break metric
func (m Metric) Other() Metric {
	if m == Approval {
		return Boost
	}
	return Approval
}

// FeedSource pages a most-recent-first timeline. before == 0 asks for the newest page,
// otherwise only posts with id <= before are returned. An empty page means exhausted
type FeedSource interface {
	Page(ctx context.Context, before int64) ([]Post, error)
}

// Publication is one outgoing post; InReplyTo == 0 posts at top level
type Publication struct {
	Text          string
	InReplyTo     int64
	AttachmentURL string
}

// PublishSink creates a post and returns its id
type PublishSink interface {
	Publish(ctx context.Context, p Publication) (int64, error)
}

// Composer renders the text for the entry at rank (1-based)
type Composer func(rank int, p Post) string

// Chain is the ids published for one ranked list, in reply order
type Chain []int64

// Last returns the id the next reply would point at, 0 when empty
func (c Chain) Last() int64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1]
}
