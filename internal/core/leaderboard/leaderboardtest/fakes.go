// Package leaderboardtest provides in-memory feeds and sinks for tests
package leaderboardtest

import (
	"context"
	"sync"
	"time"

	"shelfwatch/internal/core/leaderboard"
)

// Feed serves Posts (newest first) in pages of PageSize and records every cursor it was asked for
type Feed struct {
	Posts    []leaderboard.Post
	PageSize int
	Err      error
	// OnPage runs after a page is served, e.g. to cancel the caller mid-fetch
	OnPage func(n int)

	mu       sync.Mutex
	requests []int64
}

// Page implements leaderboard.FeedSource
func (f *Feed) Page(_ context.Context, before int64) ([]leaderboard.Post, error) {
	f.mu.Lock()
	f.requests = append(f.requests, before)
	n := len(f.requests)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	size := f.PageSize
	if size <= 0 {
		size = 20
	}
	page := make([]leaderboard.Post, 0, size)
	for _, p := range f.Posts {
		if before != 0 && p.ID > before {
			continue
		}
		if len(page) == size {
			break
		}
		page = append(page, p)
	}
	if f.OnPage != nil {
		f.OnPage(n)
	}
	return page, nil
}

// Requests returns the cursors seen so far
func (f *Feed) Requests() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.requests...)
}

// Sink records publications and hands out ids starting at NextID (default 1000)
type Sink struct {
	NextID int64
	// FailAt makes the n-th call (1-based) return Err
	FailAt int
	Err    error
	// OnPublish runs after a successful call with its 1-based call index
	OnPublish func(n int)

	mu    sync.Mutex
	calls int
	sent  []leaderboard.Publication
}

// Publish implements leaderboard.PublishSink
func (s *Sink) Publish(_ context.Context, p leaderboard.Publication) (int64, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	if s.FailAt == n {
		s.mu.Unlock()
		return 0, s.Err
	}
	if s.NextID == 0 {
		s.NextID = 1000
	}
	id := s.NextID
	s.NextID++
	s.sent = append(s.sent, p)
	s.mu.Unlock()

	if s.OnPublish != nil {
		s.OnPublish(n)
	}
	return id, nil
}

// Sent returns the successful publications in call order
func (s *Sink) Sent() []leaderboard.Publication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]leaderboard.Publication(nil), s.sent...)
}

// Timeline builds n posts ending at ref, one per step going back, ids descending from n
func Timeline(ref time.Time, step time.Duration, n int) []leaderboard.Post {
	out := make([]leaderboard.Post, n)
	for i := range out {
		out[i] = leaderboard.Post{
			ID:        int64(n - i),
			CreatedAt: ref.Add(-time.Duration(i) * step),
			Boosts:    1,
			Approvals: 1,
		}
	}
	return out
}
