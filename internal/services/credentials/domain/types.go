// Package domain defines the credential types and ports for category accounts
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"shelfwatch/internal/core/leaderboard"
)

// Partition is the credential family every row belongs to
const Partition = "twitter"

// CategoryID names one book category and its account
type CategoryID string

// Known categories
const (
	Comics CategoryID = "comics"
	LNovel CategoryID = "lnovel"
	ITBook CategoryID = "itbook"
)

// DefaultCategories is the weekly set when nothing else is configured
var DefaultCategories = []CategoryID{Comics, LNovel, ITBook}

// UnmarshalJSON decodes a string id through ParseCategory
func (c *CategoryID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}

// ParseCategory normalizes a category id; blank input is rejected by the caller
func ParseCategory(s string) CategoryID {
	return CategoryID(strings.ToLower(strings.TrimSpace(s)))
}

// Credential is one category's user-context token pair
type Credential struct {
	Category          CategoryID
	AccessToken       string
	AccessTokenSecret string
	UpdatedAt         time.Time
}

// CredentialInfo is a Credential without its secrets
type CredentialInfo struct {
	Category  CategoryID `json:"category"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Account is everything a report job needs to read and post as one category
type Account struct {
	Category  CategoryID
	Handle    string
	Feed      leaderboard.FeedSource
	Sink      leaderboard.PublishSink
	Permalink func(leaderboard.Post) string
}
