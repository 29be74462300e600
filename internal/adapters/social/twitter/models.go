package twitter

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// errNoCreatedAt rejects statuses without a timestamp; they cannot be placed in a window
var errNoCreatedAt = errors.New("twitter: status without created_at")

// Status is the subset of a v1.1 tweet object the job reads
type Status struct {
	ID            int64   `json:"id"`
	CreatedAt     Time    `json:"created_at"`
	Text          string  `json:"text"`
	RetweetCount  int     `json:"retweet_count"`
	FavoriteCount int     `json:"favorite_count"`
	QuotedStatus  *Status `json:"quoted_status,omitempty"`
	InReplyTo     int64   `json:"in_reply_to_status_id,omitempty"`
}

// User is the subset of a v1.1 user object the job reads
type User struct {
	ID         int64  `json:"id"`
	ScreenName string `json:"screen_name"`
}

// Time decodes the API's Ruby-style created_at ("Mon Jan 02 15:04:05 -0700 2006")
type Time struct{ time.Time }

// UnmarshalJSON implements json.Unmarshaler
func (t *Time) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil || strings.TrimSpace(s) == "" {
		return errNoCreatedAt
	}
	v, err := time.Parse(time.RubyDate, s)
	if err != nil {
		return err
	}
	t.Time = v.UTC()
	return nil
}

// MarshalJSON implements json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RubyDate))), nil
}
