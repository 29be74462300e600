package twitter

import (
	"context"
	"fmt"

	"shelfwatch/internal/core/leaderboard"
	perr "shelfwatch/internal/platform/errors"
)

// Permalink is the public URL of a status, attached to replies so they embed the ranked post
func Permalink(handle string, id int64) string {
	return fmt.Sprintf("https://twitter.com/%s/status/%d", handle, id)
}

// Timeline is an account's own timeline as a leaderboard.FeedSource
type Timeline struct {
	s    *Session
	user User
}

// Timeline binds the session to user's timeline
func (s *Session) Timeline(user User) *Timeline { return &Timeline{s: s, user: user} }

// Page implements leaderboard.FeedSource
func (t *Timeline) Page(ctx context.Context, before int64) ([]leaderboard.Post, error) {
	statuses, err := t.s.UserTimeline(ctx, TimelineParams{UserID: t.user.ID, MaxID: before})
	if err != nil {
		return nil, err
	}
	out := make([]leaderboard.Post, len(statuses))
	for i, st := range statuses {
		if st.CreatedAt.IsZero() {
			return nil, perr.Wrapf(errNoCreatedAt, perr.ErrorCodeJSON, "status %d", st.ID)
		}
		out[i] = leaderboard.Post{
			ID:        st.ID,
			CreatedAt: st.CreatedAt.Time,
			Boosts:    st.RetweetCount,
			Approvals: st.FavoriteCount,
			Quoting:   st.QuotedStatus != nil,
			Author:    t.user.ScreenName,
		}
	}
	return out, nil
}

// Poster publishes status updates as a leaderboard.PublishSink
type Poster struct{ s *Session }

// Poster returns the session's publication sink
func (s *Session) Poster() *Poster { return &Poster{s: s} }

// Publish implements leaderboard.PublishSink.
// A duplicate-status rejection (API code 187) is reported as a Conflict
func (p *Poster) Publish(ctx context.Context, pub leaderboard.Publication) (int64, error) {
	st, err := p.s.Update(ctx, UpdateParams{
		Status:        pub.Text,
		InReplyTo:     pub.InReplyTo,
		AttachmentURL: pub.AttachmentURL,
	})
	if IsDuplicate(err) {
		return 0, perr.Wrapf(err, perr.ErrorCodeConflict, "duplicate status in reply to %d", pub.InReplyTo)
	}
	if err != nil {
		return 0, err
	}
	return st.ID, nil
}
