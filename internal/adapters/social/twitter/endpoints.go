package twitter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	perr "shelfwatch/internal/platform/errors"
)

const (
	pathVerify   = "/1.1/account/verify_credentials.json"
	pathTimeline = "/1.1/statuses/user_timeline.json"
	pathUpdate   = "/1.1/statuses/update.json"
)

// TimelineParams selects one timeline page; MaxID == 0 asks for the newest page
type TimelineParams struct {
	UserID int64
	MaxID  int64
	Count  int
}

// UpdateParams describes a status update; InReplyTo == 0 posts at top level
type UpdateParams struct {
	Status        string
	InReplyTo     int64
	AttachmentURL string
}

// VerifyCredentials returns the account the session's token belongs to
func (s *Session) VerifyCredentials(ctx context.Context) (User, error) {
	q := url.Values{}
	q.Set("skip_status", "true")
	q.Set("include_entities", "false")

	var out User
	if err := s.call(ctx, http.MethodGet, pathVerify, q, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// UserTimeline returns one page of the user's timeline, newest first
func (s *Session) UserTimeline(ctx context.Context, p TimelineParams) ([]Status, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(p.UserID, 10))
	q.Set("trim_user", "true")
	count := p.Count
	if count <= 0 {
		count = s.c.opts.PageSize
	}
	q.Set("count", strconv.Itoa(count))
	if p.MaxID > 0 {
		q.Set("max_id", strconv.FormatInt(p.MaxID, 10))
	}

	var out []Status
	if err := s.call(ctx, http.MethodGet, pathTimeline, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update posts a status and returns the created tweet
func (s *Session) Update(ctx context.Context, p UpdateParams) (Status, error) {
	form := url.Values{}
	form.Set("status", p.Status)
	if p.InReplyTo > 0 {
		form.Set("in_reply_to_status_id", strconv.FormatInt(p.InReplyTo, 10))
	}
	if p.AttachmentURL != "" {
		form.Set("attachment_url", p.AttachmentURL)
	}

	var out Status
	if err := s.call(ctx, http.MethodPost, pathUpdate, form, &out); err != nil {
		return Status{}, err
	}
	return out, nil
}

func (s *Session) call(ctx context.Context, method, path string, params url.Values, out any) error {
	resp, err := s.Do(ctx, method, path, params)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.c.log.Error().Err(cerr).Str("path", path).Msg("twitter close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "twitter read %s", path)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "twitter decode %s", path)
	}
	return nil
}
