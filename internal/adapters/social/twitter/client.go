// Package twitter is a small Twitter v1.1 REST client (OAuth 1.0a user context) exposing an
// account timeline as a leaderboard feed and status updates as a publication sink
package twitter

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "shelfwatch/internal/platform/errors"
	"shelfwatch/internal/platform/logger"

	"github.com/dghubble/oauth1"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://api.twitter.com"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "shelfwatch-report"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultPageSize  = 200
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// App credentials; each Session adds its own access token
	ConsumerKey    string
	ConsumerSecret string

	// Outbound pacing shared by every Session, 0 disables
	RatePerSec float64
	Burst      int

	// Retry config for 429 and 5xx responses; a negative MaxRetries disables retries
	MaxRetries int
	RetryBase  time.Duration

	// PageSize is the timeline count parameter (max 200)
	PageSize int
}

// Token is one account's access token pair
type Token struct {
	AccessToken       string
	AccessTokenSecret string
}

// Client holds the app config and the limiter; it is safe for concurrent use
type Client struct {
	opts    Options
	oauth   *oauth1.Config
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.PageSize <= 0 || o.PageSize > defaultPageSize {
		o.PageSize = defaultPageSize
	}

	lim := rate.NewLimiter(rate.Inf, 1)
	if o.RatePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RatePerSec), max(o.Burst, 1))
	}

	return &Client{
		opts:    o,
		oauth:   oauth1.NewConfig(o.ConsumerKey, o.ConsumerSecret),
		limiter: lim,
		log:     *logger.Named("twitter"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Session is a Client bound to one account's token
type Session struct {
	c    *Client
	http *http.Client
}

// Session returns a signed session for tok
func (c *Client) Session(tok Token) *Session {
	hc := c.oauth.Client(context.Background(), oauth1.NewToken(tok.AccessToken, tok.AccessTokenSecret))
	hc.Timeout = c.opts.Timeout
	return &Session{c: c, http: hc}
}

// Do issues a signed request with pacing and rate limit handling.
// GET sends params as the query and is retried on transport errors, 5xx and 429.
// POST sends a form body and is issued exactly once: a lost response may still have created the status
func (s *Session) Do(ctx context.Context, method, path string, params url.Values) (*http.Response, error) {
	c := s.c
	retry := method == http.MethodGet
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeCanceled, "twitter %s canceled", path)
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeCanceled, "twitter limiter wait")
		}

		req, err := newRequest(ctx, method, c.opts.BaseURL+path, params)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "twitter new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := s.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !retry || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "twitter do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("twitter transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		rem, reset, retryAfter := parseRateHeaders(resp.Header)
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Int("rate_remaining", rem).
			Time("rate_reset", reset).
			Msg("twitter http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := computeWait(rem, reset, retryAfter, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if !retry || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(statusError(resp), perr.ErrorCodeTooManyRequests, "twitter rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Str("path", path).Msg("twitter rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(wait)
			attempts++
			continue
		case resp.StatusCode >= 500:
			if !retry || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(statusError(resp), perr.ErrorCodeUnavailable, "twitter server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Int("attempt", attempts).Msg("twitter transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			se := statusError(resp)
			return nil, perr.Wrapf(se, codeForStatus(se.Status), "twitter %s %s", method, path)
		}
	}
}

func newRequest(ctx context.Context, method, u string, params url.Values) (*http.Request, error) {
	if method == http.MethodGet {
		if len(params) > 0 {
			u += "?" + params.Encode()
		}
		return http.NewRequestWithContext(ctx, method, u, nil)
	}
	var body io.Reader
	if len(params) > 0 {
		body = strings.NewReader(params.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func codeForStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusBadRequest:
		return perr.ErrorCodeInvalidArgument
	default:
		return perr.ErrorCodeUnknown
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 30*time.Second || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
