package twitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatusError wraps a non-2xx response from the API
type StatusError struct {
	Status int
	// APICode is the first code from the {"errors":[...]} payload, e.g. 187 duplicate status
	APICode int
	Body    string
}

// Error interface
func (e *StatusError) Error() string {
	if e.APICode != 0 {
		return fmt.Sprintf("twitter status %d (code %d): %s", e.Status, e.APICode, e.Body)
	}
	return fmt.Sprintf("twitter status %d: %s", e.Status, e.Body)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// statusError reads a bounded body tail and closes it
func statusError(resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()

	se := &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	var payload struct {
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(b, &payload) == nil && len(payload.Errors) > 0 {
		se.APICode = payload.Errors[0].Code
		se.Body = payload.Errors[0].Message
	}
	return se
}

func parseRateHeaders(h http.Header) (remaining int, reset time.Time, retryAfter int) {
	remaining = atoi(h.Get("X-Rate-Limit-Remaining"))
	if sec := atoi(h.Get("X-Rate-Limit-Reset")); sec > 0 {
		reset = time.Unix(int64(sec), 0).UTC()
	}
	retryAfter = atoi(h.Get("Retry-After"))
	return
}

// computeWait prefers Retry-After, then the window reset when the quota is spent
func computeWait(remaining int, reset time.Time, retryAfter int, now time.Time) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	if remaining <= 0 && !reset.IsZero() && reset.After(now) {
		return reset.Sub(now)
	}
	return 0
}

func atoi(s string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(s))
	return i
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// IsDuplicate reports whether err is the API's "status is a duplicate" rejection
func IsDuplicate(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.APICode == 187
}
