package httpkit

import (
	"crypto/subtle"
	"net/http"

	perrs "shelfwatch/internal/platform/errors"
)

// TokenFunc checks a bearer token and returns the caller's subject
type TokenFunc func(token string) (subject string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// StaticToken accepts exactly one shared secret and names its holder subject.
// An empty secret rejects everything
func StaticToken(secret, subject string) TokenFunc {
	want := []byte(secret)
	return func(token string) (string, error) {
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return subject, nil
	}
}

// Parse extracts the bearer token and hands it to the parser.
// Any failure is reported as unauthorized without detail
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return "", err
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	sub, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}
