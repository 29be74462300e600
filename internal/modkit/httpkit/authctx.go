package httpkit

import (
	"net/http"
	"strings"

	perrs "shelfwatch/internal/platform/errors"
	pnet "shelfwatch/internal/platform/net"
)

// Subject returns the authenticated caller from the request context
func Subject(r *http.Request) (string, error) {
	sub := pnet.Subject(r.Context())
	if sub == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return sub, nil
}

// BearerToken returns the raw token from a case-insensitive "Bearer" Authorization header
func BearerToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) <= len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	rest := s[len(prefix):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(rest)
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
