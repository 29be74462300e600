package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "shelfwatch/internal/platform/net/http"
	"shelfwatch/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins lists browser origins allowed to call the API, empty refuses all
	CORSOrigins []string
	// Timeout bounds a request, 0 means 10m since a weekly run waits on every category
	Timeout time.Duration
	// Slow marks access log lines as warn
	Slow time.Duration
}

// CommonStack returns the baseline middleware for the API root
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Minute
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
