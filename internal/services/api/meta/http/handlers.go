// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"shelfwatch/internal/core/version"
	"shelfwatch/internal/modkit/httpkit"
	perr "shelfwatch/internal/platform/errors"
)

// Pinger is satisfied by store backends that expose Ping
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// DB is checked by /readyz when it implements Pinger
	DB  any
	Now func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}
	httpkit.Get(r, "/healthz", h.health)
	httpkit.Get(r, "/readyz", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.deps.Now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// ready answers 503 when the store does not respond
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := ReadyCheck{Name: "store", Status: "skipped"}
	if p, ok := h.deps.DB.(Pinger); ok {
		check.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "store not ready")
		}
	}
	return []ReadyCheck{check}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
