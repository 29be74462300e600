// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/httpkit"
	str "shelfwatch/internal/platform/strings"
	metahttp "shelfwatch/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module mounted at the root unless WithPrefix says otherwise
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)
	return &Module{
		b: b,
		deps: metahttp.Deps{
			ServiceName: str.MustString(service, "service name"),
			StartedAt:   time.Now(),
			DB:          deps.DB,
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
