// Package module wires the credentials service and exposes its ports
package module

import (
	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/httpkit"
	"shelfwatch/internal/services/credentials/service"
)

// Module defines the credentials module
type Module struct {
	ports Ports
}

// New constructs the credentials module; non-zero overrides win over TWITTER_* config
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	o := overrides.Twitter
	if o.BaseURL != "" {
		opts.Twitter.BaseURL = o.BaseURL
	}
	if o.ConsumerKey != "" {
		opts.Twitter.ConsumerKey = o.ConsumerKey
	}
	if o.ConsumerSecret != "" {
		opts.Twitter.ConsumerSecret = o.ConsumerSecret
	}
	if o.MaxRetries != 0 {
		opts.Twitter.MaxRetries = o.MaxRetries
	}
	if o.RatePerSec != 0 {
		opts.Twitter.RatePerSec = o.RatePerSec
	}

	svc := service.New(deps, service.Config{Twitter: opts.Twitter})
	return &Module{ports: Ports{Resolver: svc, Admin: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return "credentials" }

// Ports returns the module ports (Resolver, Admin)
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing; credentials are managed from the CLI
func (m *Module) MountRoutes(_ httpkit.Router) {}
