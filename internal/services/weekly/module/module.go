// Package module wires the weekly report service as a modkit.Module
package module

import (
	"net/http"

	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/httpkit"
	modreg "shelfwatch/internal/modkit/module"
	creddom "shelfwatch/internal/services/credentials/domain"
	credmod "shelfwatch/internal/services/credentials/module"
	"shelfwatch/internal/services/weekly/domain"
	"shelfwatch/internal/services/weekly/service"
)

// Ports exported by the weekly module
type Ports struct {
	Reporter domain.ReporterPort
}

// Module implements modkit.Module for weekly reports
type Module struct {
	b     modkit.Built
	ports Ports
}

// New constructs the weekly module. The account resolver comes from credentials ports passed
// with modkit.WithPorts, or from the registry when none are passed. Non-zero overrides win
// over WEEKLY_* config
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("weekly"), modkit.WithPrefix("/reports")}, opts...)...)

	creds, ok := b.Ports.(credmod.Ports)
	if !ok {
		creds, ok = modreg.PortsAs[credmod.Ports]("credentials")
	}
	if !ok || creds.Resolver == nil {
		panic("weekly module requires credentials ports")
	}

	o := merge(FromConfig(deps.Cfg), overrides)
	cats := make([]domain.CategoryID, 0, len(o.Categories))
	for _, c := range o.Categories {
		if id := creddom.ParseCategory(c); id != "" {
			cats = append(cats, id)
		}
	}

	svc := service.New(creds.Resolver, service.Config{
		Categories:  cats,
		Window:      o.Window,
		Top:         o.Top,
		Concurrency: o.Concurrency,
		DryRun:      o.DryRun,
		Locale:      service.LocaleTag(o.Locale),
	})
	return &Module{b: b, ports: Ports{Reporter: svc}}
}

func merge(base, o Options) Options {
	if len(o.Categories) > 0 {
		base.Categories = o.Categories
	}
	if o.Window > 0 {
		base.Window = o.Window
	}
	if o.Top > 0 {
		base.Top = o.Top
	}
	if o.Concurrency > 0 {
		base.Concurrency = o.Concurrency
	}
	if o.DryRun {
		base.DryRun = true
	}
	if o.Locale != "" {
		base.Locale = o.Locale
	}
	return base
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts POST {prefix}/weekly; guard it with modkit.WithMiddlewares(httpkit.Auth(...))
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		httpkit.PostJSON(rr, "/weekly", m.runWeekly, httpkit.JSONOptions{
			MaxBytes:        64 << 10,
			DisallowUnknown: true,
			AllowEmptyBody:  true,
		})
	})
}

func (m *Module) runWeekly(r *http.Request, req domain.RunRequest) (any, error) {
	return m.ports.Reporter.RunWeekly(r.Context(), req)
}
