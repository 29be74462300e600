// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"
	"strings"

	"shelfwatch/internal/modkit/module"
	phttp "shelfwatch/internal/platform/net/http"
	str "shelfwatch/internal/platform/strings"
)

// Module is the common surface for modules that mount routes and expose ports
type Module = module.Module

// Option mutates build configuration for a module
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register func(phttp.Router)
}

// WithName sets a module name used in logs and the port registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts injects ports declared by another module
// the concrete type is owned by the importing module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithRegister adds extra endpoints next to the module's own
func WithRegister(fn func(phttp.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount registers own under the module prefix with its middlewares, then any extra register hook
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		if own != nil {
			own(rr)
		}
		if b.Register != nil {
			b.Register(rr)
		}
	}
	if strings.Trim(b.Prefix, " /") == "" {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(b.Prefix), mount)
}
