// Package api composes the HTTP API from the service modules
package api

import (
	"time"

	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/httpkit"
	"shelfwatch/internal/modkit/module"
	"shelfwatch/internal/platform/config"
	"shelfwatch/internal/platform/logger"
	phttp "shelfwatch/internal/platform/net/http"
	"shelfwatch/internal/platform/store"

	metamod "shelfwatch/internal/services/api/meta/module"
	credmod "shelfwatch/internal/services/credentials/module"
	weeklymod "shelfwatch/internal/services/weekly/module"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Store   *store.Store
	Service string
}

// Mount wires every module onto r and returns them in mount order
//
//	API_TRIGGER_TOKEN   bearer secret for POST /v1/reports/weekly (required)
//	API_CORS_ORIGINS    comma separated browser origins (default none)
//	API_SLOW_MS         access log warn threshold (default 2000)
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.Deps{
		Log: *logger.Named("api"),
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.DB = opt.Store.DB
	}
	api := opt.Config.Prefix("API_")

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: api.MayCSV("CORS_ORIGINS", nil),
		Slow:        time.Duration(api.MayInt("SLOW_MS", 2000)) * time.Millisecond,
	})...)

	trigger := httpkit.NewPortFunc(httpkit.StaticToken(api.MustString("TRIGGER_TOKEN"), "trigger"))

	creds := credmod.New(deps, credmod.Options{})
	weekly := weeklymod.New(deps, weeklymod.Options{},
		modkit.WithPorts(module.MustPortsOf[credmod.Ports](creds)),
		modkit.WithMiddlewares(httpkit.Auth(trigger)),
	)
	meta := metamod.New(deps, opt.Service)

	mods := []module.Module{meta, creds, weekly}
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
	}

	meta.MountRoutes(r)
	httpkit.MountVersion(r, "v1", nil, func(v1 httpkit.Router) {
		creds.MountRoutes(v1)
		weekly.MountRoutes(v1)
	})
	return mods
}
