package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shelfwatch/internal/modkit/module"
	"shelfwatch/internal/modkit/repokit"
	"shelfwatch/internal/platform/config"
	"shelfwatch/internal/platform/logger"
	phttp "shelfwatch/internal/platform/net/http"
	"shelfwatch/internal/platform/store"

	"shelfwatch/internal/services/api"
	credmod "shelfwatch/internal/services/credentials/module"
)

func main() {
	if _, err := config.LoadDotenv(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: .env not loaded:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConfig(root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// reads API_PORT / API_SHUTDOWN_GRACE
	srv := phttp.NewServer(root)
	api.Mount(srv.Router(), api.Options{
		Config:  root,
		Store:   st,
		Service: "shelfwatch-api",
	})

	creds, ok := module.PortsAs[credmod.Ports]("credentials")
	if !ok {
		l.Panic().Msg("credentials ports not registered")
	}
	if err := creds.Admin.EnsureSchema(ctx); err != nil {
		l.Panic().Err(err).Msg("credentials schema")
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
