// Command shelfwatch-report runs one weekly leaderboard pass and exits.
// The exit code is 1 when any category failed; empty and canceled categories are not failures
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/module"
	"shelfwatch/internal/modkit/repokit"
	"shelfwatch/internal/platform/config"
	"shelfwatch/internal/platform/logger"
	"shelfwatch/internal/platform/store"

	creddom "shelfwatch/internal/services/credentials/domain"
	credmod "shelfwatch/internal/services/credentials/module"
	weeklydom "shelfwatch/internal/services/weekly/domain"
	weeklymod "shelfwatch/internal/services/weekly/module"
	"shelfwatch/internal/services/weekly/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	if _, err := config.LoadDotenv(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: .env not loaded:", err)
	}

	var (
		fCategories = flag.String("categories", "", "comma separated categories (default WEEKLY_CATEGORIES)")
		fNow        = flag.String("now", "", "RFC3339 reference time (default now)")
		fWindow     = flag.Duration("window", 0, "leaderboard window (default WEEKLY_WINDOW)")
		fDryRun     = flag.Bool("dryrun", false, "log publications instead of posting them")
	)
	flag.Parse()

	req := weeklydom.RunRequest{DryRun: *fDryRun}
	if *fNow != "" {
		t, err := time.Parse(time.RFC3339, *fNow)
		if err != nil {
			fmt.Fprintf(os.Stderr, "-now: %v\n", err)
			return 2
		}
		req.Now = t
	}
	for _, c := range strings.Split(*fCategories, ",") {
		if id := creddom.ParseCategory(c); id != "" {
			req.Categories = append(req.Categories, id)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConfig(cfg), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{Log: *logger.Named("report"), Cfg: cfg, DB: st.DB}
	creds := credmod.New(deps, credmod.Options{})
	cports := module.MustPortsOf[credmod.Ports](creds)
	if err := cports.Admin.EnsureSchema(ctx); err != nil {
		l.Panic().Err(err).Msg("credentials schema")
	}

	weekly := weeklymod.New(deps, weeklymod.Options{Window: *fWindow}, modkit.WithPorts(cports))
	reporter := module.MustPortsOf[weeklymod.Ports](weekly).Reporter

	res, err := reporter.RunWeekly(ctx, req)
	if err != nil {
		l.Error().Err(err).Msg("weekly run rejected")
		return 2
	}
	fmt.Print(service.Summary(res))
	if res.Failed() {
		return 1
	}
	return 0
}
