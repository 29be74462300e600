// Command shelfwatch-credentials manages the per-category account tokens
//
//	shelfwatch-credentials put -category comics -token T -secret S
//	shelfwatch-credentials list
//	shelfwatch-credentials delete -category comics
//	shelfwatch-credentials verify -category comics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
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
)

var errUsage = errors.New("usage: shelfwatch-credentials put|list|delete|verify [flags]")

func main() {
	if _, err := config.LoadDotenv(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: .env not loaded:", err)
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

	creds := credmod.New(modkit.Deps{Log: *logger.Named("credentials"), Cfg: cfg, DB: st.DB}, credmod.Options{})
	ports := module.MustPortsOf[credmod.Ports](creds)
	if err := ports.Admin.EnsureSchema(ctx); err != nil {
		l.Panic().Err(err).Msg("credentials schema")
	}

	if err := dispatch(ctx, os.Args[1:], ports, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, args []string, p credmod.Ports, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		fCategory = fs.String("category", "", "category id, e.g. comics")
		fToken    = fs.String("token", "", "access token")
		fSecret   = fs.String("secret", "", "access token secret")
	)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	cat := creddom.ParseCategory(*fCategory)

	switch args[0] {
	case "put":
		if err := p.Admin.Put(ctx, creddom.Credential{
			Category:          cat,
			AccessToken:       *fToken,
			AccessTokenSecret: *fSecret,
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "stored %s\n", cat)
	case "list":
		infos, err := p.Admin.List(ctx)
		if err != nil {
			return err
		}
		for _, in := range infos {
			fmt.Fprintf(out, "%s\t%s\n", in.Category, in.UpdatedAt.UTC().Format(time.RFC3339))
		}
	case "delete":
		if cat == "" {
			return errors.New("-category is required")
		}
		if err := p.Admin.Delete(ctx, cat); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", cat)
	case "verify":
		if cat == "" {
			return errors.New("-category is required")
		}
		acct, err := p.Resolver.Resolve(ctx, cat)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t@%s\n", cat, acct.Handle)
	default:
		return errUsage
	}
	return nil
}
