//go:build integration_pg

package pg

import (
	"context"
	"testing"
	"time"

	"shelfwatch/internal/platform/testkit/pgtest"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_AppNameAndMutator_Integration(t *testing.T) {
	dsn := pgtest.Start(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2, AppName: "shelfwatch-pg-it"}, nil, func(pc *pgxpool.Config) {
		pc.MinConns = 1
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(p.Close)

	var gotApp string
	if err := p.Pool.QueryRow(ctx, `select current_setting('application_name')`).Scan(&gotApp); err != nil {
		t.Fatalf("check app name: %v", err)
	}
	if gotApp != "shelfwatch-pg-it" {
		t.Fatalf("application_name = %q", gotApp)
	}
	if got := p.Pool.Config().MinConns; got != 1 {
		t.Fatalf("MinConns = %d, want 1", got)
	}
}
