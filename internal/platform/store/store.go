// Package store provides one sql seam over the configured backend (postgres or sqlite)
package store

import (
	"context"
	"errors"
	"fmt"

	"shelfwatch/internal/platform/logger"
)

// Driver names the backend behind Store.DB
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Store is the facade for the configured backend
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// DB is the sql seam, nil when no driver is configured
	DB TxRunner

	// Driver reports which backend DB talks to
	Driver Driver
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
// placeholders are written postgres style ($1, $2); the sqlite adapter rebinds them
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store for cfg.Driver
// an empty driver yields a Store with a nil DB
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	var (
		db  TxRunner
		err error
	)
	switch cfg.Driver {
	case "":
		return s, nil
	case DriverPostgres:
		db, err = openPG(ctx, cfg, s)
	case DriverSQLite:
		db, err = openSQLite(ctx, cfg, s)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	s.DB = db
	s.Driver = cfg.Driver
	return s, nil
}

// Guard verifies the configured backend answers
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.DB == nil {
		return nil
	}
	p, ok := s.DB.(Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", s.Driver, err)
	}
	return nil
}

// Close releases the backend
// a nil DB is ignored
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
