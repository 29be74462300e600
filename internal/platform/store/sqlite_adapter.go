package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shelfwatch/internal/platform/store/pg"
)

// sqlConn is what *sql.DB and *sql.Tx have in common
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlQuerier implements RowQuerier over database/sql, rebinding $N placeholders to ?N
type sqlQuerier struct {
	c     sqlConn
	trace traceSink
}

func (q sqlQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := q.c.ExecContext(ctx, rebind(query), args...)
	q.trace.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlTag{verb: verbOf(query), res: res}, nil
}

func (q sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.c.QueryContext(ctx, rebind(query), args...)
	q.trace.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (q sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	r := q.c.QueryRowContext(ctx, rebind(query), args...)
	return sqlRow{
		r: r,
		after: func(scanErr error) {
			q.trace.emit(ctx, query, args, start, scanErr)
		},
	}
}

// sqliteAdapter implements TxRunner over an open *sql.DB
type sqliteAdapter struct {
	sqlQuerier
	db *sql.DB
}

func newSQLiteAdapter(db *sql.DB, tr pg.QueryTracer, slowMs int) *sqliteAdapter {
	return &sqliteAdapter{
		sqlQuerier: sqlQuerier{c: db, trace: newTraceSink(tr, slowMs)},
		db:         db,
	}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlQuerier{c: tx, trace: a.trace}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// rebind turns $N into ?N outside quoted literals and identifiers
func rebind(query string) string {
	if !strings.Contains(query, "$") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '$' && i+1 < len(query) && isDigit(query[i+1]):
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// verbOf returns the leading keyword of a statement, upper-cased
func verbOf(query string) string {
	f := strings.Fields(query)
	if len(f) == 0 {
		return ""
	}
	return strings.ToUpper(f[0])
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// sqlTag mimics the postgres command tag shape, e.g. "UPDATE 1"
type sqlTag struct {
	verb string
	res  sql.Result
}

func (t sqlTag) RowsAffected() int64 {
	n, err := t.res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func (t sqlTag) String() string {
	if t.verb == "" {
		return fmt.Sprint(t.RowsAffected())
	}
	return fmt.Sprintf("%s %d", t.verb, t.RowsAffected())
}
