package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	perr "shelfwatch/internal/platform/errors"
)

const credSchema = `CREATE TABLE credentials (
	partition_key TEXT NOT NULL,
	row_key       TEXT NOT NULL,
	access_token  TEXT NOT NULL,
	PRIMARY KEY (partition_key, row_key)
)`

type cred struct {
	Row   string
	Token string
}

func scanCred(r Row) (cred, error) {
	var c cred
	err := r.Scan(&c.Row, &c.Token)
	return c, err
}

// openTestSQLite returns a file-backed sqlite seam with the credentials table
func openTestSQLite(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, Config{
		Driver: DriverSQLite,
		SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "store.db")},
	})
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	if _, err := s.DB.Exec(ctx, credSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return s
}

func TestRebind(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM t WHERE a = $1 AND b = $2", "SELECT * FROM t WHERE a = ?1 AND b = ?2"},
		{"VALUES ($10, $2)", "VALUES (?10, ?2)"},
		{"SELECT '$1' , $1", "SELECT '$1' , ?1"},
		{`SELECT "a$1" FROM t WHERE x = $1`, `SELECT "a$1" FROM t WHERE x = ?1`},
		{"SELECT $ FROM t", "SELECT $ FROM t"},
		{"SELECT 'it''s $2', $3", "SELECT 'it''s $2', ?3"},
	}
	for _, c := range cases {
		if got := rebind(c.in); got != c.want {
			t.Fatalf("rebind(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVerbOf(t *testing.T) {
	t.Parallel()
	if got := verbOf("  insert into t values (1)"); got != "INSERT" {
		t.Fatalf("verbOf = %q", got)
	}
	if got := verbOf("   "); got != "" {
		t.Fatalf("verbOf blank = %q", got)
	}
}

func TestSQLite_ExecQueryHelpers(t *testing.T) {
	t.Parallel()
	s := openTestSQLite(t)
	ctx := context.Background()

	if s.Driver != DriverSQLite {
		t.Fatalf("Driver = %q", s.Driver)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	ct, err := Exec(ctx, s.DB, `INSERT INTO credentials (partition_key, row_key, access_token) VALUES ($1, $2, $3)`, "twitter", "comics", "tok-c")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if ct.String() != "INSERT 1" || ct.RowsAffected() != 1 {
		t.Fatalf("tag = %q / %d", ct.String(), ct.RowsAffected())
	}
	if err := ExecOne(ctx, s.DB, `INSERT INTO credentials (partition_key, row_key, access_token) VALUES ($1, $2, $3)`, "twitter", "lnovel", "tok-l"); err != nil {
		t.Fatalf("ExecOne: %v", err)
	}
	if err := ExecOne(ctx, s.DB, `UPDATE credentials SET access_token = $1 WHERE row_key = $2`, "x", "missing"); err == nil {
		t.Fatal("ExecOne must fail when nothing changed")
	}

	n, err := Scalar[int](ctx, s.DB, `SELECT count(*) FROM credentials WHERE partition_key = $1`, "twitter")
	if err != nil || n != 2 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}

	c, err := One(ctx, s.DB, scanCred, `SELECT row_key, access_token FROM credentials WHERE partition_key = $1 AND row_key = $2`, "twitter", "comics")
	if err != nil || c != (cred{"comics", "tok-c"}) {
		t.Fatalf("One = %+v, %v", c, err)
	}

	_, err = One(ctx, s.DB, scanCred, `SELECT row_key, access_token FROM credentials WHERE row_key = $1`, "itbook")
	if !IsNoRows(err) || !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("One missing = %v", err)
	}

	all, err := Many(ctx, s.DB, scanCred, `SELECT row_key, access_token FROM credentials ORDER BY row_key`)
	if err != nil || len(all) != 2 || all[0].Row != "comics" || all[1].Row != "lnovel" {
		t.Fatalf("Many = %+v, %v", all, err)
	}

	var tok string
	err = s.DB.QueryRow(ctx, `SELECT access_token FROM credentials WHERE row_key = $1`, "itbook").Scan(&tok)
	if !IsNoRows(err) {
		t.Fatalf("QueryRow missing = %v", err)
	}

	rs, err := s.DB.Query(ctx, `SELECT row_key, access_token FROM credentials`)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer rs.Close()
	if cols := rs.Columns(); len(cols) != 2 || cols[0] != "row_key" {
		t.Fatalf("Columns = %v", cols)
	}
}

func TestSQLite_TxCommitAndRollback(t *testing.T) {
	t.Parallel()
	s := openTestSQLite(t)
	ctx := context.Background()
	ins := `INSERT INTO credentials (partition_key, row_key, access_token) VALUES ('twitter', $1, 't')`

	boom := errors.New("boom")
	err := s.DB.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, ins, "comics"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx = %v", err)
	}
	if n, _ := Scalar[int](ctx, s.DB, `SELECT count(*) FROM credentials`); n != 0 {
		t.Fatalf("rollback left %d rows", n)
	}

	if err := s.DB.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, ins, "itbook")
		return err
	}); err != nil {
		t.Fatalf("Tx commit: %v", err)
	}
	if n, _ := Scalar[int](ctx, s.DB, `SELECT count(*) FROM credentials`); n != 1 {
		t.Fatalf("commit left %d rows", n)
	}
}

func TestSQLite_TracesQueries(t *testing.T) {
	t.Parallel()
	s := openTestSQLite(t)
	ctx := context.Background()

	tr := &recTracer{}
	a := s.DB.(*sqliteAdapter)
	traced := newSQLiteAdapter(a.db, tr, 10_000)

	if _, err := traced.Exec(ctx, `DELETE FROM credentials WHERE row_key = $1`, "comics"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	var n int
	_ = traced.QueryRow(ctx, `SELECT count(*) FROM credentials`).Scan(&n)

	evs := tr.events()
	if len(evs) != 2 {
		t.Fatalf("want 2 events, got %d", len(evs))
	}
	// the trace keeps the placeholders the caller wrote
	if evs[0].SQL != `DELETE FROM credentials WHERE row_key = $1` || evs[0].Slow {
		t.Fatalf("unexpected event: %+v", evs[0])
	}
}

func TestSQLite_MemoryIsSharedAcrossCalls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: ":memory:"}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close(ctx)

	if _, err := s.DB.Exec(ctx, `CREATE TABLE IF NOT EXISTS mem_probe (id INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	rs, err := s.DB.Query(ctx, `SELECT id FROM mem_probe`)
	if err != nil {
		t.Fatalf("table not visible: %v", err)
	}
	rs.Close()
}
