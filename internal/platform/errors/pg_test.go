package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey},
		{"not null", &pgconn.PgError{Code: "23502"}, ErrorCodeValidation},
		{"check", &pgconn.PgError{Code: "23514"}, ErrorCodeValidation},
		{"truncation", &pgconn.PgError{Code: "22001"}, ErrorCodeInvalidArgument},
		{"read only", &pgconn.PgError{Code: "25006"}, ErrorCodeUnavailable},
		{"starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{"other sqlstate", &pgconn.PgError{Code: "42P01"}, ErrorCodeDB},
		{"wrapped pg", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), ErrorCodeDuplicateKey},
		{"sqlite text", stderrs.New("SQLITE_BUSY: database is locked"), ErrorCodeDB},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), ErrorCodeCanceled},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := DBErrorCode(c.err)
			if !ok || got != c.want {
				t.Fatalf("DBErrorCode = %v,%v want %v", got, ok, c.want)
			}
		})
	}
	if _, ok := DBErrorCode(nil); ok {
		t.Fatal("nil must not classify")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatal("nil must pass through")
	}

	src := &pgconn.PgError{Severity: "ERROR", Code: "23505", Message: "duplicate key value"}
	err := FromPostgresf(src, "upsert credentials %s", "comics")
	if !IsCode(err, ErrorCodeDuplicateKey) {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if want := "upsert credentials comics: ERROR: duplicate key value (SQLSTATE 23505)"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsDuplicateKey(err) {
		t.Fatal("IsDuplicateKey must see through the wrap")
	}
	if IsDuplicateKey(FromPostgres(stderrs.New("boom"), "list credentials")) {
		t.Fatal("plain errors are not duplicate keys")
	}

	pgErr, ok := ExtractPgError(err)
	if !ok || pgErr.Code != "23505" {
		t.Fatalf("ExtractPgError = %v,%v", pgErr, ok)
	}
}
