package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlStateCodes maps the SQLSTATEs the repos can plausibly hit
// anything else from postgres is ErrorCodeDB
var sqlStateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"53300": ErrorCodeUnavailable,     // too_many_connections
	"57P01": ErrorCodeUnavailable,     // admin_shutdown
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// ExtractPgError returns the *pgconn.PgError at the root of err, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == "23505"
}

// DBErrorCode classifies a store error
// ok is false only for nil; context cancellation maps to ErrorCodeCanceled
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	if err == nil {
		return ErrorCodeUnknown, false
	}
	if IsCanceled(err) {
		return ErrorCodeCanceled, true
	}
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		if c, found := sqlStateCodes[pgErr.Code]; found {
			return c, true
		}
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a store error with its mapped code; nil stays nil.
// The name is historical: sqlite errors land here too and map to ErrorCodeDB
func FromPostgres(err error, msg string) error {
	code, ok := DBErrorCode(err)
	if !ok {
		return nil
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}
