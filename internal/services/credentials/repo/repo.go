// Package repo stores category credentials; the SQL runs unchanged on postgres and sqlite
package repo

import (
	"context"
	"time"

	"shelfwatch/internal/modkit/repokit"
	perr "shelfwatch/internal/platform/errors"
	"shelfwatch/internal/platform/store"
	"shelfwatch/internal/services/credentials/domain"
)

// Repo defines the credentials repository contract
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, c domain.Credential) error
	Get(ctx context.Context, category domain.CategoryID) (domain.Credential, error)
	List(ctx context.Context) ([]domain.CredentialInfo, error)
	Delete(ctx context.Context, category domain.CategoryID) error
}

type (
	// SQL is the portable credentials repository
	SQL     struct{}
	queries struct{ q repokit.Queryer }
)

// NewSQL constructs the credentials repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a Queryer to the SQL implementation of Repo
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const schema = `
	CREATE TABLE IF NOT EXISTS credentials (
		partition_key       TEXT   NOT NULL,
		row_key             TEXT   NOT NULL,
		access_token        TEXT   NOT NULL,
		access_token_secret TEXT   NOT NULL,
		updated_unix        BIGINT NOT NULL,
		PRIMARY KEY (partition_key, row_key)
	)
`

// EnsureSchema creates the credentials table when missing
func (r *queries) EnsureSchema(ctx context.Context) error {
	_, err := r.q.Exec(ctx, schema)
	return perr.FromPostgres(err, "create credentials table")
}

// Upsert inserts or replaces a category's tokens
func (r *queries) Upsert(ctx context.Context, c domain.Credential) error {
	const sql = `
		INSERT INTO credentials (partition_key, row_key, access_token, access_token_secret, updated_unix)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (partition_key, row_key) DO UPDATE
		SET access_token = excluded.access_token,
		    access_token_secret = excluded.access_token_secret,
		    updated_unix = excluded.updated_unix
	`
	err := store.ExecOne(ctx, r.q, sql, domain.Partition, string(c.Category), c.AccessToken, c.AccessTokenSecret, c.UpdatedAt.Unix())
	return perr.FromPostgresf(err, "upsert credentials %s", c.Category)
}

// Get loads a category's tokens; a missing row is ErrorCodeNotFound
func (r *queries) Get(ctx context.Context, category domain.CategoryID) (domain.Credential, error) {
	const sql = `
		SELECT row_key, access_token, access_token_secret, updated_unix
		FROM credentials
		WHERE partition_key = $1 AND row_key = $2
	`
	c, err := store.One(ctx, r.q, scanCredential, sql, domain.Partition, string(category))
	if err != nil {
		if store.IsNoRows(err) {
			return domain.Credential{}, perr.NotFoundf("no credentials for category %q", category)
		}
		return domain.Credential{}, perr.FromPostgresf(err, "load credentials %s", category)
	}
	return c, nil
}

// List returns every stored category, without secrets
func (r *queries) List(ctx context.Context) ([]domain.CredentialInfo, error) {
	const sql = `
		SELECT row_key, updated_unix
		FROM credentials
		WHERE partition_key = $1
		ORDER BY row_key
	`
	out, err := store.Many(ctx, r.q, func(row repokit.Row) (domain.CredentialInfo, error) {
		var (
			info domain.CredentialInfo
			cat  string
			unix int64
		)
		if err := row.Scan(&cat, &unix); err != nil {
			return info, err
		}
		info.Category = domain.CategoryID(cat)
		info.UpdatedAt = time.Unix(unix, 0).UTC()
		return info, nil
	}, sql, domain.Partition)
	return out, perr.FromPostgres(err, "list credentials")
}

// Delete removes a category; deleting a missing row is ErrorCodeNotFound
func (r *queries) Delete(ctx context.Context, category domain.CategoryID) error {
	const sql = `DELETE FROM credentials WHERE partition_key = $1 AND row_key = $2`
	tag, err := r.q.Exec(ctx, sql, domain.Partition, string(category))
	if err != nil {
		return perr.FromPostgresf(err, "delete credentials %s", category)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("no credentials for category %q", category)
	}
	return nil
}

func scanCredential(row repokit.Row) (domain.Credential, error) {
	var (
		c    domain.Credential
		cat  string
		unix int64
	)
	if err := row.Scan(&cat, &c.AccessToken, &c.AccessTokenSecret, &unix); err != nil {
		return c, err
	}
	c.Category = domain.CategoryID(cat)
	c.UpdatedAt = time.Unix(unix, 0).UTC()
	return c, nil
}
