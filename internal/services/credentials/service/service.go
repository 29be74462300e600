// Package service manages category credentials and resolves them into live accounts
package service

import (
	"context"
	"strings"
	"time"

	"shelfwatch/internal/adapters/social/twitter"
	"shelfwatch/internal/core/leaderboard"
	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/repokit"
	perr "shelfwatch/internal/platform/errors"
	"shelfwatch/internal/platform/logger"
	"shelfwatch/internal/services/credentials/domain"
	"shelfwatch/internal/services/credentials/repo"
)

// Config carries the Twitter app settings shared by every account
type Config struct {
	Twitter twitter.Options
}

// Svc implements domain.ResolverPort and domain.AdminPort
type Svc struct {
	Repo repo.Repo
	tw   *twitter.Client
	log  logger.Logger
	now  func() time.Time
}

var (
	_ domain.ResolverPort = (*Svc)(nil)
	_ domain.AdminPort    = (*Svc)(nil)
)

// New constructs the credentials service
func New(deps modkit.Deps, cfg Config) *Svc {
	if deps.DB == nil {
		panic("credentials.Service requires a non nil TxRunner")
	}
	return &Svc{
		Repo: repokit.MustBind(repo.NewSQL(), deps.DB),
		tw:   twitter.NewClient(cfg.Twitter),
		log:  *logger.Named("credentials"),
		now:  time.Now,
	}
}

// EnsureSchema creates the backing table when missing
func (s *Svc) EnsureSchema(ctx context.Context) error { return s.Repo.EnsureSchema(ctx) }

// Put validates and stores a category's tokens
func (s *Svc) Put(ctx context.Context, c domain.Credential) error {
	c.Category = domain.ParseCategory(string(c.Category))
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	c.AccessTokenSecret = strings.TrimSpace(c.AccessTokenSecret)
	switch {
	case c.Category == "":
		return perr.WithField(perr.InvalidArgf("category is required"), "category")
	case c.AccessToken == "":
		return perr.WithField(perr.InvalidArgf("access token is required"), "access_token")
	case c.AccessTokenSecret == "":
		return perr.WithField(perr.InvalidArgf("access token secret is required"), "access_token_secret")
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.Repo.Upsert(ctx, c); err != nil {
		return err
	}
	s.log.Info().Str("category", string(c.Category)).Msg("credentials stored")
	return nil
}

// List returns the stored categories
func (s *Svc) List(ctx context.Context) ([]domain.CredentialInfo, error) { return s.Repo.List(ctx) }

// Delete removes a category's tokens
func (s *Svc) Delete(ctx context.Context, category domain.CategoryID) error {
	return s.Repo.Delete(ctx, domain.ParseCategory(string(category)))
}

// Resolve loads the category's tokens and verifies them to learn the account handle
func (s *Svc) Resolve(ctx context.Context, category domain.CategoryID) (domain.Account, error) {
	cred, err := s.Repo.Get(ctx, category)
	if err != nil {
		return domain.Account{}, err
	}
	sess := s.tw.Session(twitter.Token{
		AccessToken:       cred.AccessToken,
		AccessTokenSecret: cred.AccessTokenSecret,
	})
	user, err := sess.VerifyCredentials(ctx)
	if err != nil {
		if perr.IsCanceled(err) {
			return domain.Account{}, perr.Wrapf(err, perr.ErrorCodeCanceled, "resolve %s", category)
		}
		return domain.Account{}, perr.FeedUnavailable(err, "verify credentials for %s", category)
	}
	handle := user.ScreenName
	return domain.Account{
		Category:  category,
		Handle:    handle,
		Feed:      sess.Timeline(user),
		Sink:      sess.Poster(),
		Permalink: func(p leaderboard.Post) string { return twitter.Permalink(handle, p.ID) },
	}, nil
}
