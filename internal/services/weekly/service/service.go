// Package service runs the weekly category leaderboards
package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"shelfwatch/internal/core/leaderboard"
	perr "shelfwatch/internal/platform/errors"
	"shelfwatch/internal/platform/logger"
	creddom "shelfwatch/internal/services/credentials/domain"
	"shelfwatch/internal/services/weekly/domain"
)

// Config controls a weekly run
type Config struct {
	Categories []domain.CategoryID
	Window     time.Duration
	Top        int

	// Concurrency caps parallel category jobs, 0 means one goroutine per category
	Concurrency int
	DryRun      bool
	Locale      language.Tag
}

// Svc implements domain.ReporterPort
type Svc struct {
	Resolver creddom.ResolverPort
	Cfg      Config

	now   func() time.Time
	newID func() string
}

var _ domain.ReporterPort = (*Svc)(nil)

// New constructs the weekly service
func New(resolver creddom.ResolverPort, cfg Config) *Svc {
	if resolver == nil {
		panic("weekly.Service requires a non nil account resolver")
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = creddom.DefaultCategories
	}
	if cfg.Window <= 0 {
		cfg.Window = 7 * 24 * time.Hour
	}
	if cfg.Top <= 0 {
		cfg.Top = leaderboard.DefaultTop
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.Korean
	}
	return &Svc{
		Resolver: resolver,
		Cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// RunWeekly runs every category concurrently and waits for all of them
// a failing or canceled category never stops the others
func (s *Svc) RunWeekly(ctx context.Context, req domain.RunRequest) (domain.Run, error) {
	cats, err := s.categories(req.Categories)
	if err != nil {
		return domain.Run{}, err
	}
	ref := req.Now
	if ref.IsZero() {
		ref = s.now()
	}
	dry := req.DryRun || s.Cfg.DryRun

	run := domain.Run{
		ID:        s.newID(),
		Ref:       ref,
		Window:    s.Cfg.Window,
		DryRun:    dry,
		StartedAt: s.now(),
		Outcomes:  make([]domain.Outcome, len(cats)),
	}
	ctx = logger.WithRun(ctx, run.ID, "")
	log := logger.C(ctx).With().Str("component", "weekly").Logger()
	log.Info().Time("ref", ref).Dur("window", s.Cfg.Window).Int("categories", len(cats)).Bool("dry_run", dry).Msg("weekly: run start")

	var g errgroup.Group
	if s.Cfg.Concurrency > 0 {
		g.SetLimit(s.Cfg.Concurrency)
	}
	for i, cat := range cats {
		i, cat := i, cat
		g.Go(func() error {
			run.Outcomes[i] = s.RunCategory(logger.WithRun(ctx, run.ID, string(cat)), cat, ref, dry)
			return nil
		})
	}
	_ = g.Wait()

	run.FinishedAt = s.now()
	ev := log.Info()
	if run.Failed() {
		ev = log.Warn()
	}
	ev.Dur("took", run.FinishedAt.Sub(run.StartedAt)).Bool("failed", run.Failed()).Msg("weekly: run done")
	return run, nil
}

// categories normalizes the requested set, falling back to the configured one
func (s *Svc) categories(in []domain.CategoryID) ([]domain.CategoryID, error) {
	if len(in) == 0 {
		return slices.Clone(s.Cfg.Categories), nil
	}
	out := make([]domain.CategoryID, 0, len(in))
	for _, c := range in {
		c = creddom.ParseCategory(string(c))
		if c == "" {
			return nil, perr.WithField(perr.InvalidArgf("blank category"), "categories")
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// RunCategory fetches, ranks and publishes one category's leaderboards
// the Boost chain is finished before the Approval chain starts; a failed Boost chain does not
// stop the Approval chain, cancellation does
func (s *Svc) RunCategory(ctx context.Context, cat domain.CategoryID, ref time.Time, dryRun bool) domain.Outcome {
	out := domain.Outcome{Category: cat, Stage: domain.StageIdle}
	log := logger.C(ctx).With().Str("component", "weekly").Logger()

	fail := func(err error) domain.Outcome {
		out.Error = err.Error()
		if perr.IsCanceled(err) {
			out.Stage = domain.StageCanceled
			out.Status = domain.StatusCanceled
			log.Info().Err(err).Msg("weekly: category canceled")
			return out
		}
		out.Status = domain.StatusFailed
		log.Error().Err(err).Str("stage", string(out.Stage)).Msg("weekly: category failed")
		return out
	}

	if err := ctx.Err(); err != nil {
		return fail(perr.Wrapf(err, perr.ErrorCodeCanceled, "category %s canceled before start", cat))
	}
	acct, err := s.Resolver.Resolve(ctx, cat)
	if err != nil {
		return fail(err)
	}
	out.Handle = acct.Handle

	out.Stage = domain.StageFetching
	posts, err := leaderboard.Fetch(ctx, acct.Feed, ref, s.Cfg.Window)
	if err != nil {
		return fail(err)
	}
	out.Fetched = len(posts)
	if len(posts) == 0 {
		out.Stage = domain.StageEmpty
		out.Status = domain.StatusEmpty
		log.Info().Msg("weekly: nothing posted in window")
		return out
	}

	out.Stage = domain.StageRanking
	if err := ctx.Err(); err != nil {
		return fail(perr.Wrapf(err, perr.ErrorCodeCanceled, "canceled before ranking"))
	}
	boost := leaderboard.Rank(posts, leaderboard.Boost, s.Cfg.Top)
	approval := leaderboard.Rank(posts, leaderboard.Approval, s.Cfg.Top)
	out.Boost.Ranked = ids(boost)
	out.Approval.Ranked = ids(approval)

	sink := acct.Sink
	if dryRun {
		sink = &dryRunSink{log: log}
	}

	var errs []error
	out.Stage = domain.StagePublishingBoost
	if err := s.publish(ctx, sink, acct, boost, leaderboard.Boost, &out.Boost); err != nil {
		if perr.IsCanceled(err) {
			return fail(err)
		}
		errs = append(errs, err)
	}

	out.Stage = domain.StagePublishingApproval
	if err := s.publish(ctx, sink, acct, approval, leaderboard.Approval, &out.Approval); err != nil {
		if perr.IsCanceled(err) {
			return fail(err)
		}
		errs = append(errs, err)
	}

	out.Stage = domain.StageDone
	if len(errs) > 0 {
		return fail(errors.Join(errs...))
	}
	out.Status = domain.StatusDone
	log.Info().
		Int("fetched", out.Fetched).
		Int("boost", len(out.Boost.Published)).
		Int("approval", len(out.Approval.Published)).
		Bool("dry_run", dryRun).
		Msg("weekly: category done")
	return out
}

func (s *Svc) publish(ctx context.Context, sink leaderboard.PublishSink, acct creddom.Account, ranked []leaderboard.Post, m leaderboard.Metric, res *domain.ChainResult) error {
	chain, err := leaderboard.Publish(ctx, sink, ranked, composer(s.Cfg.Locale, m), acct.Permalink)
	res.Published = []int64(chain)
	if res.Published == nil {
		res.Published = []int64{}
	}
	if err != nil {
		res.Error = err.Error()
	}
	return err
}

func ids(posts []leaderboard.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

// dryRunSink logs publications instead of posting them and hands out local ids so the
// reply chain still reads correctly in the log
type dryRunSink struct {
	log  logger.Logger
	next atomic.Int64
}

func (d *dryRunSink) Publish(_ context.Context, p leaderboard.Publication) (int64, error) {
	id := d.next.Add(1)
	d.log.Info().
		Int64("id", id).
		Int64("in_reply_to", p.InReplyTo).
		Str("text", p.Text).
		Str("attachment_url", p.AttachmentURL).
		Msg("weekly: dry run publish")
	return id, nil
}

// Summary renders outcomes one per line for CLI output
func Summary(run domain.Run) string {
	var b strings.Builder
	for _, o := range run.Outcomes {
		b.WriteString(string(o.Category))
		b.WriteString(": ")
		b.WriteString(string(o.Status))
		if o.Error != "" {
			b.WriteString(" (")
			b.WriteString(o.Error)
			b.WriteString(")")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
