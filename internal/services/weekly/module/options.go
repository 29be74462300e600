package module

import (
	"time"

	"shelfwatch/internal/platform/config"
)

// Options for the weekly module
type Options struct {
	Categories  []string
	Window      time.Duration
	Top         int
	Concurrency int
	DryRun      bool
	Locale      string
}

// FromConfig fills options from environment
// WEEKLY_CATEGORIES (default comics,lnovel,itbook) is the set run when a request names none
// WEEKLY_WINDOW (default 168h) is how far back a leaderboard looks
// WEEKLY_TOP (default 3) is the length of each reply chain
// WEEKLY_CONCURRENCY (default 0, unlimited) caps parallel categories
// WEEKLY_DRYRUN (default false) logs publications instead of posting them
// WEEKLY_LOCALE (default ko) picks the message language: ko or en
func FromConfig(cfg config.Conf) Options {
	w := cfg.Prefix("WEEKLY_")
	return Options{
		Categories:  w.MayCSV("CATEGORIES", []string{"comics", "lnovel", "itbook"}),
		Window:      w.MayDuration("WINDOW", 7*24*time.Hour),
		Top:         w.MayInt("TOP", 3),
		Concurrency: w.MayInt("CONCURRENCY", 0),
		DryRun:      w.MayBool("DRYRUN", false),
		Locale:      w.MayEnum("LOCALE", "ko", "ko", "en"),
	}
}
