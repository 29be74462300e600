package domain

import (
	"context"
	"time"
)

// ReporterPort runs weekly leaderboards
type ReporterPort interface {
	// RunWeekly runs every requested category concurrently and collects all outcomes
	RunWeekly(ctx context.Context, req RunRequest) (Run, error)

	// RunCategory runs one category against ref; it never returns an error, the outcome carries it
	RunCategory(ctx context.Context, cat CategoryID, ref time.Time, dryRun bool) Outcome
}
