// Package domain holds the weekly report run types
package domain

import (
	"time"

	creddom "shelfwatch/internal/services/credentials/domain"
)

// CategoryID re-exports the credentials category id
type CategoryID = creddom.CategoryID

// Stage is where a category job stopped
type Stage string

// Job stages in order
const (
	StageIdle               Stage = "idle"
	StageFetching           Stage = "fetching"
	StageCanceled           Stage = "canceled"
	StageEmpty              Stage = "empty"
	StageRanking            Stage = "ranking"
	StagePublishingBoost    Stage = "publishing_boost"
	StagePublishingApproval Stage = "publishing_approval"
	StageDone               Stage = "done"
)

// Status summarizes a category outcome
type Status string

// Outcome statuses; only StatusFailed counts as a failed run
const (
	StatusDone     Status = "done"
	StatusEmpty    Status = "empty"
	StatusCanceled Status = "canceled"
	StatusFailed   Status = "failed"
)

// RunRequest asks for one weekly run
// zero Now means the current time, empty Categories means the configured set
type RunRequest struct {
	Now        time.Time    `json:"now"`
	Categories []CategoryID `json:"categories" validate:"omitempty,max=16,dive,slug"`
	DryRun     bool         `json:"dry_run"`
}

// ChainResult is one published (or would-be published) reply chain
type ChainResult struct {
	Ranked    []int64 `json:"ranked"`
	Published []int64 `json:"published"`
	Error     string  `json:"error,omitempty"`
}

// Outcome is what happened to one category
type Outcome struct {
	Category CategoryID  `json:"category"`
	Handle   string      `json:"handle,omitempty"`
	Status   Status      `json:"status"`
	Stage    Stage       `json:"stage"`
	Fetched  int         `json:"fetched"`
	Boost    ChainResult `json:"boost"`
	Approval ChainResult `json:"approval"`
	Error    string      `json:"error,omitempty"`
}

// Run is the collected result of one weekly run
type Run struct {
	ID         string        `json:"run_id"`
	Ref        time.Time     `json:"ref"`
	Window     time.Duration `json:"window_ns"`
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Outcomes   []Outcome     `json:"outcomes"`
}

// Failed reports whether any category failed; canceled and empty are not failures
func (r Run) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return true
		}
	}
	return false
}
