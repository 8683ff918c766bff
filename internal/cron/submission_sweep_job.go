package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const defaultStaleAfter = 2 * time.Minute

type submissionSweeper interface {
	SweepStaleSubmissions(ctx context.Context, olderThan time.Duration) (int, error)
}

// SubmissionSweepJobParams configure the stale submission sweeper.
type SubmissionSweepJobParams struct {
	Logger     *logger.Logger
	Sweeper    submissionSweeper
	StaleAfter time.Duration
}

// NewSubmissionSweepJob fails checkout submissions that never reported back,
// such as those owned by an API instance that crashed mid-submit.
func NewSubmissionSweepJob(params SubmissionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sweeper == nil {
		return nil, fmt.Errorf("sweeper required")
	}
	staleAfter := params.StaleAfter
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}
	return &submissionSweepJob{
		logg:       params.Logger,
		sweeper:    params.Sweeper,
		staleAfter: staleAfter,
	}, nil
}

type submissionSweepJob struct {
	logg       *logger.Logger
	sweeper    submissionSweeper
	staleAfter time.Duration
}

func (j *submissionSweepJob) Name() string { return "stale-submission-sweeper" }

func (j *submissionSweepJob) Run(ctx context.Context) error {
	swept, err := j.sweeper.SweepStaleSubmissions(ctx, j.staleAfter)
	if swept > 0 {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"sessions_swept": swept,
			"stale_after":    j.staleAfter.String(),
		})
		j.logg.Warn(logCtx, "worker.submissions.swept")
	}
	if err != nil {
		return fmt.Errorf("sweep submissions: %w", err)
	}
	return nil
}
