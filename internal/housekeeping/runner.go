// Package housekeeping runs the periodic cleanup jobs.
package housekeeping

import (
	"context"
	"time"

	"gym24/internal/logger"
)

// Job is one cleanup step; it reports how many rows it removed.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

const defaultInterval = time.Hour

type Runner struct {
	interval time.Duration
	jobs     []Job
}

// NewRunner falls back to an hourly interval when interval is not positive.
func NewRunner(interval time.Duration, jobs ...Job) *Runner {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Runner{interval: interval, jobs: jobs}
}

// Run executes every job once, then again on each tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	logger.Info("housekeeping started", "interval", r.interval.String(), "jobs", len(r.jobs))

	r.RunOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("housekeeping stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce runs each job in order. A failing job is logged and the rest
// still run.
func (r *Runner) RunOnce(ctx context.Context) {
	for _, job := range r.jobs {
		if ctx.Err() != nil {
			return
		}
		removed, err := job.Run(ctx)
		if err != nil {
			logger.WithError(err).Error("housekeeping job failed", "job", job.Name)
			continue
		}
		if removed > 0 {
			logger.Info("housekeeping job done", "job", job.Name, "removed", removed)
		}
	}
}
