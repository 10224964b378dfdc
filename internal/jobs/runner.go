// Package jobs holds the scheduled reminder tasks: lease expiry, overdue
// payment escalation and month-end rent reminders. Each job exposes a single
// scan-and-notify pass; the Runner drives the pass on a fixed interval and a
// redis lock keeps overlapping passes of the same job from double-sending.
package jobs

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval matches the daily cadence of the reminder scans.
const DefaultInterval = 24 * time.Hour

// Job is one scheduled task. RunOnce performs a single scan-and-notify pass
// against the given wall-clock time; the day-boundary comparisons inside the
// jobs depend on now, which tests inject directly.
type Job interface {
	Name() string
	RunOnce(ctx context.Context, now time.Time) error
}

// Locker serializes passes of the same job across processes. TryLock returns
// false when another pass holds the lock; the release func is a no-op in
// that case.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (bool, func(), error)
}

// Runner drives jobs on a fixed interval until the context is cancelled.
type Runner struct {
	interval time.Duration
	locker   Locker
	lockTTL  time.Duration
}

// NewRunner builds a runner. A nil locker disables single-flight guarding.
func NewRunner(interval time.Duration, locker Locker) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{
		interval: interval,
		locker:   locker,
		lockTTL:  15 * time.Minute,
	}
}

// Run executes the job once immediately, then on every tick, until ctx is
// cancelled. Pass errors are logged and never terminate the loop; an
// in-flight pass runs to completion even after cancellation is requested.
func (r *Runner) Run(ctx context.Context, job Job) error {
	r.runPass(ctx, job)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.runPass(ctx, job)
		}
	}
}

func (r *Runner) runPass(ctx context.Context, job Job) {
	if r.locker != nil {
		ok, release, err := r.locker.TryLock(ctx, job.Name(), r.lockTTL)
		if err != nil {
			slog.Error("job lock failed", "job", job.Name(), "err", err)
			return
		}
		if !ok {
			slog.Info("job pass skipped, lock held elsewhere", "job", job.Name())
			return
		}
		defer release()
	}
	start := time.Now()
	if err := job.RunOnce(ctx, start.UTC()); err != nil {
		slog.Error("job pass failed", "job", job.Name(), "err", err)
		return
	}
	slog.Info("job pass complete", "job", job.Name(), "duration_ms", time.Since(start).Milliseconds())
}
