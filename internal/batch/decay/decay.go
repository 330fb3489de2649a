// Package decay implements the background hotness recompute job. It never
// sits on a request path; it is triggered by a schedule or an explicit call
// and is safe to re-run at any time.
package decay

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/agora/internal/adapters/repository"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/pkg/logger"
	"github.com/okian/agora/pkg/metrics"
)

// Default job configuration constants.
const (
	defaultBatchSize  = 100
	defaultBatchDelay = 500 * time.Millisecond
)

// Source provides the content to recompute and the persistence hook.
type Source interface {
	ContentItems(ctx context.Context, minAge time.Duration) ([]repository.ContentItem, error)
	UpdateHotness(ctx context.Context, itemID string, hotness float64) error
}

// Report summarizes one run. Failed counts per-item errors; a failing item
// never aborts the rest of its batch.
type Report struct {
	Updated   int           `json:"updated"`
	Unchanged int           `json:"unchanged"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// Job recomputes content hotness in bounded batches. Items within a batch
// update concurrently; batches run sequentially with a fixed delay to cap
// write pressure on the backing store.
type Job struct {
	src       Source
	batchSize int
	delay     time.Duration
	minAge    time.Duration
	epsilon   float64
	now       func() time.Time
	logger    logger.Logger
}

// Option applies a configuration option to the Job.
type Option func(*Job)

// WithBatchSize bounds how many items update concurrently.
func WithBatchSize(n int) Option {
	return func(j *Job) {
		if n > 0 {
			j.batchSize = n
		}
	}
}

// WithBatchDelay sets the pause between batches.
func WithBatchDelay(d time.Duration) Option {
	return func(j *Job) {
		if d >= 0 {
			j.delay = d
		}
	}
}

// WithMinAge restricts the run to items at least this old.
func WithMinAge(d time.Duration) Option {
	return func(j *Job) {
		if d > 0 {
			j.minAge = d
		}
	}
}

// WithEpsilon overrides the write-skip threshold.
func WithEpsilon(e float64) Option {
	return func(j *Job) {
		if e > 0 {
			j.epsilon = e
		}
	}
}

// WithClock injects the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(j *Job) {
		if now != nil {
			j.now = now
		}
	}
}

// WithLogger sets a custom logger for the job.
func WithLogger(l logger.Logger) Option {
	return func(j *Job) {
		if l != nil {
			j.logger = l
		}
	}
}

// NewJob creates a decay job over src.
func NewJob(src Source, opts ...Option) *Job {
	j := &Job{
		src:       src,
		batchSize: defaultBatchSize,
		delay:     defaultBatchDelay,
		epsilon:   scoring.DefaultEpsilon,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run recomputes hotness for all eligible content. The run aborts between
// batches when ctx is canceled; there is no mid-batch cancellation, so a
// retry means a full re-run.
func (j *Job) Run(ctx context.Context) (Report, error) {
	if j.logger == nil {
		j.logger = logger.Get().Named("decay")
	}

	start := j.now()
	items, err := j.src.ContentItems(ctx, j.minAge)
	if err != nil {
		return Report{}, fmt.Errorf("load content: %w", err)
	}

	var updated, unchanged, failed atomic.Int64
	for batchStart := 0; batchStart < len(items); batchStart += j.batchSize {
		if batchStart > 0 {
			select {
			case <-ctx.Done():
				return j.report(start, &updated, &unchanged, &failed), fmt.Errorf("decay aborted: %w", ctx.Err())
			case <-time.After(j.delay):
			}
		}

		end := batchStart + j.batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for _, item := range items[batchStart:end] {
			wg.Add(1)
			go func(item repository.ContentItem) {
				defer wg.Done()
				j.recompute(ctx, item, &updated, &unchanged, &failed)
			}(item)
		}
		wg.Wait()
	}

	report := j.report(start, &updated, &unchanged, &failed)
	metrics.RecordDecayRun(report.Duration.Seconds(), report.Updated, report.Unchanged, report.Failed)
	j.logger.Info(ctx, "decay run finished",
		logger.Int("updated", report.Updated),
		logger.Int("unchanged", report.Unchanged),
		logger.Int("failed", report.Failed),
	)
	return report, nil
}

// recompute handles a single item; a failure is recorded and skipped.
func (j *Job) recompute(ctx context.Context, item repository.ContentItem, updated, unchanged, failed *atomic.Int64) {
	ageHours := j.now().Sub(item.CreatedAt).Hours()
	newScore := scoring.Hotness(item.Counters, ageHours)

	if !scoring.NeedsUpdate(item.Hotness, newScore, j.epsilon) {
		unchanged.Add(1)
		return
	}
	if err := j.src.UpdateHotness(ctx, item.ID, newScore); err != nil {
		failed.Add(1)
		j.logger.Error(ctx, "hotness update failed",
			logger.String("itemID", item.ID),
			logger.Error(err),
		)
		return
	}
	updated.Add(1)
}

func (j *Job) report(start time.Time, updated, unchanged, failed *atomic.Int64) Report {
	return Report{
		Updated:   int(updated.Load()),
		Unchanged: int(unchanged.Load()),
		Failed:    int(failed.Load()),
		Duration:  j.now().Sub(start),
	}
}
