package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/glup3/DotsOfLife/internal/clock"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/rs/zerolog/log"
)

// RefreshJob recomputes the elapsed result on a fixed interval and keeps the
// latest one. Refresh is the only writer of the result slot and must not be
// called concurrently with itself or with Run.
type RefreshJob struct {
	calculator *lifetime.Calculator
	clock      clock.Clock
	reference  lifetime.CalendarDate
	interval   time.Duration
	latest     atomic.Pointer[lifetime.ElapsedResult]
	onUpdate   func(lifetime.ElapsedResult)
}

func NewRefreshJob(calculator *lifetime.Calculator, c clock.Clock, reference lifetime.CalendarDate, interval time.Duration) *RefreshJob {
	return &RefreshJob{
		calculator: calculator,
		clock:      c,
		reference:  reference,
		interval:   interval,
	}
}

// OnUpdate registers a callback for every new result. Call before Run.
func (job *RefreshJob) OnUpdate(fn func(lifetime.ElapsedResult)) {
	job.onUpdate = fn
}

// Latest returns the most recent result, or nil before the first refresh.
func (job *RefreshJob) Latest() *lifetime.ElapsedResult {
	return job.latest.Load()
}

// Refresh computes once and publishes the result.
func (job *RefreshJob) Refresh() (lifetime.ElapsedResult, error) {
	result, err := job.calculator.Compute(job.reference, job.clock.Now())
	if err != nil {
		return result, err
	}

	job.latest.Store(&result)

	if job.onUpdate != nil {
		job.onUpdate(result)
	}

	return result, nil
}

// Run refreshes immediately and then on every tick until ctx is done.
func (job *RefreshJob) Run(ctx context.Context) {
	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	log.Info().
		Str("reference", job.reference.String()).
		Dur("interval", job.interval).
		Msg("starting refresh job")

	job.refreshAndLog()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping refresh job")
			return
		case <-ticker.C:
			job.refreshAndLog()
		}
	}
}

func (job *RefreshJob) refreshAndLog() {
	start := time.Now()

	result, err := job.Refresh()
	if err != nil {
		log.Error().Err(err).Str("job", "refresh").Msg("failed computing elapsed time")
		return
	}

	log.Debug().
		Int("days", result.DaysElapsed).
		Int("weeks", result.Weeks.Whole).
		Int("years", result.Years.Whole).
		Msgf("refresh took %s", time.Since(start))
}
