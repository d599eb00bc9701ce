package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"
)

// Scheduler runs a job on a cron expression in a fixed zone. Overlapping runs are skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	loc      *time.Location
}

// NewScheduler parses spec (standard five-field cron) and registers job.
func NewScheduler(spec string, loc *time.Location, job func(ctx context.Context)) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("backfill: parse schedule %q: %w", spec, err)
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	c.Schedule(schedule, cron.FuncJob(func() {
		started := time.Now()
		logx.Infof("scheduled job started")
		job(context.Background())
		logx.Infof("scheduled job finished in %s", time.Since(started).Round(time.Second))
	}))
	return &Scheduler{cron: c, schedule: schedule, loc: loc}, nil
}

// NextAfter reports the first activation strictly after t.
func (s *Scheduler) NextAfter(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.loc))
}

// Next reports the next activation from now.
func (s *Scheduler) Next() time.Time {
	return s.NextAfter(time.Now())
}

// Start begins scheduling in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and blocks until a running job completes or ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
