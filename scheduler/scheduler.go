package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the daily "produce today's tip if absent" job at a fixed
// UTC hour. It owns its cron instance and stops when the supplied context is
// cancelled, independent of any request lifecycle.
type Scheduler struct {
	logger  *zap.Logger
	cron    *cron.Cron
	job     func(ctx context.Context)
	stopped chan struct{}
	// baseCtx is the context passed to Start; job runs derive from it so a
	// shutdown also cancels an in-flight job.
	baseCtx context.Context
}

// New creates a Scheduler invoking job once per UTC day at hourUTC.
func New(logger *zap.Logger, hourUTC int, job func(ctx context.Context)) (*Scheduler, error) {
	s := &Scheduler{
		logger:  logger.Named("scheduler"),
		cron:    cron.New(cron.WithLocation(time.UTC)),
		job:     job,
		stopped: make(chan struct{}),
	}

	spec := fmt.Sprintf("0 %d * * *", hourUTC)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("failed to schedule daily job: %w", err)
	}
	return s, nil
}

// Start launches the cron loop and arranges for it to stop on ctx
// cancellation.
func (s *Scheduler) Start(ctx context.Context) {
	s.baseCtx = ctx
	s.cron.Start()
	s.logger.Info("Daily tip scheduler started")

	go func() {
		<-ctx.Done()
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.logger.Info("Daily tip scheduler stopped")
		close(s.stopped)
	}()
}

// Stopped is closed once the cron loop has fully wound down after context
// cancellation.
func (s *Scheduler) Stopped() <-chan struct{} {
	return s.stopped
}

func (s *Scheduler) run() {
	s.logger.Info("Running daily tip job")
	base := s.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, time.Minute)
	defer cancel()
	s.job(ctx)
}
