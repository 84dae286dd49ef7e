// Package scheduler triggers worker batches on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/services/worker"
)

// Runner runs one batch
type Runner interface {
	RunOnce(ctx context.Context) (worker.RunResult, error)
}

// Scheduler wraps robfig/cron around a Runner
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	log    *logger.Logger
	// tracks the batch started outside cron by Start
	wg sync.WaitGroup
}

// cronLogger forwards cron's own messages to zerolog
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// New creates a Scheduler that fires every interval. A batch still running when
// the next tick fires makes that tick a no-op.
func New(runner Runner, interval time.Duration) *Scheduler {
	log := logger.ForScheduler()
	cl := cronLogger{log: log}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl))),
		runner: runner,
		spec:   fmt.Sprintf("@every %s", interval),
		log:    log,
	}
}

// Spec returns the cron spec
func (s *Scheduler) Spec() string {
	return s.spec
}

// Start registers the job, starts the scheduler and runs one batch right away
// so the feed fills without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("Cron started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
	return nil
}

// Stop stops the scheduler and waits for running batches to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info().Msg("Cron stopped")
}

// Run starts the scheduler and blocks until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result, err := s.runner.RunOnce(ctx)
	if err != nil && ctx.Err() == nil {
		s.log.Error().Err(err).Str("run_id", result.RunID).Msg("Scheduled batch failed")
	}
}
