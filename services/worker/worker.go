package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sjsage522/jobaggregator/internal/collector"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/internal/pipeline"
	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/services/publisher"
)

// Collector fetches the jobs behind a set of crawl requests
type Collector interface {
	Collect(ctx context.Context, requests []collector.Request) ([]model.Job, error)
}

// RunResult summarizes one batch
type RunResult struct {
	RunID     string
	Requests  int
	Collected int
	Stats     pipeline.Stats
	Duration  time.Duration
}

// Worker handles the crawling, cleaning and publishing process
type Worker struct {
	plan      collector.PlanOptions
	collector Collector
	pipeline  *pipeline.Pipeline
	publisher publisher.Publisher
}

// NewWorker creates a new worker
func NewWorker(
	plan collector.PlanOptions,
	c Collector,
	p *pipeline.Pipeline,
	pub publisher.Publisher,
) *Worker {
	return &Worker{
		plan:      plan,
		collector: c,
		pipeline:  p,
		publisher: pub,
	}
}

// RunOnce plans, collects, cleans and delivers one batch, then trims the streams.
// Delivery failures are returned after the whole batch has been attempted.
func (w *Worker) RunOnce(ctx context.Context) (RunResult, error) {
	start := time.Now()
	result := RunResult{RunID: uuid.NewString()}
	log := logger.ForWorker().WithField("run_id", result.RunID)

	requests := collector.Plan(w.plan)
	result.Requests = len(requests)
	if len(requests) == 0 {
		log.Warn().Msg("Nothing to crawl")
	}

	jobs, err := w.collector.Collect(ctx, requests)
	if err != nil {
		return result, err
	}
	result.Collected = len(jobs)

	stats, deliverErr := w.pipeline.Run(ctx, jobs, publisher.NewJobSink(w.publisher))
	result.Stats = stats
	if deliverErr != nil {
		log.Error().Err(deliverErr).Int("failed", stats.Output-stats.Delivered).Msg("Some jobs were not delivered")
	}

	if err := w.publisher.TrimStreams(); err != nil {
		logger.LogError("StreamTrimming", err, "failed to trim streams")
	}

	result.Duration = time.Since(start)
	log.Info().
		Int("requests", result.Requests).
		Int("collected", result.Collected).
		Int("delivered", stats.Delivered).
		Dur("elapsed", result.Duration).
		Msg("Batch finished")

	return result, deliverErr
}
