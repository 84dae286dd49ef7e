package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sjsage522/jobaggregator/internal/dedup"
	"sjsage522/jobaggregator/internal/expiration"
	"sjsage522/jobaggregator/internal/filter"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/logger"
)

// Options controls which cleaning steps remove jobs
type Options struct {
	RemoveDuplicates bool
	ExcludeExpired   bool
	// ExpirationDays is the expiry threshold; values below 1 mean the default
	ExpirationDays int
	// JobAge is an age token: any, 24h, 7d, 14d or 30d
	JobAge string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		RemoveDuplicates: true,
		ExpirationDays:   expiration.DefaultThresholdDays,
		JobAge:           filter.AgeAny,
	}
}

// Sink receives cleaned jobs one at a time
type Sink interface {
	Append(job model.Job) error
}

// Stats summarizes one batch
type Stats struct {
	Input      int
	Duplicates int
	Expired    int
	Output     int
	Delivered  int
}

// Pipeline cleans one finished scrape batch
type Pipeline struct {
	opts    Options
	expiry  *expiration.Detector
	ageDays int
	ageSet  bool
	log     *logger.Logger
}

// New creates a pipeline; a nil clock means time.Now
func New(opts Options, clock func() time.Time) *Pipeline {
	if opts.ExpirationDays < 1 {
		opts.ExpirationDays = expiration.DefaultThresholdDays
	}
	if opts.JobAge == "" {
		opts.JobAge = filter.AgeAny
	}
	days, ok := filter.NewJobAgeFilter(opts.JobAge).Days()

	return &Pipeline{
		opts:    opts,
		expiry:  expiration.NewDetector(clock),
		ageDays: days,
		ageSet:  ok,
		log:     logger.ForPipeline(),
	}
}

// Options returns the effective options
func (p *Pipeline) Options() Options {
	return p.opts
}

// Process runs the cleaning steps in order: duplicate detection and expiration
// marking always, then duplicate removal, expired removal and the age filter
// when enabled. The input slice is not modified.
func (p *Pipeline) Process(jobs []model.Job) ([]model.Job, Stats) {
	stats := Stats{Input: len(jobs)}

	out := dedup.DetectDuplicates(jobs)
	stats.Duplicates = dedup.CountDuplicates(out)
	p.log.Debug().Int("duplicates", stats.Duplicates).Msg("Duplicates detected")

	out = p.expiry.MarkExpiration(out, p.opts.ExpirationDays)
	stats.Expired = expiration.CountExpired(out)
	p.log.Debug().Int("expired", stats.Expired).Int("threshold_days", p.opts.ExpirationDays).Msg("Expiration marked")

	if p.opts.RemoveDuplicates {
		out = dedup.RemoveDuplicates(out)
		p.log.Debug().Int("remaining", len(out)).Msg("Duplicates removed")
	}

	if p.opts.ExcludeExpired {
		out = expiration.FilterExpired(out)
		p.log.Debug().Int("remaining", len(out)).Msg("Expired jobs removed")
	}

	if p.ageSet {
		out = expiration.FilterByAge(out, p.ageDays)
		p.log.Debug().Int("remaining", len(out)).Str("job_age", p.opts.JobAge).Msg("Age filter applied")
	}

	stats.Output = len(out)
	return out, stats
}

// Run processes the batch and appends every survivor to sink. A failed append
// does not stop delivery; all failures are returned joined.
func (p *Pipeline) Run(ctx context.Context, jobs []model.Job, sink Sink) (Stats, error) {
	out, stats := p.Process(jobs)

	var errs []error
	for _, job := range out {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := sink.Append(job); err != nil {
			errs = append(errs, fmt.Errorf("append job %s: %w", job.ID, err))
			continue
		}
		stats.Delivered++
	}

	p.log.Info().
		Int("input", stats.Input).
		Int("duplicates", stats.Duplicates).
		Int("expired", stats.Expired).
		Int("output", stats.Output).
		Int("delivered", stats.Delivered).
		Msg("Batch processed")

	return stats, errors.Join(errs...)
}
