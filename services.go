package main

import (
	"context"
	"os"

	"sjsage522/jobaggregator/config"
	"sjsage522/jobaggregator/internal/collector"
	"sjsage522/jobaggregator/internal/pipeline"
	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/services/cache"
	"sjsage522/jobaggregator/services/publisher"
	"sjsage522/jobaggregator/services/worker"
)

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			logger.LogError("publisher", err, "failed to close publisher")
		}
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config, dryRun bool) (*Services, error) {
	services := &Services{
		Cache: cache.New(cfg.MemcacheAddr),
	}

	switch {
	case dryRun:
		services.Publisher = publisher.NewWriterPublisher(os.Stdout)
	case cfg.SinkType == "postgres":
		pg, err := publisher.NewPostgresPublisher(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		services.Publisher = pg
	default:
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
	}

	return services, nil
}

// newWorker wires the collector, pipeline and publisher into a worker
func newWorker(cfg *config.Config, services *Services) *worker.Worker {
	return worker.NewWorker(
		cfg.PlanOptions(),
		collector.New(cfg.CollectorOptions(), nil, services.Cache),
		pipeline.New(cfg.PipelineOptions(), nil),
		services.Publisher,
	)
}
