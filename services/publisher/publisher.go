package publisher

import (
	"encoding/json"
	"fmt"

	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/internal/pipeline"
)

// Publisher represents a service for publishing messages
type Publisher interface {
	// Publish publishes a message under key
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}

// JobSink delivers cleaned jobs to a Publisher as JSON, keyed by source site
type JobSink struct {
	publisher Publisher
}

var _ pipeline.Sink = (*JobSink)(nil)

// NewJobSink wraps p as a pipeline sink
func NewJobSink(p Publisher) *JobSink {
	return &JobSink{publisher: p}
}

// Append marshals job and publishes it
func (s *JobSink) Append(job model.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
	}
	return s.publisher.Publish(job.Source, data)
}
