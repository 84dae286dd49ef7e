package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/jobaggregator/internal/collector"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/internal/pipeline"
	"sjsage522/jobaggregator/services/publisher"
)

// MockCollector implements Collector for testing
type MockCollector struct {
	mu       sync.Mutex
	jobs     []model.Job
	err      error
	requests [][]collector.Request
}

// Ensure MockCollector implements Collector
var _ Collector = (*MockCollector)(nil)

func (m *MockCollector) Collect(_ context.Context, requests []collector.Request) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, requests)
	return m.jobs, m.err
}

func (m *MockCollector) runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
	failKey  string
	trimmed  int
}

// Ensure MockPublisher implements publisher.Publisher
var _ publisher.Publisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{messages: make(map[string][][]byte)}
}

func (m *MockPublisher) Publish(key string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == m.failKey {
		return errors.New("stream unavailable")
	}
	m.messages[key] = append(m.messages[key], append([]byte(nil), message...))
	return nil
}

func (m *MockPublisher) TrimStreams() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trimmed++
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testJobs() []model.Job {
	posted := now.AddDate(0, 0, -1).Format(time.RFC3339)
	return []model.Job{
		{ID: "1", Title: "Engineer", Company: "Google Inc.", Location: "SF", Source: "linkedin", PostedDate: posted},
		{ID: "2", Title: "Engineer", Company: "Google", Location: "SF", Source: "indeed", PostedDate: posted},
		{ID: "3", Title: "Designer", Company: "Apple", Location: "NY", Source: "glassdoor", PostedDate: posted},
	}
}

func newTestWorker(c Collector, pub publisher.Publisher) *Worker {
	return NewWorker(
		collector.PlanOptions{SearchQueries: []string{"go"}, Platforms: []string{"indeed"}},
		c,
		pipeline.New(pipeline.DefaultOptions(), func() time.Time { return now }),
		pub,
	)
}

func TestWorkerRunOnce(t *testing.T) {
	mockCollector := &MockCollector{jobs: testJobs()}
	mockPublisher := NewMockPublisher()

	result, err := newTestWorker(mockCollector, mockPublisher).RunOnce(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Requests)
	assert.Equal(t, 3, result.Collected)
	assert.Equal(t, 1, result.Stats.Duplicates)
	assert.Equal(t, 2, result.Stats.Delivered)

	// Only the enabled platform was planned
	require.Len(t, mockCollector.requests, 1)
	assert.Equal(t, model.Indeed, mockCollector.requests[0][0].Site)

	// The duplicate from indeed was removed; the canonical carries both sources
	assert.Len(t, mockPublisher.messages["linkedin"], 1)
	assert.Empty(t, mockPublisher.messages["indeed"])
	var canonical model.Job
	require.NoError(t, json.Unmarshal(mockPublisher.messages["linkedin"][0], &canonical))
	assert.Equal(t, []string{"linkedin", "indeed"}, canonical.Sources)

	assert.Equal(t, 1, mockPublisher.trimmed)
}

func TestWorkerRunOnce_DeliveryErrors(t *testing.T) {
	mockPublisher := NewMockPublisher()
	mockPublisher.failKey = "glassdoor"

	result, err := newTestWorker(&MockCollector{jobs: testJobs()}, mockPublisher).RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream unavailable")
	assert.Equal(t, 1, result.Stats.Delivered)
	assert.Equal(t, 1, mockPublisher.trimmed)
}

func TestWorkerRunOnce_CollectError(t *testing.T) {
	mockPublisher := NewMockPublisher()

	mockCollector := &MockCollector{err: context.Canceled}
	_, err := newTestWorker(mockCollector, mockPublisher).RunOnce(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mockCollector.runs())
	assert.Empty(t, mockPublisher.messages)
	assert.Equal(t, 0, mockPublisher.trimmed)
}
