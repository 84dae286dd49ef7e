package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestComponentLoggers(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer func() { Default = nil }()

	ForPipeline().Info().Int("input", 3).Msg("Batch processed")
	ForAdapter("indeed").Warn().Msg("Skipping record")

	out := buf.String()
	assert.Contains(t, out, "Batch processed")
	assert.Contains(t, out, "component=pipeline")
	assert.Contains(t, out, "input=3")
	assert.Contains(t, out, "site=indeed")
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer func() { Default = nil }()

	LogError("publisher", errors.New("connection refused"), "failed to publish %d jobs", 2)

	out := buf.String()
	assert.Contains(t, out, "failed to publish 2 jobs")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "component=publisher")
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, getLogLevel())

	os.Unsetenv("LOG_LEVEL")
	t.Setenv("JOBAGG_ENVIRONMENT", "production")
	assert.Equal(t, zerolog.InfoLevel, getLogLevel())

	t.Setenv("JOBAGG_ENVIRONMENT", "development")
	assert.Equal(t, zerolog.DebugLevel, getLogLevel())
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer func() { Default = nil }()

	ForPublisher().WithError(errors.New("stream down")).Warn().Msg("Retrying")

	out := buf.String()
	assert.Contains(t, out, "component=publisher")
	assert.Contains(t, out, "stream down")
	assert.Contains(t, out, "Retrying")
}
