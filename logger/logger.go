package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog logger carrying component fields
type Logger struct {
	logger zerolog.Logger
}

// Default is the process-wide logger; component loggers derive from it
var Default *Logger

// Init initializes the logger writing to stdout
func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter initializes the default logger on out. Colors are only used on stdout.
func InitWithWriter(out io.Writer) {
	level := getLogLevel()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stdout,
	}
	Default = &Logger{logger: zerolog.New(output).With().Timestamp().Logger()}

	Default.Debug().Str("level", level.String()).Msg("Logger initialized")
}

// getLogLevel reads LOG_LEVEL; when unset, production logs at info and everything else at debug
func getLogLevel() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("JOBAGG_ENVIRONMENT") == "production" {
			return zerolog.InfoLevel
		}
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func ensure() {
	if Default == nil {
		Init()
	}
}

// WithField returns a child logger with key set on every event
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

// WithError returns a child logger with err attached to every event
func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}

func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

func component(name string) *Logger {
	ensure()
	return Default.WithField("component", name)
}

// ForAdapter creates a logger for a site adapter
func ForAdapter(site string) *Logger {
	ensure()
	return Default.WithField("site", site)
}

func ForCollector() *Logger { return component("collector") }

func ForPipeline() *Logger { return component("pipeline") }

func ForWorker() *Logger { return component("worker") }

func ForPublisher() *Logger { return component("publisher") }

func ForCache() *Logger { return component("cache") }

func ForScheduler() *Logger { return component("scheduler") }

// LogError logs err at error level under component with a formatted message
func LogError(name string, err error, format string, v ...interface{}) {
	component(name).WithError(err).Error().Msg(fmt.Sprintf(format, v...))
}
