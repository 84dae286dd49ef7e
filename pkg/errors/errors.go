package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeInvalidInput represents a missing or malformed site identifier
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeUnknownSite represents an unrecognized domain or site key
	ErrorTypeUnknownSite ErrorType = "unknown_site"
	// ErrorTypeUnsupportedPlatform represents search-mode adaptation for an unlisted platform
	ErrorTypeUnsupportedPlatform ErrorType = "unsupported_platform"
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// AggregatorError is the error type shared by adapters, filters and services.
// Value carries the offending input (host, site key, platform) when there is one.
type AggregatorError struct {
	Type    ErrorType
	Site    string
	Value   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *AggregatorError) Error() string {
	prefix := fmt.Sprintf("[%s]", e.Type)
	if e.Site != "" {
		prefix += " " + e.Site + ":"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s - %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

// Unwrap returns the underlying error
func (e *AggregatorError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *AggregatorError) IsRetryable() bool {
	return e.Type == ErrorTypeNetwork
}

// New creates a new AggregatorError
func New(errType ErrorType, site, message string, err error) *AggregatorError {
	return &AggregatorError{
		Type:    errType,
		Site:    site,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewInvalidInput creates an error for a missing or non-string site identifier
func NewInvalidInput(value string) *AggregatorError {
	e := New(ErrorTypeInvalidInput, "", "site name or URL is required", nil)
	e.Value = value
	return e
}

// NewUnknownSite creates an error for an unrecognized host or site key
func NewUnknownSite(value string) *AggregatorError {
	e := New(ErrorTypeUnknownSite, "", fmt.Sprintf("unknown job site: %s", value), nil)
	e.Value = value
	return e
}

// NewUnsupportedPlatform creates an error for a platform with no search-mode handler
func NewUnsupportedPlatform(platform string) *AggregatorError {
	e := New(ErrorTypeUnsupportedPlatform, "", fmt.Sprintf("unsupported platform: %s", platform), nil)
	e.Value = platform
	return e
}

// NewNetwork creates a new network error
func NewNetwork(site, message string, err error) *AggregatorError {
	return New(ErrorTypeNetwork, site, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(site, message string, err error) *AggregatorError {
	return New(ErrorTypeParsing, site, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(site string, duration time.Duration) *AggregatorError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, site, message, nil)
}

// NewCache creates a new cache error. Key is the cache key involved.
func NewCache(key, message string, err error) *AggregatorError {
	e := New(ErrorTypeCache, "", message, err)
	e.Value = key
	return e
}

// NewPublisher creates a new publisher error
func NewPublisher(site, message string, err error) *AggregatorError {
	return New(ErrorTypePublisher, site, message, err)
}

// NewValidation creates a new validation error
func NewValidation(site, message string, err error) *AggregatorError {
	return New(ErrorTypeValidation, site, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *AggregatorError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// IsType reports whether err, or anything it wraps, is an AggregatorError of type t
func IsType(err error, t ErrorType) bool {
	var aggErr *AggregatorError
	if stderrors.As(err, &aggErr) {
		return aggErr.Type == t
	}
	return false
}

// IsInvalidInput reports whether err is an invalid_input error
func IsInvalidInput(err error) bool {
	return IsType(err, ErrorTypeInvalidInput)
}

// IsUnknownSite reports whether err is an unknown_site error
func IsUnknownSite(err error) bool {
	return IsType(err, ErrorTypeUnknownSite)
}

// IsUnsupportedPlatform reports whether err is an unsupported_platform error
func IsUnsupportedPlatform(err error) bool {
	return IsType(err, ErrorTypeUnsupportedPlatform)
}
