package cache

import (
	"errors"
	"strconv"
	"time"

	apperrors "sjsage522/jobaggregator/pkg/errors"
)

// ErrMiss is returned by Get when the key is absent or expired
var ErrMiss = errors.New("cache: miss")

// CacheService represents a generic cache service
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// IsBlocked reports whether a rate-limit marker is set for key.
// A nil cache or an empty key never blocks.
func IsBlocked(c CacheService, key string) bool {
	if c == nil || key == "" {
		return false
	}
	_, err := c.Get(key)
	return err == nil
}

// Block stores a rate-limit marker for key that expires after d
func Block(c CacheService, key string, d time.Duration) error {
	if c == nil || key == "" {
		return nil
	}
	if err := c.Set(key, []byte(strconv.Itoa(int(d/time.Second))), d); err != nil {
		return apperrors.NewCache(key, "failed to set rate-limit marker", err)
	}
	return nil
}
