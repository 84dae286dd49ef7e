package cache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211")

	// Test if memcached is available
	_, err := mc.client.Get("test")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	err = mc.Set("linkedin_rate_limited", []byte("600"), 1*time.Second)
	assert.NoError(t, err)

	value, err := mc.Get("linkedin_rate_limited")
	assert.NoError(t, err)
	assert.Equal(t, "600", string(value))

	err = mc.Delete("linkedin_rate_limited")
	assert.NoError(t, err)

	_, err = mc.Get("linkedin_rate_limited")
	assert.ErrorIs(t, err, ErrMiss)

	// Deleting a missing key is not an error
	assert.NoError(t, mc.Delete("linkedin_rate_limited"))
}

var _ CacheService = (*MemcacheService)(nil)
var _ CacheService = (*MemoryService)(nil)
