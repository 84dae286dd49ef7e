package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	unknown := NewUnknownSite("www.monster.com")
	assert.True(t, IsUnknownSite(unknown))
	assert.False(t, IsInvalidInput(unknown))
	assert.Equal(t, "www.monster.com", unknown.Value)
	assert.Contains(t, unknown.Error(), "unknown job site: www.monster.com")

	wrapped := fmt.Errorf("creating adapter: %w", NewInvalidInput(""))
	assert.True(t, IsInvalidInput(wrapped))

	platform := NewUnsupportedPlatform("Monster")
	assert.True(t, IsUnsupportedPlatform(platform))
	assert.Equal(t, "Monster", platform.Value)

	assert.False(t, IsUnknownSite(fmt.Errorf("plain")))
	assert.False(t, IsUnknownSite(nil))
}

func TestAggregatorError_Format(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := NewNetwork("indeed", "fetch failed", cause)

	assert.Equal(t, "[network] indeed: fetch failed - dial tcp: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsRetryable())

	rl := NewRateLimit("linkedin", 30*time.Second)
	assert.False(t, rl.IsRetryable())
	assert.Equal(t, "[rate_limit] linkedin: rate limited for 30s", rl.Error())

	cfg := NewConfiguration("bad platforms", nil)
	assert.Equal(t, "[configuration] bad platforms", cfg.Error())
	assert.True(t, IsType(cfg, ErrorTypeConfiguration))
}
