package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/pkg/errors"
)

func TestCreateAdapter(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Site
	}{
		{"linkedin", model.LinkedIn},
		{"INDEED", model.Indeed},
		{"Glassdoor", model.Glassdoor},
		{"https://www.linkedin.com/jobs/view/123", model.LinkedIn},
		{"HTTPS://UK.INDEED.COM/jobs?q=go", model.Indeed},
		{"http://www.glassdoor.com/Job/jobs.htm", model.Glassdoor},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, err := CreateAdapter(tt.input, Config{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a.Site())
			assert.Equal(t, tt.expected, a.SiteConfig().Name)
		})
	}
}

func TestCreateAdapter_Errors(t *testing.T) {
	_, err := CreateAdapter("https://www.monster.com", Config{})
	require.Error(t, err)
	assert.True(t, errors.IsUnknownSite(err))
	var aggErr *errors.AggregatorError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "www.monster.com", aggErr.Value)

	_, err = CreateAdapter("monster", Config{})
	assert.True(t, errors.IsUnknownSite(err))
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "monster", aggErr.Value)

	_, err = CreateAdapter("", Config{})
	assert.True(t, errors.IsInvalidInput(err))

	// Whitespace is a site key, not a missing one
	_, err = CreateAdapter("   ", Config{})
	assert.True(t, errors.IsUnknownSite(err))
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "   ", aggErr.Value)

	_, err = CreateAdapter("https://", Config{})
	assert.True(t, errors.IsInvalidInput(err))

	// A site key that is not a URL does not get substring matching
	_, err = CreateAdapter("linkedin.com", Config{})
	assert.True(t, errors.IsUnknownSite(err))
}

func TestSupportedSites(t *testing.T) {
	assert.Equal(t, []string{"linkedin", "indeed", "glassdoor"}, SupportedSites())

	adapters := CreateAdapters(Config{})
	require.Len(t, adapters, 3)
	for i, site := range SupportedSites() {
		assert.Equal(t, site, string(adapters[i].Site()))
	}
}

func TestIsSiteSupported(t *testing.T) {
	assert.True(t, IsSiteSupported("LinkedIn"))
	assert.True(t, IsSiteSupported("https://www.glassdoor.com/Job/jobs.htm"))
	assert.False(t, IsSiteSupported("https://www.monster.com"))
	assert.False(t, IsSiteSupported(""))
	assert.False(t, IsSiteSupported("http://[::1"))
}
