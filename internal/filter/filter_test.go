package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFilter(t *testing.T) {
	f := NewPlatformFilter([]string{"LinkedIn", "indeed"})

	assert.True(t, f.IsEnabled("linkedin"))
	assert.True(t, f.IsEnabled("INDEED"))
	assert.False(t, f.IsEnabled("glassdoor"))

	assert.Equal(t, "linkedin", f.DetectPlatform("https://www.LINKEDIN.com/jobs"))
	assert.Equal(t, "glassdoor", f.DetectPlatform("https://www.glassdoor.com/Job"))
	assert.Equal(t, "", f.DetectPlatform("https://www.monster.com"))

	urls := []string{
		"https://www.linkedin.com/jobs/search/?keywords=go",
		"https://www.glassdoor.com/Job/jobs.htm",
		"https://www.monster.com/jobs",
		"https://www.indeed.com/jobs?q=go",
	}
	assert.Equal(t, []string{urls[0], urls[3]}, f.FilterURLs(urls))
}

func TestPlatformFilter_Defaults(t *testing.T) {
	f := NewPlatformFilter(nil)
	assert.Equal(t, []string{"linkedin", "indeed", "glassdoor"}, f.EnabledPlatforms())

	// Unrecognized domains are dropped even with everything enabled
	assert.Empty(t, f.FilterURLs([]string{"https://www.monster.com/jobs"}))
}

func TestPlatformFilter_EnabledPlatformsIsCopy(t *testing.T) {
	f := NewPlatformFilter([]string{"indeed"})
	platforms := f.EnabledPlatforms()
	platforms[0] = "glassdoor"

	assert.Equal(t, []string{"indeed"}, f.EnabledPlatforms())
	assert.False(t, f.IsEnabled("glassdoor"))
}

func TestParseAgeFilter(t *testing.T) {
	tests := []struct {
		token string
		days  int
		ok    bool
	}{
		{"any", 0, false},
		{"24h", 1, true},
		{"7d", 7, true},
		{"14d", 14, true},
		{"30d", 30, true},
		{"3d", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		days, ok := ParseAgeFilter(tt.token)
		assert.Equal(t, tt.days, days, tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
	}
}

func TestJobAgeFilter_ApplyToURL(t *testing.T) {
	linkedIn := "https://www.linkedin.com/jobs/search/?keywords=go&location=&start=0"
	indeed := "https://www.indeed.com/jobs?q=go&l=Austin&start=0"
	glassdoor := "https://www.glassdoor.com/Job/jobs.htm?keyword=go&location=&page=1"

	assert.Equal(t, linkedIn+"&f_TPR=r86400", NewJobAgeFilter("24h").ApplyToURL(linkedIn, "linkedin"))
	assert.Equal(t, linkedIn+"&f_TPR=r1209600", NewJobAgeFilter("14d").ApplyToURL(linkedIn, "LinkedIn"))
	assert.Equal(t, indeed+"&fromage=7", NewJobAgeFilter("7d").ApplyToURL(indeed, "indeed"))
	assert.Equal(t, glassdoor+"&fromAge=30", NewJobAgeFilter("30d").ApplyToURL(glassdoor, "glassdoor"))

	// Existing parameter is overwritten, not duplicated
	assert.Equal(t,
		"https://www.indeed.com/jobs?q=go&fromage=1&start=0",
		NewJobAgeFilter("24h").ApplyToURL("https://www.indeed.com/jobs?q=go&fromage=14&start=0", "indeed"))
}

func TestJobAgeFilter_Idempotent(t *testing.T) {
	f := NewJobAgeFilter("7d")
	for _, tc := range []struct{ url, platform string }{
		{"https://www.linkedin.com/jobs/search/?keywords=go", "linkedin"},
		{"https://www.indeed.com/jobs?q=go", "indeed"},
		{"https://www.glassdoor.com/Job/jobs.htm?keyword=go", "glassdoor"},
	} {
		once := f.ApplyToURL(tc.url, tc.platform)
		assert.Equal(t, once, f.ApplyToURL(once, tc.platform))
	}
}

func TestJobAgeFilter_NoOp(t *testing.T) {
	url := "https://www.indeed.com/jobs?q=go"

	assert.Equal(t, url, NewJobAgeFilter("any").ApplyToURL(url, "indeed"))
	assert.Equal(t, url, NewJobAgeFilter("").ApplyToURL(url, "indeed"))
	assert.Equal(t, url, NewJobAgeFilter("bogus").ApplyToURL(url, "indeed"))
	assert.Equal(t, url, NewJobAgeFilter("7d").ApplyToURL(url, "monster"))

	_, ok := NewJobAgeFilter("any").Days()
	assert.False(t, ok)
	days, ok := NewJobAgeFilter("14d").Days()
	assert.True(t, ok)
	assert.Equal(t, 14, days)
}
