package filter

import (
	"slices"
	"strings"

	"sjsage522/jobaggregator/internal/model"
)

// PlatformFilter is an allow-list of enabled platforms
type PlatformFilter struct {
	enabled []string
}

// NewPlatformFilter creates a filter over platforms; nil enables every supported site
func NewPlatformFilter(platforms []string) *PlatformFilter {
	if platforms == nil {
		platforms = model.SiteNames()
	}
	enabled := make([]string, len(platforms))
	for i, p := range platforms {
		enabled[i] = strings.ToLower(p)
	}
	return &PlatformFilter{enabled: enabled}
}

// IsEnabled reports whether platform is on the allow-list, case-insensitively
func (f *PlatformFilter) IsEnabled(platform string) bool {
	return slices.Contains(f.enabled, strings.ToLower(platform))
}

// DetectPlatform returns the platform whose domain occurs in url, or "" when none does
func (f *PlatformFilter) DetectPlatform(url string) string {
	site, ok := model.SiteForText(url)
	if !ok {
		return ""
	}
	return string(site)
}

// FilterURLs keeps the URLs of recognized, enabled platforms, in order
func (f *PlatformFilter) FilterURLs(urls []string) []string {
	var kept []string
	for _, u := range urls {
		if p := f.DetectPlatform(u); p != "" && f.IsEnabled(p) {
			kept = append(kept, u)
		}
	}
	return kept
}

// EnabledPlatforms returns a copy of the allow-list
func (f *PlatformFilter) EnabledPlatforms() []string {
	return slices.Clone(f.enabled)
}
