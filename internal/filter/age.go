package filter

import (
	"strconv"
	"strings"

	"sjsage522/jobaggregator/helpers"
	"sjsage522/jobaggregator/internal/model"
)

// AgeAny disables recency filtering
const AgeAny = "any"

var ageTokens = map[string]int{
	"24h": 1,
	"7d":  7,
	"14d": 14,
	"30d": 30,
}

// linkedInTimeRanges maps a day count to LinkedIn's f_TPR value (r + seconds)
var linkedInTimeRanges = map[int]string{
	1:  "r86400",
	7:  "r604800",
	14: "r1209600",
	30: "r2592000",
}

// ParseAgeFilter maps an age token to its day count. "any" and unknown tokens
// report false.
func ParseAgeFilter(token string) (int, bool) {
	days, ok := ageTokens[token]
	return days, ok
}

// JobAgeFilter injects a platform's recency parameter into search URLs
type JobAgeFilter struct {
	token string
	days  int
	set   bool
}

// NewJobAgeFilter creates a filter for token; "" means any
func NewJobAgeFilter(token string) *JobAgeFilter {
	if token == "" {
		token = AgeAny
	}
	days, ok := ParseAgeFilter(token)
	return &JobAgeFilter{token: token, days: days, set: ok}
}

// Token returns the configured age token
func (f *JobAgeFilter) Token() string {
	return f.token
}

// Days returns the day threshold, or false when the filter is off
func (f *JobAgeFilter) Days() (int, bool) {
	return f.days, f.set
}

// ApplyToURL sets the platform's recency parameter on url. The URL is returned
// unchanged when the filter is off, the platform is unknown, or the URL cannot
// be parsed.
func (f *JobAgeFilter) ApplyToURL(url, platform string) string {
	if !f.set {
		return url
	}

	var key, value string
	switch model.Site(strings.ToLower(platform)) {
	case model.LinkedIn:
		key, value = "f_TPR", linkedInTimeRanges[f.days]
	case model.Indeed:
		key, value = "fromage", strconv.Itoa(f.days)
	case model.Glassdoor:
		key, value = "fromAge", strconv.Itoa(f.days)
	default:
		return url
	}
	if value == "" {
		return url
	}

	out, err := helpers.SetQueryParam(url, key, value)
	if err != nil {
		return url
	}
	return out
}
