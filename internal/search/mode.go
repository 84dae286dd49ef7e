package search

import (
	"strings"

	"sjsage522/jobaggregator/helpers"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/pkg/errors"
)

// Mode selects exact-phrase or similar matching of search keywords
type Mode string

const (
	Exact   Mode = "exact"
	Similar Mode = "similar"
)

// PlatformQuery is the platform-specific shape of a keyword search
type PlatformQuery struct {
	// Param is the query parameter carrying Keywords
	Param    string
	Keywords string
	// ExactMatch is reported by platforms that flag exact searches; nil elsewhere
	ExactMatch *bool
	// ExactPhrase is set by platforms with a dedicated exact-phrase parameter
	ExactPhrase string
}

// Apply sets the query's parameters on rawURL, leaving every other parameter alone
func (q PlatformQuery) Apply(rawURL string) (string, error) {
	out, err := helpers.SetQueryParam(rawURL, q.Param, q.Keywords)
	if err != nil {
		return "", err
	}
	if q.ExactPhrase != "" {
		return helpers.SetQueryParam(out, "exactphrase", q.ExactPhrase)
	}
	return out, nil
}

// BuildSearchQuery quotes keywords in exact mode and passes them through otherwise
func BuildSearchQuery(keywords string, mode Mode) string {
	if mode == Exact {
		return `"` + keywords + `"`
	}
	return keywords
}

var handlers = map[model.Site]func(keywords string, mode Mode) PlatformQuery{
	model.LinkedIn: func(keywords string, mode Mode) PlatformQuery {
		exact := mode == Exact
		return PlatformQuery{Param: "keywords", Keywords: BuildSearchQuery(keywords, mode), ExactMatch: &exact}
	},
	model.Indeed: func(keywords string, mode Mode) PlatformQuery {
		q := PlatformQuery{Param: "q", Keywords: keywords}
		if mode == Exact {
			q.ExactPhrase = keywords
		}
		return q
	},
	model.Glassdoor: func(keywords string, mode Mode) PlatformQuery {
		exact := mode == Exact
		return PlatformQuery{Param: "keyword", Keywords: BuildSearchQuery(keywords, mode), ExactMatch: &exact}
	},
}

// AdaptForPlatform converts keywords and mode into the platform's query shape.
// An unknown platform is an unsupported_platform error.
func AdaptForPlatform(keywords string, mode Mode, platform string) (PlatformQuery, error) {
	handler, ok := handlers[model.Site(strings.ToLower(platform))]
	if !ok {
		return PlatformQuery{}, errors.NewUnsupportedPlatform(platform)
	}
	return handler(keywords, mode), nil
}
