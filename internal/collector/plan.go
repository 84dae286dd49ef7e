package collector

import (
	"sjsage522/jobaggregator/internal/adapter"
	"sjsage522/jobaggregator/internal/filter"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/internal/search"
	"sjsage522/jobaggregator/logger"
)

// Request is one listing page URL to crawl, with the site that serves it
type Request struct {
	URL  string
	Site model.Site
}

// PlanOptions describes what to search for
type PlanOptions struct {
	SearchQueries []string
	StartURLs     []string
	Location      string
	Mode          search.Mode
	Platforms     []string
	JobAge        string
}

// Plan builds the crawl requests: start URLs first, then one search URL per query
// and supported site. Every URL goes through the platform filter and then gets
// the job age parameter of its platform. Repeated URLs are planned once.
func Plan(opts PlanOptions) []Request {
	log := logger.ForCollector()

	urls := append([]string(nil), opts.StartURLs...)
	for _, query := range opts.SearchQueries {
		for _, a := range adapter.CreateAdapters(adapter.Config{}) {
			q, err := search.AdaptForPlatform(query, opts.Mode, string(a.Site()))
			if err != nil {
				log.Warn().Err(err).Str("site", string(a.Site())).Msg("Skipping search URL")
				continue
			}
			searchURL, err := q.Apply(a.BuildSearchURL(query, opts.Location, 0))
			if err != nil {
				log.Warn().Err(err).Str("site", string(a.Site())).Msg("Skipping search URL")
				continue
			}
			urls = append(urls, searchURL)
		}
	}

	platforms := filter.NewPlatformFilter(opts.Platforms)
	age := filter.NewJobAgeFilter(opts.JobAge)

	seen := make(map[string]bool)
	var requests []Request
	for _, u := range platforms.FilterURLs(urls) {
		platform := platforms.DetectPlatform(u)
		u = age.ApplyToURL(u, platform)
		if seen[u] {
			continue
		}
		seen[u] = true
		requests = append(requests, Request{URL: u, Site: model.Site(platform)})
	}

	log.Debug().Int("requests", len(requests)).Int("candidates", len(urls)).Msg("Crawl planned")
	return requests
}

// URLs returns the URL of every request, in order
func URLs(requests []Request) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.URL
	}
	return out
}
