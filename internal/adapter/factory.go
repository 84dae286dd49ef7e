package adapter

import (
	"net/url"
	"strings"

	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/pkg/errors"
)

// registry maps every supported site to its adapter constructor
var registry = map[model.Site]func(Config) Adapter{
	model.LinkedIn:  func(cfg Config) Adapter { return NewLinkedInAdapter(cfg) },
	model.Indeed:    func(cfg Config) Adapter { return NewIndeedAdapter(cfg) },
	model.Glassdoor: func(cfg Config) Adapter { return NewGlassdoorAdapter(cfg) },
}

// CreateAdapter returns the adapter for a site key or a listing/search URL
func CreateAdapter(nameOrURL string, cfg Config) (Adapter, error) {
	site, err := ResolveSite(nameOrURL)
	if err != nil {
		return nil, err
	}
	return registry[site](cfg), nil
}

// CreateAdapters returns one adapter per supported site, in declared order
func CreateAdapters(cfg Config) []Adapter {
	adapters := make([]Adapter, 0, len(registry))
	for _, site := range model.Sites() {
		adapters = append(adapters, registry[site](cfg))
	}
	return adapters
}

// ResolveSite maps a site key or URL onto a supported site.
//
// Input starting with http:// or https:// is parsed and its host matched against
// each site domain in declared order. Anything else is a literal site key.
func ResolveSite(nameOrURL string) (model.Site, error) {
	if nameOrURL == "" {
		return "", errors.NewInvalidInput(nameOrURL)
	}

	lower := strings.ToLower(nameOrURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(nameOrURL)
		if err != nil || u.Hostname() == "" {
			return "", errors.NewInvalidInput(nameOrURL)
		}
		host := strings.ToLower(u.Hostname())
		if site, ok := model.SiteForText(host); ok {
			return site, nil
		}
		return "", errors.NewUnknownSite(host)
	}

	if site, ok := model.ParseSite(nameOrURL); ok {
		return site, nil
	}
	return "", errors.NewUnknownSite(nameOrURL)
}

// SupportedSites returns the supported site keys in declared order
func SupportedSites() []string {
	return model.SiteNames()
}

// IsSiteSupported reports whether nameOrURL resolves to a supported site
func IsSiteSupported(nameOrURL string) bool {
	_, err := ResolveSite(nameOrURL)
	return err == nil
}
