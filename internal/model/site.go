package model

import "strings"

// Site is the key of a supported job board
type Site string

const (
	LinkedIn  Site = "linkedin"
	Indeed    Site = "indeed"
	Glassdoor Site = "glassdoor"
)

var domains = map[Site]string{
	LinkedIn:  "linkedin.com",
	Indeed:    "indeed.com",
	Glassdoor: "glassdoor.com",
}

// Sites returns the supported sites in declared order
func Sites() []Site {
	return []Site{LinkedIn, Indeed, Glassdoor}
}

// SiteNames returns the supported site keys in declared order
func SiteNames() []string {
	sites := Sites()
	names := make([]string, len(sites))
	for i, s := range sites {
		names[i] = string(s)
	}
	return names
}

// Domain returns the registrable domain of the site
func (s Site) Domain() string {
	return domains[s]
}

func (s Site) String() string {
	return string(s)
}

// ParseSite matches a literal site key, case-insensitively
func ParseSite(name string) (Site, bool) {
	lower := strings.ToLower(name)
	for _, s := range Sites() {
		if lower == string(s) {
			return s, true
		}
	}
	return "", false
}

// SiteForText returns the first site, in declared order, whose domain occurs in
// text case-insensitively. text is usually a host or a full URL.
func SiteForText(text string) (Site, bool) {
	lower := strings.ToLower(text)
	for _, s := range Sites() {
		if strings.Contains(lower, s.Domain()) {
			return s, true
		}
	}
	return "", false
}
