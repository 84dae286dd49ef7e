package adapter

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/jobaggregator/internal/model"
)

// RawJob is a listing as extracted from a page, before normalization
type RawJob struct {
	ID             string
	URL            string
	Title          string
	Company        string
	Location       string
	Salary         string
	Description    string
	JobType        string
	PostedDate     string
	Benefits       []string
	ApplicantCount *int
	CompanyRating  *float64
	CompanyLogo    string
}

// Adapter is the per-site strategy for URL construction, extraction and
// normalization. The set of implementations is closed: see CreateAdapter.
type Adapter interface {
	// Site returns the site key the adapter serves
	Site() model.Site

	// IsValidURL reports whether the URL belongs to the site
	IsValidURL(rawURL string) bool

	// BuildSearchURL encodes query, location and page in the site's pagination unit
	BuildSearchURL(query, location string, page int) string

	// BuildPageURL rewrites only the pagination parameter of baseURL
	BuildPageURL(baseURL string, page int) (string, error)

	// NormalizeData maps a raw listing into the unified schema
	NormalizeData(raw RawJob) (model.Job, error)

	// Extract returns the listings found on a fetched page
	Extract(doc *goquery.Document) []RawJob

	// SiteConfig returns the static configuration of the site
	SiteConfig() SiteConfig

	sealed()
}

// IDExtractorFunc extracts a listing ID from a listing link
type IDExtractorFunc func(link string) string

// Selectors contains CSS selectors for listing cards on a search page
type Selectors struct {
	JobList  string
	Title    string
	Company  string
	Location string
	Salary   string
	Rating   string
	Link     string
	// IDAttr is the card attribute holding the listing ID when the link has none
	IDAttr string
	// RequireLink drops cards without a link
	RequireLink bool
}

// SiteConfig contains the static configuration of a site adapter
type SiteConfig struct {
	Name          model.Site
	Domain        string
	BaseURL       string
	SearchURL     string
	QueryParam    string
	LocationParam string
	PageParam     string
	// page value = page*PageSize + PageOffset
	PageSize    int
	PageOffset  int
	CacheKey    string
	BlockTime   time.Duration
	Selectors   Selectors
	IDExtractor IDExtractorFunc
}

// Config carries the runtime dependencies of an adapter
type Config struct {
	// Clock returns the scrape time; time.Now when nil
	Clock func() time.Time
}

func (c Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}
