package adapter

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"sjsage522/jobaggregator/internal/model"
)

var linkedInIDPattern = regexp.MustCompile(`/jobs/view/(\d+)`)

// LinkedInAdapter serves linkedin.com
type LinkedInAdapter struct {
	baseAdapter
}

// NewLinkedInAdapter creates a new LinkedIn adapter
func NewLinkedInAdapter(cfg Config) *LinkedInAdapter {
	return &LinkedInAdapter{
		baseAdapter: newBaseAdapter(SiteConfig{
			Name:          model.LinkedIn,
			Domain:        model.LinkedIn.Domain(),
			BaseURL:       "https://www.linkedin.com",
			SearchURL:     "https://www.linkedin.com/jobs/search/",
			QueryParam:    "keywords",
			LocationParam: "location",
			PageParam:     "start",
			PageSize:      25,
			CacheKey:      "linkedin_rate_limited",
			BlockTime:     10 * time.Minute,
			Selectors: Selectors{
				JobList:     ".job-search-card, .jobs-search__results-list li",
				Title:       ".base-search-card__title, h3",
				Company:     ".base-search-card__subtitle, h4",
				Location:    ".job-search-card__location",
				Link:        `a[href*="/jobs/view/"]`,
				RequireLink: true,
			},
			IDExtractor: func(link string) string {
				return submatch(linkedInIDPattern, link)
			},
		}, cfg),
	}
}

// NormalizeData maps a LinkedIn listing into the unified schema
func (a *LinkedInAdapter) NormalizeData(raw RawJob) (model.Job, error) {
	if err := a.checkIdentity(raw); err != nil {
		return model.Job{}, err
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = a.lastPathSegment(raw.URL)
	}

	job := a.normalize(raw, id, raw.URL, parseIntegerSalary(raw.Salary))
	job.ApplicantCount = raw.ApplicantCount
	return job, nil
}

// lastPathSegment derives the ID from the final segment of the listing path
func (a *LinkedInAdapter) lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		if seg := path.Base(strings.TrimSuffix(u.Path, "/")); seg != "" && seg != "." && seg != "/" {
			return seg
		}
	}
	return a.generatedID()
}
