package adapter

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"sjsage522/jobaggregator/internal/model"
)

var glassdoorIDPattern = regexp.MustCompile(`jobListingId=(\d+)`)

// GlassdoorAdapter serves glassdoor.com
type GlassdoorAdapter struct {
	baseAdapter
}

// NewGlassdoorAdapter creates a new Glassdoor adapter
func NewGlassdoorAdapter(cfg Config) *GlassdoorAdapter {
	return &GlassdoorAdapter{
		baseAdapter: newBaseAdapter(SiteConfig{
			Name:          model.Glassdoor,
			Domain:        model.Glassdoor.Domain(),
			BaseURL:       "https://www.glassdoor.com",
			SearchURL:     "https://www.glassdoor.com/Job/jobs.htm",
			QueryParam:    "keyword",
			LocationParam: "location",
			PageParam:     "page",
			PageSize:      1,
			PageOffset:    1,
			CacheKey:      "glassdoor_rate_limited",
			BlockTime:     15 * time.Minute,
			Selectors: Selectors{
				JobList:  `li[data-test="jobListing"], .react-job-listing`,
				Title:    `[data-test="job-title"], .job-title`,
				Company:  `[data-test="employer-name"], .employer-name`,
				Location: `[data-test="emp-location"], .location`,
				Salary:   `[data-test="detailSalary"], .salary-estimate`,
				Rating:   ".rating",
				Link:     `a[data-test="job-link"]`,
				IDAttr:   "data-id",
			},
			IDExtractor: func(link string) string {
				return submatch(glassdoorIDPattern, link)
			},
		}, cfg),
	}
}

// NormalizeData maps a Glassdoor listing into the unified schema
func (a *GlassdoorAdapter) NormalizeData(raw RawJob) (model.Job, error) {
	if err := a.checkIdentity(raw); err != nil {
		return model.Job{}, err
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = a.idFromLink(raw.URL)
	}
	jobURL := raw.URL
	if jobURL == "" {
		jobURL = "https://www.glassdoor.com/job-listing/" + url.PathEscape(id)
	}

	job := a.normalize(raw, id, jobURL, parseThousandsSalary(raw.Salary))
	if len(raw.Benefits) > 0 {
		job.Benefits = append([]string(nil), raw.Benefits...)
	}
	if raw.CompanyRating != nil {
		rating := *raw.CompanyRating
		job.CompanyRating = &rating
	}
	return job, nil
}
