package adapter

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"sjsage522/jobaggregator/internal/model"
)

var indeedIDPattern = regexp.MustCompile(`jk=([^&]+)`)

// IndeedAdapter serves indeed.com
type IndeedAdapter struct {
	baseAdapter
}

// NewIndeedAdapter creates a new Indeed adapter
func NewIndeedAdapter(cfg Config) *IndeedAdapter {
	return &IndeedAdapter{
		baseAdapter: newBaseAdapter(SiteConfig{
			Name:          model.Indeed,
			Domain:        model.Indeed.Domain(),
			BaseURL:       "https://www.indeed.com",
			SearchURL:     "https://www.indeed.com/jobs",
			QueryParam:    "q",
			LocationParam: "l",
			PageParam:     "start",
			PageSize:      10,
			CacheKey:      "indeed_rate_limited",
			BlockTime:     10 * time.Minute,
			Selectors: Selectors{
				JobList:  ".job_seen_beacon, .jobsearch-ResultsList > li",
				Title:    "h2.jobTitle a, .jobTitle span",
				Company:  ".companyName",
				Location: ".companyLocation",
				Salary:   ".salary-snippet",
				Link:     "h2.jobTitle a",
				IDAttr:   "data-jk",
			},
			IDExtractor: func(link string) string {
				return submatch(indeedIDPattern, link)
			},
		}, cfg),
	}
}

// NormalizeData maps an Indeed listing into the unified schema
func (a *IndeedAdapter) NormalizeData(raw RawJob) (model.Job, error) {
	if err := a.checkIdentity(raw); err != nil {
		return model.Job{}, err
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = a.idFromLink(raw.URL)
	}
	jobURL := raw.URL
	if jobURL == "" {
		jobURL = "https://www.indeed.com/viewjob?jk=" + url.QueryEscape(id)
	}

	job := a.normalize(raw, id, jobURL, parseDecimalSalary(raw.Salary))
	job.JobType = normalizeJobType(raw.JobType)
	return job, nil
}

// normalizeJobType maps free text onto full-time, part-time, contract or internship
func normalizeJobType(text string) *string {
	lower := strings.ToLower(text)
	var jobType string
	switch {
	case lower == "":
		return nil
	case strings.Contains(lower, "full"):
		jobType = "full-time"
	case strings.Contains(lower, "part"):
		jobType = "part-time"
	case strings.Contains(lower, "contract"):
		jobType = "contract"
	case strings.Contains(lower, "intern"):
		jobType = "internship"
	default:
		return nil
	}
	return &jobType
}
