package adapter

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sjsage522/jobaggregator/helpers"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/pkg/errors"
)

// notSpecified is the location of a listing that carries none
const notSpecified = "Not specified"

// baseAdapter provides common functionality for all site adapters
type baseAdapter struct {
	config SiteConfig
	clock  Config
	log    *logger.Logger
}

func newBaseAdapter(config SiteConfig, cfg Config) baseAdapter {
	return baseAdapter{
		config: config,
		clock:  cfg,
		log:    logger.ForAdapter(string(config.Name)),
	}
}

func (b *baseAdapter) sealed() {}

// Site returns the site key
func (b *baseAdapter) Site() model.Site {
	return b.config.Name
}

// SiteConfig returns the static configuration of the site
func (b *baseAdapter) SiteConfig() SiteConfig {
	return b.config
}

// IsValidURL reports whether the site domain occurs in the URL
func (b *baseAdapter) IsValidURL(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), b.config.Domain)
}

func (b *baseAdapter) pageValue(page int) string {
	return strconv.Itoa(page*b.config.PageSize + b.config.PageOffset)
}

// BuildSearchURL builds the search URL for query and location at page
func (b *baseAdapter) BuildSearchURL(query, location string, page int) string {
	return b.config.SearchURL + "?" + helpers.EncodeQuery(
		[2]string{b.config.QueryParam, query},
		[2]string{b.config.LocationParam, location},
		[2]string{b.config.PageParam, b.pageValue(page)},
	)
}

// BuildPageURL sets the pagination parameter of baseURL to page
func (b *baseAdapter) BuildPageURL(baseURL string, page int) (string, error) {
	pageURL, err := helpers.SetQueryParam(baseURL, b.config.PageParam, b.pageValue(page))
	if err != nil {
		return "", errors.NewParsing(string(b.config.Name), "failed to build page URL", err)
	}
	return pageURL, nil
}

// ResolveURL resolves a possibly relative link against the site base URL
func (b *baseAdapter) ResolveURL(link string) string {
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	base, err := url.Parse(b.config.BaseURL)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}

// checkIdentity fails when the listing carries neither URL nor ID
func (b *baseAdapter) checkIdentity(raw RawJob) error {
	if strings.TrimSpace(raw.ID) == "" && strings.TrimSpace(raw.URL) == "" {
		return errors.New(errors.ErrorTypeInvalidInput, string(b.config.Name), "listing has neither URL nor ID", nil)
	}
	return nil
}

// generatedID is the ID of last resort
func (b *baseAdapter) generatedID() string {
	id := fmt.Sprintf("%s-%d", b.config.Name, b.clock.now().UnixMilli())
	b.log.Debug().Str("id", id).Msg("Generated listing ID")
	return id
}

// idFromLink applies the site ID extractor to link, falling back to a generated ID
func (b *baseAdapter) idFromLink(link string) string {
	if b.config.IDExtractor != nil {
		if id := b.config.IDExtractor(link); id != "" {
			return id
		}
	}
	return b.generatedID()
}

// normalize fills the fields every site populates the same way
func (b *baseAdapter) normalize(raw RawJob, id, jobURL string, salary model.Salary) model.Job {
	now := b.clock.now().UTC().Format(time.RFC3339)

	location := strings.TrimSpace(raw.Location)
	if location == "" {
		location = notSpecified
	}
	posted := strings.TrimSpace(raw.PostedDate)
	if posted == "" {
		posted = now
	}

	job := model.Job{
		ID:           id,
		URL:          jobURL,
		Source:       string(b.config.Name),
		Title:        raw.Title,
		Company:      raw.Company,
		Location:     location,
		Salary:       salary,
		Description:  raw.Description,
		Requirements: []string{},
		Benefits:     []string{},
		PostedDate:   posted,
		ScrapedAt:    now,
		Site:         string(b.config.Name),
	}
	if raw.CompanyLogo != "" {
		logo := raw.CompanyLogo
		job.CompanyLogo = &logo
	}
	return job
}

// submatch returns the first capture group of re in s, or ""
func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
