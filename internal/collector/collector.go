package collector

import (
	"context"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"sjsage522/jobaggregator/helpers"
	"sjsage522/jobaggregator/internal/adapter"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/internal/schema"
	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/pkg/errors"
	"sjsage522/jobaggregator/services/cache"
)

// Fetcher retrieves a page body
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.Reader, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, url string) (io.Reader, error)

// Fetch calls f(ctx, url)
func (f FetcherFunc) Fetch(ctx context.Context, url string) (io.Reader, error) {
	return f(ctx, url)
}

// Options controls crawl limits
type Options struct {
	MaxPages          int
	MaxItems          int
	RequestsPerSecond float64
	Concurrency       int
	// Clock stamps scraped jobs; time.Now when nil
	Clock func() time.Time
}

// Collector fetches planned pages and turns them into validated jobs
type Collector struct {
	opts     Options
	fetcher  Fetcher
	cache    cache.CacheService
	adapters map[model.Site]adapter.Adapter
	limiters map[model.Site]*rate.Limiter
	log      *logger.Logger
}

// New creates a collector. A nil fetcher uses helpers.FetchWithRandomHeaders;
// a nil cache disables rate-limit markers.
func New(opts Options, fetcher Fetcher, cacheSvc cache.CacheService) *Collector {
	if opts.MaxPages < 1 {
		opts.MaxPages = 1
	}
	if opts.MaxItems < 1 {
		opts.MaxItems = 100
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if fetcher == nil {
		fetcher = FetcherFunc(helpers.FetchWithRandomHeaders)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	c := &Collector{
		opts:     opts,
		fetcher:  fetcher,
		cache:    cacheSvc,
		adapters: make(map[model.Site]adapter.Adapter),
		limiters: make(map[model.Site]*rate.Limiter),
		log:      logger.ForCollector(),
	}
	for _, a := range adapter.CreateAdapters(adapter.Config{Clock: opts.Clock}) {
		c.adapters[a.Site()] = a
		c.limiters[a.Site()] = rate.NewLimiter(limit, 1)
	}
	return c
}

// Collect crawls every request, following pagination, and returns the jobs in
// request, page and card order, capped at MaxItems. Failed pages are logged
// and skipped; only cancellation is returned as an error.
func (c *Collector) Collect(ctx context.Context, requests []Request) ([]model.Job, error) {
	results := make([][]model.Job, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, req := range requests {
		g.Go(func() error {
			results[i] = c.collectRequest(gctx, req)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var jobs []model.Job
	for _, r := range results {
		jobs = append(jobs, r...)
	}
	if len(jobs) > c.opts.MaxItems {
		jobs = jobs[:c.opts.MaxItems]
	}

	c.log.Info().Int("requests", len(requests)).Int("jobs", len(jobs)).Msg("Collection finished")
	return jobs, nil
}

func (c *Collector) collectRequest(ctx context.Context, req Request) []model.Job {
	a, ok := c.adapters[req.Site]
	if !ok {
		c.log.Warn().Str("url", req.URL).Msg("No adapter for request")
		return nil
	}
	log := logger.ForAdapter(string(req.Site))

	var jobs []model.Job
	for page := 0; page < c.opts.MaxPages; page++ {
		pageURL := req.URL
		if page > 0 {
			var err error
			if pageURL, err = a.BuildPageURL(req.URL, page); err != nil {
				log.Warn().Err(err).Msg("Stopping pagination")
				break
			}
		}

		found, cards, err := c.collectPage(ctx, a, pageURL)
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("Page skipped")
			break
		}
		jobs = append(jobs, found...)
		log.Debug().Str("url", pageURL).Int("cards", cards).Int("jobs", len(found)).Msg("Page collected")

		if cards == 0 || len(jobs) >= c.opts.MaxItems {
			break
		}
	}
	return jobs
}

// collectPage returns the valid jobs on a page and the number of cards extracted
func (c *Collector) collectPage(ctx context.Context, a adapter.Adapter, pageURL string) ([]model.Job, int, error) {
	site := a.SiteConfig()

	if cache.IsBlocked(c.cache, site.CacheKey) {
		return nil, 0, errors.NewRateLimit(string(site.Name), site.BlockTime)
	}

	if err := c.limiters[site.Name].Wait(ctx); err != nil {
		return nil, 0, err
	}

	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeRateLimit) {
			if cacheErr := cache.Block(c.cache, site.CacheKey, site.BlockTime); cacheErr != nil {
				logger.LogError("cache", cacheErr, "%s stays unblocked", site.Name)
			}
		}
		return nil, 0, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, 0, errors.NewParsing(string(site.Name), "failed to parse HTML", err)
	}

	raws := a.Extract(doc)
	jobs := make([]model.Job, 0, len(raws))
	for _, raw := range raws {
		job, err := a.NormalizeData(raw)
		if err != nil {
			c.log.Debug().Err(err).Str("title", raw.Title).Msg("Listing dropped")
			continue
		}
		if err := validate(site.Name, job); err != nil {
			c.log.Warn().Err(err).Str("id", job.ID).Msg("Listing dropped")
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, len(raws), nil
}

// validate checks a normalized job against the listing schema
func validate(site model.Site, job model.Job) error {
	if err := schema.ValidateJob(job); err != nil {
		return errors.NewValidation(string(site), "listing does not match schema", err)
	}
	return nil
}
