package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/jobaggregator/helpers"
	"sjsage522/jobaggregator/internal/collector"
	"sjsage522/jobaggregator/internal/model"
	"sjsage522/jobaggregator/internal/pipeline"
	"sjsage522/jobaggregator/services/cache"
	"sjsage522/jobaggregator/services/publisher"
	"sjsage522/jobaggregator/services/worker"
)

const linkedInHTML = `
<!DOCTYPE html>
<html>
<body>
    <ul class="jobs-search__results-list">
        <li>
            <h3 class="base-search-card__title">Go Engineer</h3>
            <h4 class="base-search-card__subtitle">Acme Inc.</h4>
            <span class="job-search-card__location">Austin, TX</span>
            <a href="https://www.linkedin.com/jobs/view/100?trk=serp">View</a>
        </li>
        <li>
            <h3 class="base-search-card__title">Data Engineer</h3>
            <h4 class="base-search-card__subtitle">Globex</h4>
            <span class="job-search-card__location">Remote</span>
            <a href="/jobs/view/101">View</a>
        </li>
    </ul>
</body>
</html>
`

const indeedHTML = `
<!DOCTYPE html>
<html>
<body>
    <div class="job_seen_beacon" data-jk="abc">
        <h2 class="jobTitle"><a href="/rc/clk?jk=abc"><span>Go  Engineer</span></a></h2>
        <span class="companyName">Acme</span>
        <div class="companyLocation">Austin, TX</div>
        <div class="salary-snippet">$60 - $75 an hour</div>
    </div>
</body>
</html>
`

// siteServer serves canned search pages; the real listing URL travels in the u parameter
type siteServer struct {
	*httptest.Server
	mu      sync.Mutex
	fetched []string
}

func newSiteServer(t *testing.T) *siteServer {
	s := &siteServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("u")
		s.mu.Lock()
		s.fetched = append(s.fetched, target)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch {
		case strings.Contains(target, "linkedin.com") && strings.Contains(target, "start=0"):
			_, _ = io.WriteString(w, linkedInHTML)
		case strings.Contains(target, "indeed.com") && strings.Contains(target, "start=0"):
			_, _ = io.WriteString(w, indeedHTML)
		case strings.Contains(target, "glassdoor.com"):
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = io.WriteString(w, "<html><body></body></html>")
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *siteServer) fetcher() collector.Fetcher {
	return collector.FetcherFunc(func(ctx context.Context, target string) (io.Reader, error) {
		return helpers.FetchWithRandomHeaders(ctx, s.URL+"/?u="+url.QueryEscape(target))
	})
}

func TestEndToEnd(t *testing.T) {
	server := newSiteServer(t)
	rateLimits := cache.NewMemoryService()

	var out bytes.Buffer
	w := worker.NewWorker(
		collector.PlanOptions{SearchQueries: []string{"golang"}, JobAge: "7d"},
		collector.New(collector.Options{MaxPages: 2, MaxItems: 50, Concurrency: 3}, server.fetcher(), rateLimits),
		pipeline.New(pipeline.DefaultOptions(), nil),
		publisher.NewWriterPublisher(&out),
	)

	result, err := w.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Requests)
	assert.Equal(t, 3, result.Collected)
	assert.Equal(t, 1, result.Stats.Duplicates)
	assert.Equal(t, 2, result.Stats.Delivered)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first, second model.Job
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "100", first.ID)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/100?trk=serp", first.URL)
	assert.Equal(t, []string{"linkedin", "indeed"}, first.Sources)
	assert.NotEmpty(t, first.Fingerprint)
	require.NotNil(t, first.AgeInDays)
	assert.Equal(t, 0, *first.AgeInDays)

	assert.Equal(t, "101", second.ID)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/101", second.URL)

	// The 429 from glassdoor left a block marker
	assert.True(t, cache.IsBlocked(rateLimits, "glassdoor_rate_limited"))

	// The age filter reached every search URL
	server.mu.Lock()
	defer server.mu.Unlock()
	for _, fetched := range server.fetched {
		hasAge := strings.Contains(fetched, "f_TPR=r604800") ||
			strings.Contains(fetched, "fromage=7") ||
			strings.Contains(fetched, "fromAge=7")
		assert.True(t, hasAge, fetched)
	}
}

func TestURLsCommand(t *testing.T) {
	t.Setenv("JOBAGG_SEARCH_QUERIES", "site reliability")
	t.Setenv("JOBAGG_PLATFORMS", "indeed")
	t.Setenv("JOBAGG_SEARCH_MODE", "exact")
	t.Setenv("JOBAGG_JOB_AGE", "24h")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"urls"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t,
		"https://www.indeed.com/jobs?q=site+reliability&l=&start=0&exactphrase=site+reliability&fromage=1\n",
		out.String())
}

func TestURLsCommand_InvalidConfig(t *testing.T) {
	t.Setenv("JOBAGG_JOB_AGE", "3d")

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"urls"})
	assert.Error(t, rootCmd.Execute())
}
