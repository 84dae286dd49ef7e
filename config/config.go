package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"sjsage522/jobaggregator/internal/collector"
	"sjsage522/jobaggregator/internal/pipeline"
	"sjsage522/jobaggregator/internal/search"
	"sjsage522/jobaggregator/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Cleaning pipeline
	Platforms        []string `validate:"min=1,dive,oneof=linkedin indeed glassdoor"`
	SearchMode       string   `validate:"oneof=exact similar"`
	JobAge           string   `validate:"oneof=any 24h 7d 14d 30d"`
	RemoveDuplicates bool
	ExcludeExpired   bool
	ExpirationDays   int `validate:"gt=0"`

	// Crawl plan
	SearchQueries     []string
	StartURLs         []string
	Location          string
	MaxPages          int     `validate:"min=1"`
	MaxItems          int     `validate:"min=1"`
	RequestsPerSecond float64 `validate:"gt=0"`
	Concurrency       int     `validate:"min=1"`
	CrawlInterval     time.Duration

	// Sink
	SinkType             string `validate:"oneof=redis postgres"`
	RedisAddr            string `validate:"required_if=SinkType redis"`
	RedisDB              int
	RedisStream          string `validate:"required_if=SinkType redis"`
	RedisStreamCount     int    `validate:"min=1"`
	RedisStreamMaxLength int64  `validate:"min=0"`
	DatabaseURL          string `validate:"required_if=SinkType postgres"`

	// Memcache address for rate-limit markers; empty keeps them in memory
	MemcacheAddr string

	// Environment
	Environment string
}

// fileConfig is the optional YAML document named by JOBAGG_CONFIG_FILE
type fileConfig struct {
	SearchQueries []string `yaml:"search_queries"`
	StartURLs     []string `yaml:"start_urls"`
	Platforms     []string `yaml:"platforms"`
	Location      string   `yaml:"location"`
}

var validate = validator.New()

// LoadConfig loads the configuration from an optional YAML file, then environment
// variables, then defaults.
func LoadConfig() (*Config, error) {
	file, err := loadFile(os.Getenv("JOBAGG_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Platforms:            listOr(getEnv("JOBAGG_PLATFORMS", ""), file.Platforms, []string{"linkedin", "indeed", "glassdoor"}),
		SearchMode:           strings.ToLower(getEnv("JOBAGG_SEARCH_MODE", "similar")),
		JobAge:               strings.ToLower(getEnv("JOBAGG_JOB_AGE", "any")),
		RemoveDuplicates:     getBool("JOBAGG_REMOVE_DUPLICATES", true),
		ExcludeExpired:       getBool("JOBAGG_EXCLUDE_EXPIRED", false),
		ExpirationDays:       getInt("JOBAGG_EXPIRATION_DAYS", 30),
		SearchQueries:        listOr(getEnv("JOBAGG_SEARCH_QUERIES", ""), file.SearchQueries, nil),
		StartURLs:            listOr(getEnv("JOBAGG_START_URLS", ""), file.StartURLs, nil),
		Location:             getEnv("JOBAGG_LOCATION", file.Location),
		MaxPages:             getInt("JOBAGG_MAX_PAGES", 5),
		MaxItems:             getInt("JOBAGG_MAX_ITEMS", 100),
		RequestsPerSecond:    getFloat("JOBAGG_REQUESTS_PER_SECOND", 1),
		Concurrency:          getInt("JOBAGG_CONCURRENCY", 3),
		CrawlInterval:        time.Duration(getInt("CRAWL_INTERVAL_SECONDS", 3600)) * time.Second,
		SinkType:             strings.ToLower(getEnv("SINK_TYPE", "redis")),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getInt("REDIS_DB", 0),
		RedisStream:          getEnv("REDIS_STREAM", "jobs"),
		RedisStreamCount:     getInt("REDIS_STREAM_COUNT", 1),
		RedisStreamMaxLength: int64(getInt("REDIS_STREAM_MAX_LENGTH", 500)),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		Environment:          getEnv("JOBAGG_ENVIRONMENT", "development"),
	}

	for i, p := range cfg.Platforms {
		cfg.Platforms[i] = strings.ToLower(p)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.NewConfiguration("invalid configuration", err)
	}
	return nil
}

// PipelineOptions projects the cleaning flags into pipeline options
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		RemoveDuplicates: c.RemoveDuplicates,
		ExcludeExpired:   c.ExcludeExpired,
		ExpirationDays:   c.ExpirationDays,
		JobAge:           c.JobAge,
	}
}

// PlanOptions projects the search settings into collector plan options
func (c *Config) PlanOptions() collector.PlanOptions {
	return collector.PlanOptions{
		SearchQueries: c.SearchQueries,
		StartURLs:     c.StartURLs,
		Location:      c.Location,
		Mode:          search.Mode(c.SearchMode),
		Platforms:     c.Platforms,
		JobAge:        c.JobAge,
	}
}

// CollectorOptions projects the crawl limits into collector options
func (c *Config) CollectorOptions() collector.Options {
	return collector.Options{
		MaxPages:          c.MaxPages,
		MaxItems:          c.MaxItems,
		RequestsPerSecond: c.RequestsPerSecond,
		Concurrency:       c.Concurrency,
	}
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, errors.NewConfiguration(fmt.Sprintf("failed to read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, errors.NewConfiguration(fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return fc, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// listOr splits a comma list from the environment, falling back to the file value and
// then the default.
func listOr(envValue string, fileValue, defaultValue []string) []string {
	if envValue != "" {
		var out []string
		for _, part := range strings.Split(envValue, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	if len(fileValue) > 0 {
		return append([]string(nil), fileValue...)
	}
	return append([]string(nil), defaultValue...)
}
