// Package api holds the HTTP clients for the three remote content services:
// the exercise database, the health news feed, and the nutrition lookup.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

// Default endpoints. Credentials have no defaults; they come from config.
const (
	DefaultExerciseURL  = "https://exercisedb.p.rapidapi.com/exercises"
	DefaultExerciseHost = "exercisedb.p.rapidapi.com"
	DefaultNewsURL      = "https://health-news-api.vercel.app/api/srilanka/health/news"
	DefaultNutritionURL = "https://api.api-ninjas.com/v1/nutrition"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// ErrMissingCredentials is returned before any request is made when the
// service's API key is not configured.
var ErrMissingCredentials = errors.New("api: credentials not configured")

// StatusError reports a non-2xx response.
type StatusError struct {
	Service string
	Code    int
	Status  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s: status code error: %d %s", e.Service, e.Code, e.Status)
}

// Cache stores raw response bodies by key.
type Cache interface {
	CachedResponse(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error)
	StoreResponse(ctx context.Context, key string, body []byte) error
}

// Config holds endpoints and credentials for the content services.
type Config struct {
	ExerciseURL  string
	ExerciseHost string
	ExerciseKey  string
	NewsURL      string
	NutritionURL string
	NutritionKey string
	Timeout      time.Duration
	CacheTTL     time.Duration // 0 disables the response cache
	UserAgent    string
}

// Client talks to the exercise, news and nutrition APIs.
type Client struct {
	cfg   Config
	http  *http.Client
	cache Cache
	log   zerolog.Logger
}

var (
	_ model.ExerciseSource  = (*Client)(nil)
	_ model.NewsSource      = (*Client)(nil)
	_ model.NutritionSource = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables response caching for Config.CacheTTL.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client. Empty endpoints fall back to the defaults.
func New(cfg Config, opts ...Option) *Client {
	if cfg.ExerciseURL == "" {
		cfg.ExerciseURL = DefaultExerciseURL
	}
	if cfg.ExerciseHost == "" {
		cfg.ExerciseHost = DefaultExerciseHost
	}
	if cfg.NewsURL == "" {
		cfg.NewsURL = DefaultNewsURL
	}
	if cfg.NutritionURL == "" {
		cfg.NutritionURL = DefaultNutritionURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = model.DefaultRequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "healthtoday"
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs a GET and decodes the JSON body into out. Successful
// bodies are cached under service+url when caching is enabled.
func (c *Client) getJSON(ctx context.Context, service, rawURL string, header http.Header, out any) error {
	cacheKey := service + " " + rawURL

	if c.cacheEnabled() {
		body, ok, err := c.cache.CachedResponse(ctx, cacheKey, c.cfg.CacheTTL)
		if err != nil {
			c.log.Warn().Err(err).Str("service", service).Msg("api: cache lookup failed")
		} else if ok {
			if err := json.Unmarshal(body, out); err == nil {
				c.log.Debug().Str("service", service).Str("url", rawURL).Msg("api: cache hit")
				return nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("api: %s: build request: %w", service, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w", service, err)
	}
	defer res.Body.Close()

	c.log.Debug().
		Str("service", service).
		Str("url", rawURL).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api: request")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Service: service, Code: res.StatusCode, Status: http.StatusText(res.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: %s: read body: %w", service, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: %s: decode body: %w", service, err)
	}

	if c.cacheEnabled() {
		if err := c.cache.StoreResponse(ctx, cacheKey, body); err != nil {
			c.log.Warn().Err(err).Str("service", service).Msg("api: cache store failed")
		}
	}
	return nil
}

func (c *Client) cacheEnabled() bool {
	return c.cache != nil && c.cfg.CacheTTL > 0
}
