// Package fetch retrieves raw page bytes from the reference site.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// SuggestionMarker appears in the body of "did you mean" pages the site
// serves with a 404 status for malformed URLs. Such responses carry real
// content and must not be treated as failures.
const SuggestionMarker = "found at least one possible match"

// userAgent mimics a regular browser; the site rejects default Go clients.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_6) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/61.0.3163.100 Safari/537.36"

// ErrBadStatus reports a non-2xx response that is not a suggestion page.
var ErrBadStatus = errors.New("unexpected response status")

// Config defines client behavior.
type Config struct {
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
}

// DefaultConfig returns production-ready fetch configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RequestsPerSecond: 10,
	}
}

// Client is a rate-limited, retrying HTTP client.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a client with a retryable transport.
func NewClient(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = nil

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetTransport(retryClient.HTTPClient.Transport)

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		resty:   restyClient,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Get fetches a page and returns its raw bytes. A non-2xx response whose
// body contains the suggestion marker is returned as a success, since the
// suggestion page links to the record the caller actually wants.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	body := resp.Body()
	if resp.IsError() && !strings.Contains(string(body), SuggestionMarker) {
		return nil, fmt.Errorf("fetch %s: %w: %s", url, ErrBadStatus, resp.Status())
	}
	return body, nil
}
