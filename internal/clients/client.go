// internal/clients/client.go

// Package clients holds the HTTP clients for the upstream bibliographic catalogs.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"shelfkeeper/internal/apperr"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRPS       = 5
	defaultUserAgent = "shelfkeeper/1.0"
)

// httpClient is the transport shared by the catalog clients.
type httpClient struct {
	http      *http.Client
	baseURL   string
	userAgent string
	header    http.Header
	limiter   *rate.Limiter
}

// Option configures a catalog client.
type Option func(*httpClient)

// WithBaseURL points the client at another host, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.http.Timeout = d }
}

// WithRate limits outgoing requests per second.
func WithRate(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func newHTTPClient(baseURL string, opts []Option) *httpClient {
	c := &httpClient{
		http:      &http.Client{Timeout: defaultTimeout},
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		header:    make(http.Header),
		limiter:   rate.NewLimiter(rate.Limit(defaultRPS), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON fetches url into target. 404 wraps apperr.ErrNotFound; transport
// errors, other non-2xx answers and undecodable bodies wrap apperr.ErrUnavailable.
func (c *httpClient) getJSON(ctx context.Context, url, key string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w: %w", apperr.ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrUnavailable, redactURL(err, req.URL))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("isbn", key)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w: %w", apperr.ErrUnavailable, err)
	}
	return nil
}

// redactURL drops the request URL, and any credentials in its query, from a
// transport error.
func redactURL(err error, u *url.URL) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return fmt.Errorf("%s %s%s: %w", uerr.Op, u.Host, u.Path, uerr.Err)
}
