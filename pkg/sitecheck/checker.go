// Package sitecheck probes the target site before a suite run
// so browser tests fail fast with a clear reason when the site
// is unreachable.
package sitecheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"digital.vasic.storefront/pkg/logging"
)

// ErrSiteUnavailable is returned when the site does not answer
// with a success status.
var ErrSiteUnavailable = errors.New("site unavailable")

// CheckerOption configures a Checker via functional options.
type CheckerOption func(*Checker)

// Checker probes a site over HTTP. Defaults match common
// conventions so callers can use NewChecker() with zero
// options.
type Checker struct {
	httpClient *http.Client
	logger     logging.Logger
}

// NewChecker creates a site checker.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.NullLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) { c.httpClient.Timeout = d }
}

// WithClient replaces the HTTP client entirely.
func WithClient(client *http.Client) CheckerOption {
	return func(c *Checker) { c.httpClient = client }
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) CheckerOption {
	return func(c *Checker) { c.logger = logger }
}

// Check performs one GET against baseURL. Success means any
// 2xx or 3xx status.
func (c *Checker) Check(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSiteUnavailable, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: HTTP %d from %s",
			ErrSiteUnavailable, resp.StatusCode, baseURL)
	}

	c.logger.Debug("site reachable",
		logging.StringField("url", baseURL),
		logging.IntField("status", resp.StatusCode),
		logging.DurationField("latency", time.Since(start)),
	)
	return nil
}

// Wait polls baseURL at the given interval until it answers or
// ctx expires. The last probe error is wrapped in the timeout
// error.
func (c *Checker) Wait(
	ctx context.Context,
	baseURL string,
	interval time.Duration,
) error {
	var lastErr error
	for {
		if lastErr = c.Check(ctx, baseURL); lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ctx.Err(), lastErr)
		case <-time.After(interval):
		}
	}
}
