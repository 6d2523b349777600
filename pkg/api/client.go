package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mydatashare/mdscore/pkg/config"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
	"github.com/mydatashare/mdscore/pkg/logger"
)

const (
	defaultUserAgent = "mdscore/1.0"
	// errorBodyLimit caps how much of a failed response body ends up in a StatusError.
	errorBodyLimit = 512
)

// Client talks to the MyDataShare API and to identity provider discovery endpoints.
// Zero value is not usable; use New to create instances.
type Client struct {
	cfg       config.Config
	http      *http.Client
	logger    *slog.Logger
	userAgent string
}

// New creates a client for the API described by cfg. The default HTTP client
// uses cfg.HTTPTimeout as its per-request timeout.
func New(cfg config.Config, opts ...Option) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger.Discard(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("api"))
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() config.Config {
	return c.cfg
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// FetchJSON performs a request and decodes the response body as a JSON object.
// Non-2xx responses fail with a *StatusError.
func (c *Client) FetchJSON(ctx context.Context, method, rawURL string, opts ...RequestOption) (jsonmap.Map, error) {
	var out jsonmap.Map
	if err := c.DecodeJSON(ctx, method, rawURL, &out, opts...); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidResponse, method, rawURL)
	}
	return out, nil
}

// DecodeJSON performs a request and decodes the JSON response body into dst.
func (c *Client) DecodeJSON(ctx context.Context, method, rawURL string, dst any, opts ...RequestOption) error {
	req, err := c.newRequest(ctx, method, rawURL, applyRequestOptions(opts))
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", logger.URL(req.URL.String()), logger.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, req.URL.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "api request",
		slog.String("method", method),
		logger.URL(req.URL.String()),
		logger.StatusCode(resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{
			Method:     method,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(strings.ReplaceAll(string(body), "\n", " ")),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidResponse, method, req.URL.Redacted(), err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, o *requestOptions) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if len(o.query) > 0 {
		q := u.Query()
		for k, v := range o.query {
			q[k] = v
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if o.body != nil {
		payload, err := json.Marshal(o.body)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal body: %w", ErrRequestFailed, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range o.headers {
		req.Header[k] = v
	}
	return req, nil
}
