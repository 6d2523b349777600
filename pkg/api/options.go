package api

import (
	"log/slog"
	"net/http"
	"net/url"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for every request.
// Useful for custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// requestOptions holds the per-request settings.
type requestOptions struct {
	headers http.Header
	query   url.Values
	body    any
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if key != "" {
			o.headers.Set(key, value)
		}
	}
}

// WithQuery sets a query parameter, replacing any value already present in the URL.
func WithQuery(key, value string) RequestOption {
	return func(o *requestOptions) {
		if key != "" {
			o.query.Set(key, value)
		}
	}
}

// WithJSONBody sends v encoded as JSON.
func WithJSONBody(v any) RequestOption {
	return func(o *requestOptions) {
		o.body = v
	}
}

func applyRequestOptions(opts []RequestOption) *requestOptions {
	o := &requestOptions{
		headers: make(http.Header),
		query:   make(url.Values),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// with returns a copy of opts with extra appended, leaving the caller's slice untouched.
func with(opts []RequestOption, extra ...RequestOption) []RequestOption {
	out := make([]RequestOption, 0, len(opts)+len(extra))
	out = append(out, opts...)
	return append(out, extra...)
}
