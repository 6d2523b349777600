package mdscore

import (
	"log/slog"
	"net/http"

	"github.com/mydatashare/mdscore/pkg/oidc"
	"github.com/mydatashare/mdscore/pkg/storage"
	"github.com/mydatashare/mdscore/pkg/store"
)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
	userAgent  string
	storage    storage.Storage
	discoverer oidc.Discoverer
	storeOpts  []store.Option
	fetchAll   bool
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger shared by every component. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient sets the HTTP client for API, discovery and token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header of API and discovery requests.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithStorage sets the backend that keeps authorization state between the
// redirect and the callback. Flows prefix their keys, so one backend can be
// shared by several clients. The default is an in-memory storage.
func WithStorage(s storage.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithDiscoverer replaces the HTTP discoverer of identity provider documents.
func WithDiscoverer(d oidc.Discoverer) Option {
	return func(o *options) {
		o.discoverer = d
	}
}

// WithStoreOptions passes extra options to the store, applied after the
// ones derived from the configuration.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

// WithFetchAllPages controls whether FetchAuthItems follows next_offset.
// Enabled by default.
func WithFetchAllPages(enabled bool) Option {
	return func(o *options) {
		o.fetchAll = enabled
	}
}
