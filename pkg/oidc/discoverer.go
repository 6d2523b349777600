package oidc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mydatashare/mdscore/pkg/api"
	"github.com/mydatashare/mdscore/pkg/cache"
	"github.com/mydatashare/mdscore/pkg/logger"
)

// Discoverer fetches discovery documents.
type Discoverer interface {
	Discover(ctx context.Context, discoveryURL string) (*Document, error)
}

// DiscovererFunc adapts a function to Discoverer.
type DiscovererFunc func(ctx context.Context, discoveryURL string) (*Document, error)

// Discover calls f(ctx, discoveryURL).
func (f DiscovererFunc) Discover(ctx context.Context, discoveryURL string) (*Document, error) {
	return f(ctx, discoveryURL)
}

// HTTPDiscoverer fetches documents from the issuer's well-known endpoint.
type HTTPDiscoverer struct {
	client *api.Client
	logger *slog.Logger
}

// NewHTTPDiscoverer returns a Discoverer using the api transport.
func NewHTTPDiscoverer(client *api.Client, log *slog.Logger) *HTTPDiscoverer {
	if log == nil {
		log = logger.Discard()
	}
	return &HTTPDiscoverer{client: client, logger: log.With(logger.Component("oidc"))}
}

// Discover accepts either the issuer URL or the full discovery URL.
func (d *HTTPDiscoverer) Discover(ctx context.Context, discoveryURL string) (*Document, error) {
	if discoveryURL == "" {
		return nil, ErrNoDiscoveryURL
	}

	target := strings.TrimRight(IssuerBaseURL(discoveryURL), "/") + WellKnownPath

	var doc Document
	if err := d.client.DecodeJSON(ctx, http.MethodGet, target, &doc); err != nil {
		d.logger.WarnContext(ctx, "discovery fetch failed", logger.URL(target), logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDiscoveryFailed, err)
	}
	if err := doc.Validate(); err != nil {
		d.logger.WarnContext(ctx, "invalid discovery document", logger.URL(target), logger.Error(err))
		return nil, err
	}

	d.logger.DebugContext(ctx, "discovery document fetched", logger.URL(target))
	return &doc, nil
}

// CachingDiscoverer keeps the documents another Discoverer fetched, keyed by
// issuer, so that AuthItems parsed from later responses skip the fetch.
// Failures are not cached.
type CachingDiscoverer struct {
	next  Discoverer
	cache *cache.LRU[string, *Document]
}

// NewCachingDiscoverer wraps next with cache.
func NewCachingDiscoverer(next Discoverer, c *cache.LRU[string, *Document]) *CachingDiscoverer {
	return &CachingDiscoverer{next: next, cache: c}
}

// Discover returns a copy of the cached document for the issuer of
// discoveryURL, fetching it from the wrapped discoverer on a miss. Failed
// fetches are not cached.
func (d *CachingDiscoverer) Discover(ctx context.Context, discoveryURL string) (*Document, error) {
	key := strings.TrimRight(IssuerBaseURL(discoveryURL), "/")
	if doc, ok := d.cache.Get(key); ok {
		cp := *doc
		return &cp, nil
	}

	doc, err := d.next.Discover(ctx, discoveryURL)
	if err != nil {
		return nil, err
	}
	cp := *doc
	d.cache.Put(key, &cp)
	return doc, nil
}
