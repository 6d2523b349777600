package mdscore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"

	"github.com/mydatashare/mdscore/pkg/api"
	"github.com/mydatashare/mdscore/pkg/cache"
	"github.com/mydatashare/mdscore/pkg/config"
	"github.com/mydatashare/mdscore/pkg/logger"
	"github.com/mydatashare/mdscore/pkg/oidc"
	"github.com/mydatashare/mdscore/pkg/storage"
	"github.com/mydatashare/mdscore/pkg/store"
)

// discoveryCacheSize bounds the number of identity providers whose documents are kept.
const discoveryCacheSize = 128

// Client wires the API transport, the record store and the authorization
// state storage for one MyDataShare API.
type Client struct {
	cfg      config.Config
	logger   *slog.Logger
	api      *api.Client
	store    *store.Store
	storage  storage.Storage
	fetchAll bool
}

// New validates cfg and builds a client. Discovery documents of parsed
// identity providers are fetched in the background when
// cfg.AuthItem.BackgroundFetchOIDConfig is set, and kept for
// cfg.DiscoveryCacheTTL.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	o := &options{
		logger:   logger.Discard(),
		fetchAll: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	apiOpts := []api.Option{api.WithLogger(o.logger)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	if o.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(o.userAgent))
	}
	apiClient := api.New(cfg, apiOpts...)

	discoverer := o.discoverer
	if discoverer == nil {
		discoverer = oidc.NewHTTPDiscoverer(apiClient, o.logger)
	}
	if cfg.DiscoveryCacheTTL > 0 {
		discoverer = oidc.NewCachingDiscoverer(discoverer,
			cache.New[string, *oidc.Document](discoveryCacheSize, cfg.DiscoveryCacheTTL))
	}

	storeOpts := append([]store.Option{
		store.WithDiscoverer(discoverer),
		store.WithBackgroundDiscovery(cfg.AuthItem.BackgroundFetchOIDConfig),
		store.WithLogger(o.logger),
	}, o.storeOpts...)

	st := o.storage
	if st == nil {
		st = storage.NewMemory()
	}

	return &Client{
		cfg:      cfg,
		logger:   o.logger,
		api:      apiClient,
		store:    store.New(storeOpts...),
		storage:  st,
		fetchAll: o.fetchAll,
	}, nil
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() config.Config {
	return c.cfg
}

// API returns the transport, for requests the client does not wrap.
func (c *Client) API() *api.Client {
	return c.api
}

// Store returns the store FetchAuthItems parses into.
func (c *Client) Store() *store.Store {
	return c.store
}

// Storage returns the unprefixed authorization state backend.
func (c *Client) Storage() storage.Storage {
	return c.storage
}

// FetchAuthItems fetches the AuthItem catalogue and merges it into the store.
func (c *Client) FetchAuthItems(ctx context.Context, opts ...api.RequestOption) error {
	resp, err := c.api.FetchAuthItems(ctx, c.fetchAll, opts...)
	if err != nil {
		return errors.Join(ErrFetchAuthItems, err)
	}
	if err := c.store.ParseAPIResponse(ctx, resp); err != nil {
		return errors.Join(ErrParseAuthItems, err)
	}

	c.logger.InfoContext(ctx, "auth items loaded", logger.Count(len(c.store.AuthItems())))
	return nil
}

// Flow returns an authorization flow for a registered client. Its state is
// kept under the configured storage prefix followed by the host of
// redirectURI, so applications on different hosts can share a backend.
func (c *Client) Flow(clientID, redirectURI string, opts ...oidc.FlowOption) *oidc.Flow {
	var host string
	if u, err := url.Parse(redirectURI); err == nil {
		host = u.Host
	}

	st := storage.WithPrefix(c.storage, storage.Prefix(c.cfg.StoragePrefix, host))
	flowOpts := append([]oidc.FlowOption{
		oidc.WithHTTPClient(c.api.HTTPClient()),
		oidc.WithLogger(c.logger),
	}, opts...)

	return oidc.NewFlow(clientID, redirectURI, st, flowOpts...)
}

// Close releases the storage backend when it holds connections.
func (c *Client) Close() error {
	if closer, ok := c.storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
