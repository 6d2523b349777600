package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIVersion is the MyDataShare API version used when none is configured.
const DefaultAPIVersion = "v3.0"

// Config holds the externally tunable knobs of the core.
type Config struct {
	// APIBaseURL is the base URL of the MyDataShare API without the version
	// prefix, for example "https://api.mydatashare.com".
	APIBaseURL string `env:"MDS_API_BASE_URL"`
	// APIVersion is the API version segment of endpoint URLs.
	APIVersion string `env:"MDS_API_VERSION" envDefault:"v3.0"`
	// StoragePrefix namespaces persisted values of co-hosted applications.
	StoragePrefix string `env:"MDS_STORAGE_PREFIX" envDefault:"mds-core-"`
	// HTTPTimeout bounds every API and discovery request.
	HTTPTimeout time.Duration `env:"MDS_HTTP_TIMEOUT" envDefault:"30s"`
	// DiscoveryCacheTTL keeps fetched discovery documents for reuse by later
	// parses. Zero disables the cache.
	DiscoveryCacheTTL time.Duration `env:"MDS_DISCOVERY_CACHE_TTL" envDefault:"1h"`

	AuthItem AuthItemConfig `envPrefix:"MDS_AUTH_ITEM_"`
}

// AuthItemConfig configures AuthItem parsing.
type AuthItemConfig struct {
	// BackgroundFetchOIDConfig starts the OpenID discovery document fetch for
	// every IdProvider found while parsing a response.
	BackgroundFetchOIDConfig bool `env:"BACKGROUND_FETCH_OID_CONFIG" envDefault:"true"`
}

// Default returns the configuration used when nothing is set in the environment.
func Default() Config {
	return Config{
		APIVersion:        DefaultAPIVersion,
		StoragePrefix:     "mds-core-",
		HTTPTimeout:       30 * time.Second,
		DiscoveryCacheTTL: time.Hour,
		AuthItem:          AuthItemConfig{BackgroundFetchOIDConfig: true},
	}
}

// Validate reports configuration that cannot produce endpoint URLs.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBaseURL, c.APIBaseURL)
	}
	if c.APIVersion == "" {
		return ErrMissingAPIVersion
	}
	return nil
}

// Endpoint returns the public endpoint URL of the given resource,
// e.g. "https://api.mydatashare.com/public/v3.0/auth_items".
func (c Config) Endpoint(resource string) string {
	base := strings.TrimRight(c.APIBaseURL, "/")
	return fmt.Sprintf("%s/public/%s/%s", base, c.APIVersion, strings.TrimLeft(resource, "/"))
}
