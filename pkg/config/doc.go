// Package config loads mdscore configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// optional .env file is loaded once, then any struct is populated from its
// `env` tags by the generic Load. Config describes the knobs the core itself
// understands:
//
//	MDS_API_BASE_URL                          base URL, e.g. https://api.mydatashare.com
//	MDS_API_VERSION                           API version segment, default v3.0
//	MDS_STORAGE_PREFIX                        persistence namespace, default mds-core-
//	MDS_HTTP_TIMEOUT                          request timeout, default 30s
//	MDS_AUTH_ITEM_BACKGROUND_FETCH_OID_CONFIG start discovery fetches while parsing, default true
//
// # Usage
//
//	var cfg config.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	url := cfg.Endpoint("auth_items")
package config
