package store

import (
	"fmt"
	"net/url"

	"github.com/mydatashare/mdscore/pkg/oidc"
)

// AuthItem field names.
const (
	FieldIDProviderUUID = "id_provider_uuid"
	FieldAuthParams     = "auth_params"
)

// AuthItem is a way of authenticating: an identity provider plus the
// parameters to send with the authorization request.
type AuthItem struct {
	*Record

	discovery *oidc.Discovery
}

var _ oidc.Provider = (*AuthItem)(nil)

// NewAuthItem wraps a record with the discovery of its identity provider.
func NewAuthItem(rec *Record, discovery *oidc.Discovery) *AuthItem {
	return &AuthItem{Record: rec, discovery: discovery}
}

// Discovery returns the discovery document handle shared by every AuthItem
// of the same identity provider.
func (a *AuthItem) Discovery() *oidc.Discovery {
	return a.discovery
}

// DiscoveryURL returns the identity provider's discovery document URL.
func (a *AuthItem) DiscoveryURL() string {
	if a.discovery == nil {
		return ""
	}
	return a.discovery.URL()
}

// IDProviderUUID returns the uuid of the identity provider.
func (a *AuthItem) IDProviderUUID() string {
	return a.String(FieldIDProviderUUID)
}

// IDProvider looks the identity provider up in the store. It reports false
// when the provider has not been loaded.
func (a *AuthItem) IDProvider() (*Record, bool) {
	if a.store == nil {
		return nil, false
	}
	return a.store.IDProvider(a.IDProviderUUID())
}

// AuthParams returns the extra authorization request parameters. The API
// sends them either as a query string or as an object.
func (a *AuthItem) AuthParams() url.Values {
	switch v := a.fields[FieldAuthParams].(type) {
	case string:
		values, _ := url.ParseQuery(v)
		return values
	case map[string]any:
		values := make(url.Values, len(v))
		for k, raw := range v {
			switch val := raw.(type) {
			case nil:
			case []any:
				for _, item := range val {
					values.Add(k, fmt.Sprint(item))
				}
			case string:
				values.Add(k, val)
			default:
				values.Add(k, fmt.Sprint(val))
			}
		}
		return values
	default:
		return nil
	}
}
