package oidc

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// WellKnownPath is the discovery document path relative to the issuer.
const WellKnownPath = "/.well-known/openid-configuration"

// Document is the subset of an OpenID Connect discovery document the client uses.
type Document struct {
	Issuer                string   `json:"issuer,omitempty"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	RevocationEndpoint    string   `json:"revocation_endpoint,omitempty"`
	UserinfoEndpoint      string   `json:"userinfo_endpoint,omitempty"`
	EndSessionEndpoint    string   `json:"end_session_endpoint,omitempty"`
	JWKSURI               string   `json:"jwks_uri,omitempty"`
	ResponseModes         []string `json:"response_modes_supported,omitempty"`
}

// Validate checks the endpoints needed for the authorization code flow.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if d.AuthorizationEndpoint == "" {
		return fmt.Errorf("%w: authorization_endpoint missing", ErrInvalidDocument)
	}
	if d.TokenEndpoint == "" {
		return fmt.Errorf("%w: token_endpoint missing", ErrInvalidDocument)
	}
	return nil
}

// Endpoint converts the document to an oauth2 endpoint. Client credentials
// travel in the request body since MyDataShare clients are public clients.
func (d *Document) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   d.AuthorizationEndpoint,
		TokenURL:  d.TokenEndpoint,
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// Marshal encodes the document for storage.
func (d *Document) Marshal() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalDocument decodes a document written by Marshal.
func UnmarshalDocument(s string) (*Document, error) {
	var d Document
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &d, nil
}

// IssuerBaseURL strips the well-known discovery suffix from a discovery URL.
// URLs without the suffix are returned unchanged.
func IssuerBaseURL(discoveryURL string) string {
	return strings.TrimSuffix(discoveryURL, WellKnownPath)
}
