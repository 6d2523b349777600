package oidc

import (
	"errors"
	"fmt"
)

var (
	ErrNoDiscoveryURL  = errors.New("oidc: discovery url is not set")
	ErrNoDiscoverer    = errors.New("oidc: no discoverer configured")
	ErrDiscoveryFailed = errors.New("oidc: could not fetch discovery document")
	ErrInvalidDocument = errors.New("oidc: invalid discovery document")
	ErrNoConfiguration = errors.New("oidc: auth item does not have an openid configuration")

	ErrCodeMissing          = errors.New("oidc: authorization code not received")
	ErrStateMismatch        = errors.New("oidc: authorization state does not match")
	ErrConfigurationMissing = errors.New("oidc: openid configuration not found in storage")
	ErrTokenRequest         = errors.New("oidc: token request failed")
	ErrIDTokenMissing       = errors.New("oidc: token response has no id_token")
	ErrNonceMissing         = errors.New("oidc: nonce was not generated for authorization request")
	ErrNonceInvalid         = errors.New("oidc: id token nonce is invalid")
	ErrStorage              = errors.New("oidc: storage failure")

	ErrAuthorization = errors.New("oidc: authorization error")
)

// AuthorizationError carries the error parameters of a failed authorization response.
type AuthorizationError struct {
	Code        string
	Description string
	URI         string
}

func (e *AuthorizationError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("oidc: authorization error: %s: %s", e.Code, e.Description)
	}
	return "oidc: authorization error: " + e.Code
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}
