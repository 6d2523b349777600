package callback

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start callback server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown callback server gracefully")

	ErrInvalidRedirectURI = errors.New("callback: redirect uri must be an http url with a host")
	ErrNilHandler         = errors.New("callback: nil handler")
	// ErrNoCallback is returned by Run when the server stops before the
	// authorization response arrives.
	ErrNoCallback = errors.New("callback: stopped before the authorization response arrived")
)
