package jwt

import "errors"

var (
	ErrMalformedToken = errors.New("jwt: token must have three dot-separated parts")
	ErrInvalidToken   = errors.New("jwt: invalid token")
	ErrInvalidClaims  = errors.New("jwt: invalid claims")
)
