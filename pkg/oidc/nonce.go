package oidc

import (
	"crypto/rand"
	"fmt"
)

const (
	// NonceLength is the length of generated nonces.
	NonceLength  = 128
	nonceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateNonce returns a random alphanumeric string of NonceLength characters.
func GenerateNonce() (string, error) {
	// largest multiple of len(nonceCharset) that fits a byte, for an unbiased pick
	const limit = 256 - 256%len(nonceCharset)

	out := make([]byte, 0, NonceLength)
	buf := make([]byte, NonceLength)
	for len(out) < NonceLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("oidc: generate nonce: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, nonceCharset[int(b)%len(nonceCharset)])
			if len(out) == NonceLength {
				break
			}
		}
	}
	return string(out), nil
}
