package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Header is the decoded JOSE header of a token.
type Header struct {
	Type      string `json:"typ,omitempty"`
	Algorithm string `json:"alg,omitempty"`
	KeyID     string `json:"kid,omitempty"`
}

// Token is a decoded, unverified JWT.
type Token struct {
	Header    Header
	Payload   map[string]any
	Signature []byte

	raw     string
	payload []byte
}

// Decode splits a compact serialized JWT into its three parts and decodes the
// header and payload JSON. The signature is base64url decoded but not verified:
// tokens are received directly from the token endpoint over TLS and only read
// for the claims the client checks itself, such as the nonce.
func Decode(token string) (*Token, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidToken, err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidToken, err)
	}

	payloadJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrInvalidToken, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrInvalidToken, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrInvalidToken)
	}

	signature, err := base64URLDecode(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrInvalidToken, err)
	}

	return &Token{
		Header:    header,
		Payload:   payload,
		Signature: signature,
		raw:       token,
		payload:   payloadJSON,
	}, nil
}

// Raw returns the token string Decode was called with.
func (t *Token) Raw() string {
	return t.raw
}

// Claim returns a payload claim by name.
func (t *Token) Claim(name string) (any, bool) {
	v, ok := t.Payload[name]
	return v, ok
}

// Nonce returns the "nonce" claim, or "" when absent or not a string.
func (t *Token) Nonce() string {
	s, _ := t.Payload["nonce"].(string)
	return s
}

// Claims unmarshals the payload into v.
func (t *Token) Claims(v any) error {
	if err := json.Unmarshal(t.payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClaims, err)
	}
	return nil
}

// StandardClaims holds the registered claims an OpenID Connect ID token carries.
// Audience may be a single string or a list in the wire format.
type StandardClaims struct {
	Subject   string   `json:"sub,omitempty"`
	Issuer    string   `json:"iss,omitempty"`
	Audience  Audience `json:"aud,omitempty"`
	Nonce     string   `json:"nonce,omitempty"`
	ExpiresAt int64    `json:"exp,omitempty"`
	IssuedAt  int64    `json:"iat,omitempty"`
}

// Expired reports whether exp is set and lies before now.
func (c StandardClaims) Expired(now time.Time) bool {
	return c.ExpiresAt > 0 && now.Unix() > c.ExpiresAt
}

// Audience is the "aud" claim.
type Audience []string

// UnmarshalJSON accepts both a string and a list of strings.
func (a *Audience) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Audience{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*a = list
	return nil
}

// Contains reports whether aud lists clientID.
func (a Audience) Contains(clientID string) bool {
	for _, v := range a {
		if v == clientID {
			return true
		}
	}
	return false
}

// base64URLDecode decodes base64url-encoded data, restoring padding as needed.
// JWT tokens omit padding per RFC 7515, but Go's decoder requires it.
func base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += strings.Repeat("=", 2)
	case 3:
		s += strings.Repeat("=", 1)
	}

	return base64.URLEncoding.DecodeString(s)
}
