package oidc

import (
	"net/url"
	"strings"
)

// ParseParams parses a query string or URL fragment. A leading "?" or "#" is
// ignored. Keys given once map to a string, repeated keys to a []string.
// Malformed pairs are skipped.
func ParseParams(s string) map[string]any {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "?")
	values, _ := url.ParseQuery(s)

	out := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 1 {
			out[k] = vs
			continue
		}
		out[k] = vs[0]
	}
	return out
}

// ParseValues is ParseParams keeping url.Values.
func ParseValues(s string) url.Values {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "?")
	values, _ := url.ParseQuery(s)
	if values == nil {
		values = url.Values{}
	}
	return values
}

// CallbackValues extracts the authorization response parameters from a
// redirect URL for the given response mode.
func CallbackValues(redirectURL, responseMode string) (url.Values, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, err
	}
	if responseMode == ResponseModeQuery {
		return u.Query(), nil
	}
	return ParseValues(u.Fragment), nil
}
