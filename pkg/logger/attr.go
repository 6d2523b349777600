package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Resource records an API resource name under the key "resource".
func Resource(name string) slog.Attr {
	return slog.String("resource", name)
}

// UUID records a resource identifier under the key "uuid".
func UUID(id string) slog.Attr {
	return slog.String("uuid", id)
}

// Language records a language code under the key "language".
// An empty code is logged as an empty Attr.
func Language(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("language", code)
}

// URL records a URL under the key "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// Count records a collection size under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Offset records a pagination offset under the key "offset".
func Offset(v string) slog.Attr {
	return slog.String("offset", v)
}

// StatusCode records an HTTP status code under the key "status_code".
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}
