package store

import "errors"

var (
	ErrInvalidResponse = errors.New("store: unsupported api response")
	ErrNotTranslatable = errors.New("store: record kind does not support translations")
	ErrNoURLs          = errors.New("store: record kind does not support urls")
	ErrDetached        = errors.New("store: record is not attached to a store")
)
