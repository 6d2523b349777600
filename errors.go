package mdscore

import "errors"

var (
	ErrInvalidConfig      = errors.New("mdscore: invalid configuration")
	ErrFetchAuthItems     = errors.New("mdscore: failed to fetch auth items")
	ErrParseAuthItems     = errors.New("mdscore: failed to parse auth items")
	ErrStorageUnavailable = errors.New("mdscore: storage backend unavailable")
)
