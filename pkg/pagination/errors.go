package pagination

import "errors"

// ErrEmptyInput is returned by Combine when it receives no pages.
var ErrEmptyInput = errors.New("pagination: no pages to combine")
