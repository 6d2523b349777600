package async

import "errors"

// ErrNilFuture is returned by helpers that receive a nil *Future.
var ErrNilFuture = errors.New("async: nil future")
