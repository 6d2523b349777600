package async

import (
	"context"
)

// Future represents the result of an asynchronous computation.
// Any number of goroutines may wait on the same Future; all of them observe
// the single result produced by the underlying call.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
// A nil Future returns ErrNilFuture.
func (f *Future[U]) Await() (U, error) {
	if f == nil {
		var zero U
		return zero, ErrNilFuture
	}
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes first.
// Giving up on the wait does not stop the computation; other waiters still get its result.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	if f == nil {
		var zero U
		return zero, ErrNilFuture
	}
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	if f == nil {
		return false
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in its own goroutine and returns a Future for its result.
// A context that is already canceled completes the Future with ctx.Err()
// without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns an already completed Future holding v.
func Resolved[U any](v U) *Future[U] {
	f := &Future[U]{result: v, done: make(chan struct{})}
	close(f.done)
	return f
}

// Rejected returns an already completed Future holding err.
func Rejected[U any](err error) *Future[U] {
	f := &Future[U]{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}
