package async

import (
	"context"
	"errors"
)

// ErrTimeout is returned by Await when the caller's context expires
// before the computation completes. The computation itself keeps running
// until its own context is done.
var ErrTimeout = errors.New("async operation timed out")

// Future holds the eventual result of a computation started with Run.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Run starts fn in its own goroutine and returns the future for its
// result. A pre-canceled context short-circuits without spawning work.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn(ctx)
	}()
	return f
}

// Await blocks until the computation completes or ctx expires. On expiry
// it returns ErrTimeout joined with the context's error; the result, if
// it arrives later, is discarded.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, errors.Join(ErrTimeout, ctx.Err())
	}
}

// Done reports completion without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
