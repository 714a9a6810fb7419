package async

import (
	"context"
	"fmt"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes first.
// The underlying computation is not interrupted when ctx fires; only the wait is.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
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
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
	})
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
// A panic inside fn completes the Future with an error wrapping ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		var zero U

		defer func() {
			if r := recover(); r != nil {
				f.complete(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		// Early exit prevents running work for a context that is already canceled
		select {
		case <-ctx.Done():
			f.complete(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// Resolved returns an already completed Future holding v.
func Resolved[U any](v U) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	f.complete(v, nil)
	return f
}

// Rejected returns an already completed Future holding err.
func Rejected[U any](err error) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	var zero U
	f.complete(zero, err)
	return f
}
