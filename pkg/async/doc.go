// Package async provides a small generic Future used to model computations that
// finish later, such as rule checks that call out to a database or an object store.
//
// A Future is obtained with Async, which runs the supplied function in its own
// goroutine, or with Resolved / Rejected for values that are already known. The
// caller waits with Await, bounds the wait with AwaitContext, or polls with
// IsComplete.
//
// # Usage
//
//	future := async.Async(ctx, email, func(ctx context.Context, v string) (bool, error) {
//	    return store.EmailFree(ctx, v)
//	})
//
//	ok, err := future.Await()
//
// # Error Handling
//
// The Future carries the error returned by the callback, the context error when
// the context is already canceled before the callback starts, or an error wrapping
// ErrPanic when the callback panics.
package async
