// Package async provides a small generic Future for coordinating asynchronous work.
//
// A Future is either started with Go, which runs a function in its own goroutine,
// or created pending with NewFuture and completed later with Resolve. Resolution
// happens exactly once, so a Future can be memoized and shared by any number of
// waiters: each of them calls Await and observes the same value and error.
//
// # Usage
//
//	f := async.Go(ctx, func(ctx context.Context) (string, error) {
//		return fetch(ctx)
//	})
//
//	// do other work …
//	res, err := f.Await(ctx)
//
// Await is bounded by the caller's context. Cancelling it stops the wait,
// not the computation: other waiters still receive the result.
//
// # Error Handling
//
// Await returns the error produced by the computation, or ErrAwaitCancelled joined
// with the context error when the wait is abandoned. A panic inside a function
// started with Go is recovered and reported as ErrPanic.
package async
