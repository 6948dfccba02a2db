package async

import (
	"context"
	"errors"
	"sync"
)

// Future represents the result of an asynchronous computation.
// A Future is resolved exactly once; every waiter observes the same value and error.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// NewFuture returns a pending Future that completes when Resolve is called.
func NewFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// Resolved returns a Future that is already complete with the given value.
func Resolved[U any](v U) *Future[U] {
	f := NewFuture[U]()
	f.Resolve(v, nil)
	return f
}

// Failed returns a Future that is already complete with the given error.
func Failed[U any](err error) *Future[U] {
	f := NewFuture[U]()
	var zero U
	f.Resolve(zero, err)
	return f
}

// Resolve completes the Future. Only the first call has an effect;
// it reports whether this call was the one that completed the Future.
func (f *Future[U]) Resolve(v U, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.result = v
		f.err = err
		resolved = true
		close(f.done)
	})
	return resolved
}

// Done returns a channel that is closed once the Future is complete.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future completes or ctx is done.
// A cancelled ctx only stops the wait; the underlying computation keeps running.
func (f *Future[U]) Await(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	default:
	}

	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, errors.Join(ErrAwaitCancelled, ctx.Err())
	}
}

// Peek returns the result without blocking. The last return value
// is false while the Future is still pending.
func (f *Future[U]) Peek() (U, error, bool) {
	select {
	case <-f.done:
		return f.result, f.err, true
	default:
		var zero U
		return zero, nil, false
	}
}

// IsComplete checks if the Future is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	_, _, ok := f.Peek()
	return ok
}

// Go runs fn in its own goroutine and returns a Future for its result.
// If ctx is already cancelled, fn is not started and the Future fails with ctx.Err().
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := NewFuture[U]()

	go func() {
		if err := ctx.Err(); err != nil {
			var zero U
			f.Resolve(zero, err)
			return
		}

		var (
			res U
			err error
		)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.Resolve(zero, errors.Join(ErrPanic, panicError(r)))
				return
			}
			f.Resolve(res, err)
		}()
		res, err = fn(ctx)
	}()

	return f
}

// WaitAll waits for every future and returns their results in order.
// Errors from all failed futures are joined; results of failed futures are zero values.
func WaitAll[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var errs []error

	for i, future := range futures {
		result, err := future.Await(ctx)
		results[i] = result
		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}
