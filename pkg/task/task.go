// Package task provides a single-result future for work that outlives
// the goroutine that started it.
package task

import (
	"context"
	"errors"
	"sync"
)

var ErrPending = errors.New("task is pending")

type Task[T any] struct {
	done   chan struct{}
	once   sync.Once
	result T
	err    error
}

// Go runs fn on a new goroutine. fn receives ctx detached from its
// cancellation, so abandoning the task never interrupts the work.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := New[T]()
	detached := context.WithoutCancel(ctx)
	go func() {
		v, err := fn(detached)
		t.Resolve(v, err)
	}()
	return t
}

func New[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

// Resolve stores the result. Only the first call has effect.
func (t *Task[T]) Resolve(v T, err error) {
	t.once.Do(func() {
		t.result = v
		t.err = err
		close(t.done)
	})
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task resolves or ctx is done. A done ctx stops
// waiting only; the task keeps running.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result reports the outcome without blocking. It returns [ErrPending]
// while the task is still running.
func (t *Task[T]) Result() (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	default:
		var zero T
		return zero, ErrPending
	}
}
