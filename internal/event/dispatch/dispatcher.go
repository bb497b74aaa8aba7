// Package dispatch runs event handlers for the bus.
//
// Synchronous delivery runs the handler in the publisher's goroutine; list
// notifications use it so observers see state changes inside the same input
// step. Asynchronous delivery queues work for a small worker pool and is used
// for observers that must never slow the UI loop, such as log sinks.
package dispatch

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the dispatch package.
var (
	// ErrAlreadyRunning is returned when Start is called on a running dispatcher.
	ErrAlreadyRunning = errors.New("dispatcher is already running")

	// ErrNotRunning is returned when work is submitted to a stopped dispatcher.
	ErrNotRunning = errors.New("dispatcher is not running")

	// ErrQueueFull is returned when the async queue cannot accept more tasks.
	ErrQueueFull = errors.New("task queue is full")
)

// Handler mirrors event.Handler to avoid an import cycle.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// Result is the outcome of one handler execution.
type Result struct {
	// Success is true if the handler returned nil without panicking.
	Success bool

	// Error is the handler's error, or the context error when Skipped.
	Error error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the recovered value when Panicked.
	PanicValue any

	// Duration is how long the handler ran.
	Duration time.Duration

	// Skipped is true if the handler never ran (context already done).
	Skipped bool
}

// PanicHandler is called with the event, the recovered value and the stack.
type PanicHandler func(event any, panicValue any, stack []byte)

func defaultPanicHandler(any, any, []byte) {}
