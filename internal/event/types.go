package event

import (
	"context"

	"github.com/dshills/listkit/internal/event/topic"
)

// Priority determines handler execution order. Lower values run first.
type Priority int

const (
	// PriorityCritical is for views that must repaint before anyone else looks.
	PriorityCritical Priority = 0

	// PriorityHigh is for controllers reacting to list state.
	PriorityHigh Priority = 100

	// PriorityNormal is the default.
	PriorityNormal Priority = 200

	// PriorityLow is for logging and metrics.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// DeliveryMode specifies how events reach a handler.
type DeliveryMode int

const (
	// DeliverySync runs the handler in the publisher's goroutine.
	DeliverySync DeliveryMode = iota

	// DeliveryAsync queues the event for the worker pool.
	DeliveryAsync
)

// String returns a human-readable delivery mode name.
func (m DeliveryMode) String() string {
	switch m {
	case DeliverySync:
		return "sync"
	case DeliveryAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Handler processes events. The event is type-erased; use SubscribeTyped
// for compile-time payload types.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandlerFunc handles events with a known payload type.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// AsHandler converts a typed function to a Handler. Events with a different
// payload type are skipped.
func AsHandler[T any](fn TypedHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return fn(ctx, e)
		}
		return nil
	})
}

// SubscribeTyped subscribes a typed handler to a topic pattern.
func SubscribeTyped[T any](b Bus, pattern topic.Topic, fn TypedHandlerFunc[T], opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, AsHandler(fn), opts...)
}

// FilterFunc decides whether an event reaches a handler.
type FilterFunc func(event any) bool

// PanicHandler is called when a handler panics.
type PanicHandler func(event any, recovered any)

// Stats contains bus counters.
type Stats struct {
	EventsPublished   uint64
	HandlersExecuted  uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	EventsDropped     uint64
	ActiveSubscribers int
	QueueDepth        int
}
