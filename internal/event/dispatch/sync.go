package dispatch

import (
	"context"
	"sync/atomic"
)

// SyncDispatcher executes handlers in the caller's goroutine.
type SyncDispatcher struct {
	executor *Executor

	dispatched atomic.Uint64
	succeeded  atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
}

// NewSyncDispatcher creates a synchronous dispatcher.
func NewSyncDispatcher(h PanicHandler) *SyncDispatcher {
	return &SyncDispatcher{executor: NewExecutor(h)}
}

// Dispatch runs handler and blocks until it returns or panics.
func (d *SyncDispatcher) Dispatch(ctx context.Context, event any, handler Handler) Result {
	d.dispatched.Add(1)
	result := d.executor.Execute(ctx, event, handler)

	switch {
	case result.Panicked:
		d.panicked.Add(1)
	case result.Error != nil:
		d.failed.Add(1)
	case result.Success:
		d.succeeded.Add(1)
	}
	return result
}

// SyncStats contains synchronous dispatch counters.
type SyncStats struct {
	Dispatched uint64
	Succeeded  uint64
	Failed     uint64
	Panicked   uint64
}

// Stats returns a snapshot of the dispatcher counters.
func (d *SyncDispatcher) Stats() SyncStats {
	return SyncStats{
		Dispatched: d.dispatched.Load(),
		Succeeded:  d.succeeded.Load(),
		Failed:     d.failed.Load(),
		Panicked:   d.panicked.Load(),
	}
}
