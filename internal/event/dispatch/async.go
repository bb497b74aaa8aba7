package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// AsyncDispatcher executes handlers on a bounded worker pool.
type AsyncDispatcher struct {
	queueSize   int
	workerCount int
	timeout     time.Duration
	executor    *Executor

	mu      sync.Mutex // guards queue creation and close
	queue   chan asyncTask
	running atomic.Bool
	wg      sync.WaitGroup

	enqueued  atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
}

type asyncTask struct {
	ctx     context.Context
	event   any
	handler Handler
}

// AsyncOption configures an AsyncDispatcher.
type AsyncOption func(*AsyncDispatcher)

// WithQueueSize sets the task queue size.
func WithQueueSize(size int) AsyncOption {
	return func(d *AsyncDispatcher) {
		if size > 0 {
			d.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) AsyncOption {
	return func(d *AsyncDispatcher) {
		if count > 0 {
			d.workerCount = count
		}
	}
}

// WithAsyncTimeout sets the per-handler execution timeout.
func WithAsyncTimeout(timeout time.Duration) AsyncOption {
	return func(d *AsyncDispatcher) {
		d.timeout = timeout
	}
}

// WithAsyncPanicHandler sets the panic handler used by workers.
func WithAsyncPanicHandler(h PanicHandler) AsyncOption {
	return func(d *AsyncDispatcher) {
		d.executor = NewExecutor(h)
	}
}

// NewAsyncDispatcher creates an asynchronous dispatcher. Call Start before
// enqueueing work.
func NewAsyncDispatcher(opts ...AsyncOption) *AsyncDispatcher {
	d := &AsyncDispatcher{
		queueSize:   256,
		workerCount: 2,
		timeout:     5 * time.Second,
		executor:    NewExecutor(nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the worker pool.
func (d *AsyncDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return ErrAlreadyRunning
	}

	d.queue = make(chan asyncTask, d.queueSize)
	d.running.Store(true)
	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.worker(d.queue)
	}
	return nil
}

// Stop closes the queue and waits for queued tasks to drain or for ctx to
// be done, whichever comes first.
func (d *AsyncDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running.Swap(false) {
		d.mu.Unlock()
		return ErrNotRunning
	}
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue submits a task. It never blocks: a full queue drops the task and
// returns ErrQueueFull.
func (d *AsyncDispatcher) Enqueue(ctx context.Context, event any, handler Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return ErrNotRunning
	}

	select {
	case d.queue <- asyncTask{ctx: ctx, event: event, handler: handler}:
		d.enqueued.Add(1)
		return nil
	default:
		d.dropped.Add(1)
		return ErrQueueFull
	}
}

func (d *AsyncDispatcher) worker(queue <-chan asyncTask) {
	defer d.wg.Done()

	for task := range queue {
		// Detach from the publisher's cancellation; the publisher has
		// usually returned by the time a worker picks the task up.
		ctx := context.WithoutCancel(task.ctx)
		result := d.executor.ExecuteWithTimeout(ctx, task.event, task.handler, d.timeout)

		d.processed.Add(1)
		switch {
		case result.Panicked:
			d.panicked.Add(1)
		case result.Error != nil:
			d.failed.Add(1)
		}
	}
}

// AsyncStats contains asynchronous dispatch counters.
type AsyncStats struct {
	Enqueued   uint64
	Processed  uint64
	Failed     uint64
	Panicked   uint64
	Dropped    uint64
	QueueDepth int
}

// Stats returns a snapshot of the dispatcher counters.
func (d *AsyncDispatcher) Stats() AsyncStats {
	d.mu.Lock()
	depth := 0
	if d.queue != nil {
		depth = len(d.queue)
	}
	d.mu.Unlock()

	return AsyncStats{
		Enqueued:   d.enqueued.Load(),
		Processed:  d.processed.Load(),
		Failed:     d.failed.Load(),
		Panicked:   d.panicked.Load(),
		Dropped:    d.dropped.Load(),
		QueueDepth: depth,
	}
}
