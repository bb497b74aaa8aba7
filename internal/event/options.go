package event

import "time"

// BusOption configures an event Bus.
type BusOption func(*busConfig)

type busConfig struct {
	asyncQueueSize   int
	asyncWorkerCount int
	asyncTimeout     time.Duration
	panicHandler     PanicHandler
}

func defaultBusConfig() busConfig {
	return busConfig{
		asyncQueueSize:   256,
		asyncWorkerCount: 2,
		asyncTimeout:     5 * time.Second,
		panicHandler:     func(any, any) {},
	}
}

// WithAsyncQueueSize sets the async event queue size.
func WithAsyncQueueSize(size int) BusOption {
	return func(c *busConfig) {
		if size > 0 {
			c.asyncQueueSize = size
		}
	}
}

// WithAsyncWorkerCount sets the number of async worker goroutines.
func WithAsyncWorkerCount(count int) BusOption {
	return func(c *busConfig) {
		if count > 0 {
			c.asyncWorkerCount = count
		}
	}
}

// WithAsyncTimeout sets the async handler execution timeout.
func WithAsyncTimeout(d time.Duration) BusOption {
	return func(c *busConfig) {
		c.asyncTimeout = d
	}
}

// WithBusPanicHandler sets the panic handler for the bus.
func WithBusPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		if h != nil {
			c.panicHandler = h
		}
	}
}
