package event

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/dshills/listkit/internal/event/dispatch"
	"github.com/dshills/listkit/internal/event/topic"
)

// Bus is the central event bus interface.
type Bus interface {
	// Publish delivers event to every matching subscription: sync
	// subscriptions run before Publish returns, async ones are queued.
	// Errors returned by sync handlers are joined into the result.
	Publish(ctx context.Context, event any) error

	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error

	Start() error
	Stop(ctx context.Context) error
	IsRunning() bool

	Stats() Stats
}

type bus struct {
	registry registry
	config   busConfig

	syncDispatcher  *dispatch.SyncDispatcher
	asyncDispatcher *dispatch.AsyncDispatcher

	running atomic.Bool

	eventsPublished atomic.Uint64
	eventsDropped   atomic.Uint64
}

// NewBus creates a stopped bus. Call Start before publishing.
func NewBus(opts ...BusOption) Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	onPanic := func(event any, v any, _ []byte) {
		cfg.panicHandler(event, v)
	}

	return &bus{
		config:         cfg,
		syncDispatcher: dispatch.NewSyncDispatcher(onPanic),
		asyncDispatcher: dispatch.NewAsyncDispatcher(
			dispatch.WithQueueSize(cfg.asyncQueueSize),
			dispatch.WithWorkerCount(cfg.asyncWorkerCount),
			dispatch.WithAsyncTimeout(cfg.asyncTimeout),
			dispatch.WithAsyncPanicHandler(onPanic),
		),
	}
}

// Start starts the async workers and enables publishing.
func (b *bus) Start() error {
	if b.running.Load() {
		return ErrBusAlreadyRunning
	}
	if err := b.asyncDispatcher.Start(); err != nil {
		return err
	}
	b.running.Store(true)
	return nil
}

// Stop disables publishing and drains queued async events until ctx is done.
func (b *bus) Stop(ctx context.Context) error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	return b.asyncDispatcher.Stop(ctx)
}

// IsRunning reports whether the bus accepts events.
func (b *bus) IsRunning() bool {
	return b.running.Load()
}

func (b *bus) Publish(ctx context.Context, event any) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}

	tp, ok := event.(TopicProvider)
	if !ok || tp.EventTopic() == "" {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()

	subs := b.registry.match(eventTopic)
	if len(subs) == 0 {
		return nil
	}
	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}

		if sub.config.DeliveryMode == DeliveryAsync {
			if err := b.asyncDispatcher.Enqueue(ctx, event, sub.handler); err != nil {
				b.eventsDropped.Add(1)
			}
			continue
		}

		result := b.syncDispatcher.Dispatch(ctx, event, sub.handler)
		if result.Error != nil && !result.Skipped {
			errs = append(errs, &HandlerError{
				SubscriptionID: sub.id,
				Topic:          eventTopic.String(),
				Err:            result.Error,
			})
		}
		if sub.config.Once && result.Success {
			sub.Cancel()
			b.registry.remove(sub.id)
		}
	}

	return errors.Join(errs...)
}

func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(pattern, handler, opts...)
	b.registry.add(sub)
	return sub, nil
}

func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (b *bus) Stats() Stats {
	sync := b.syncDispatcher.Stats()
	async := b.asyncDispatcher.Stats()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		HandlersExecuted:  sync.Dispatched + async.Processed,
		HandlerErrors:     sync.Failed + async.Failed,
		HandlerPanics:     sync.Panicked + async.Panicked,
		EventsDropped:     b.eventsDropped.Load(),
		ActiveSubscribers: b.registry.countActive(),
		QueueDepth:        async.QueueDepth,
	}
}
