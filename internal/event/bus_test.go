package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dshills/listkit/internal/event/topic"
)

type testPayload struct {
	N int
}

func newRunningBus(t *testing.T) Bus {
	t.Helper()
	b := NewBus()
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = b.Stop(ctx)
	})
	return b
}

func TestBus_PublishRequiresRunning(t *testing.T) {
	b := NewBus()
	err := b.Publish(context.Background(), NewEvent[testPayload]("list.main.selected", testPayload{}, "test"))
	if !errors.Is(err, ErrBusNotRunning) {
		t.Fatalf("Publish on stopped bus = %v, want ErrBusNotRunning", err)
	}
}

func TestBus_StartTwice(t *testing.T) {
	b := newRunningBus(t)
	if err := b.Start(); !errors.Is(err, ErrBusAlreadyRunning) {
		t.Fatalf("second Start = %v, want ErrBusAlreadyRunning", err)
	}
}

func TestBus_SyncDeliveryIsImmediate(t *testing.T) {
	b := newRunningBus(t)

	var got []int
	_, err := SubscribeTyped[testPayload](b, "list.*.selected", func(_ context.Context, e Event[testPayload]) error {
		got = append(got, e.Payload.N)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := b.Publish(context.Background(), NewEvent[testPayload]("list.main.selected", testPayload{N: i}, "test")); err != nil {
			t.Fatal(err)
		}
	}

	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestBus_WildcardBubbling(t *testing.T) {
	b := newRunningBus(t)

	var seen []topic.Topic
	record := HandlerFunc(func(_ context.Context, e any) error {
		seen = append(seen, e.(TopicProvider).EventTopic())
		return nil
	})
	if _, err := b.Subscribe("list.**", record); err != nil {
		t.Fatal(err)
	}

	topics := []topic.Topic{"list.main.items-updated", "list.nav.action", "config.reloaded"}
	for _, tp := range topics {
		_ = b.Publish(context.Background(), NewEvent(tp, testPayload{}, "test"))
	}

	if len(seen) != 2 {
		t.Fatalf("seen %v, want two list topics", seen)
	}
}

func TestBus_PriorityOrder(t *testing.T) {
	b := newRunningBus(t)

	var order []string
	add := func(name string, p Priority) {
		_, err := b.SubscribeFunc("list.main.action", func(context.Context, any) error {
			order = append(order, name)
			return nil
		}, WithPriority(p))
		if err != nil {
			t.Fatal(err)
		}
	}
	add("low", PriorityLow)
	add("critical", PriorityCritical)
	add("normal", PriorityNormal)

	_ = b.Publish(context.Background(), NewEvent[testPayload]("list.main.action", testPayload{}, "test"))

	want := []string{"critical", "normal", "low"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBus_HandlerErrorsAreJoined(t *testing.T) {
	b := newRunningBus(t)
	errBoom := errors.New("boom")

	_, _ = b.SubscribeFunc("list.main.action", func(context.Context, any) error { return errBoom })

	err := b.Publish(context.Background(), NewEvent[testPayload]("list.main.action", testPayload{}, "test"))
	if !errors.Is(err, errBoom) {
		t.Fatalf("Publish = %v, want wrapped errBoom", err)
	}
	var he *HandlerError
	if !errors.As(err, &he) || he.Topic != "list.main.action" {
		t.Fatalf("Publish error = %v, want HandlerError for list.main.action", err)
	}
}

func TestBus_OnceAndUnsubscribe(t *testing.T) {
	b := newRunningBus(t)

	count := 0
	_, _ = b.SubscribeFunc("list.main.action", func(context.Context, any) error {
		count++
		return nil
	}, WithOnce())

	sub, _ := b.SubscribeFunc("list.main.action", func(context.Context, any) error { return nil })

	evt := NewEvent[testPayload]("list.main.action", testPayload{}, "test")
	_ = b.Publish(context.Background(), evt)
	_ = b.Publish(context.Background(), evt)

	if count != 1 {
		t.Errorf("once handler ran %d times, want 1", count)
	}
	if err := b.Unsubscribe(sub); err != nil {
		t.Errorf("Unsubscribe: %v", err)
	}
	if err := b.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("second Unsubscribe = %v, want ErrSubscriptionNotFound", err)
	}
	if n := b.Stats().ActiveSubscribers; n != 0 {
		t.Errorf("ActiveSubscribers = %d, want 0", n)
	}
}

func TestBus_AsyncDelivery(t *testing.T) {
	b := newRunningBus(t)

	var wg sync.WaitGroup
	wg.Add(1)
	_, err := b.SubscribeFunc("list.**", func(context.Context, any) error {
		wg.Done()
		return nil
	}, WithDeliveryMode(DeliveryAsync))
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Publish(context.Background(), NewEvent[testPayload]("list.main.action", testPayload{}, "test")); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handler never ran")
	}
}

func TestBus_InvalidInputs(t *testing.T) {
	b := newRunningBus(t)

	if _, err := b.Subscribe("", HandlerFunc(func(context.Context, any) error { return nil })); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic = %v, want ErrInvalidTopic", err)
	}
	if _, err := b.Subscribe("list", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil handler = %v, want ErrNilHandler", err)
	}
	if err := b.Publish(context.Background(), "not an event"); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("untyped publish = %v, want ErrInvalidEvent", err)
	}
}

func TestAsHandler_SkipsOtherPayloads(t *testing.T) {
	called := false
	h := AsHandler[testPayload](func(context.Context, Event[testPayload]) error {
		called = true
		return nil
	})
	if err := h.Handle(context.Background(), NewEvent[string]("x", "s", "test")); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("typed handler ran for a different payload type")
	}
}
