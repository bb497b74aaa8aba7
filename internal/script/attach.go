package script

import (
	"context"

	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/list/index"
)

// Binding connects a script's hooks to a list's notifications.
type Binding struct {
	bus  event.Bus
	subs []event.Subscription
}

// Attach subscribes the script's hooks to the list named listName. label
// resolves an item index to its text for on_action. done runs when
// on_action returns true.
func (s *Script) Attach(bus event.Bus, listName string, label func(int) string, done func()) (*Binding, error) {
	b := &Binding{bus: bus}

	if s.HasHook(HookOnSelected) {
		sub, err := event.SubscribeTyped[events.ListSelectedPayload](bus, events.ListTopic(listName, events.ListSelected),
			func(ctx context.Context, e event.Event[events.ListSelectedPayload]) error {
				p := e.Payload
				return s.OnSelected(ctx,
					index.CreateSetFromIndex(p.Index).Sorted(),
					p.Diff.Added.Sorted(),
					p.Diff.Removed.Sorted())
			})
		if err != nil {
			return nil, err
		}
		b.subs = append(b.subs, sub)
	}

	if s.HasHook(HookOnAction) {
		sub, err := event.SubscribeTyped[events.ListActionPayload](bus, events.ListTopic(listName, events.ListAction),
			func(ctx context.Context, e event.Event[events.ListActionPayload]) error {
				text := ""
				if label != nil {
					text = label(e.Payload.Index)
				}
				finish, err := s.OnAction(ctx, e.Payload.Index, text)
				if err != nil {
					return err
				}
				if finish && done != nil {
					done()
				}
				return nil
			})
		if err != nil {
			b.Detach()
			return nil, err
		}
		b.subs = append(b.subs, sub)
	}
	return b, nil
}

// Detach removes the subscriptions.
func (b *Binding) Detach() {
	for _, sub := range b.subs {
		_ = b.bus.Unsubscribe(sub)
	}
	b.subs = nil
}
