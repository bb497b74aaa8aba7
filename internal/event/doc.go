// Package event provides the notification bus that list controls publish on.
//
// A list never calls its observers directly. Every outward notification
// (items-updated, selected, action) is wrapped in a typed Event and published
// on a Bus under a hierarchical topic rooted at the list's name:
//
//	list.main.items-updated
//	list.main.selected
//	list.main.action
//
// Observers anywhere above the list subscribe with wildcard patterns, which
// plays the role of event bubbling: a container that wants every selection
// change of every list it hosts subscribes to "list.*.selected", and an app
// shell that logs everything subscribes to "list.**".
//
// # Delivery
//
// Sync subscriptions run in the publisher's goroutine, in priority order,
// before PublishSync returns. The list relies on this: a "selected" observer
// sees the new selection while the input event that caused it is still being
// handled. Async subscriptions are queued for a small worker pool and are
// meant for sinks such as log writers.
//
// # Usage
//
//	bus := event.NewBus()
//	if err := bus.Start(); err != nil {
//	    return err
//	}
//	defer bus.Stop(context.Background())
//
//	sub, err := event.SubscribeTyped(bus, "list.*.selected",
//	    func(ctx context.Context, e event.Event[events.ListSelected]) error {
//	        fmt.Println(e.Payload.Index)
//	        return nil
//	    })
//
// # Thread Safety
//
// The Bus is safe for concurrent use. Handlers manage their own safety.
package event
