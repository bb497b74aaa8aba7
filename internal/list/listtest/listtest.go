// Package listtest provides in-memory hosts and event recorders for tests of
// list consumers.
package listtest

import (
	"context"
	"sync"

	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/list"
)

// Host is a list.SliceHost that counts registry scans.
type Host struct {
	*list.SliceHost

	mu sync.Mutex

	// ChildrenCalls counts registry scans.
	ChildrenCalls int
}

// NewHost returns a host holding nodes.
func NewHost(nodes ...list.Node) *Host {
	return &Host{SliceHost: list.NewSliceHost(nodes...)}
}

// NewTextHost returns a host holding one TextItem per label.
func NewTextHost(labels ...string) (*Host, []*list.TextItem) {
	items := TextItems(labels...)
	nodes := make([]list.Node, len(items))
	for i, it := range items {
		nodes[i] = it
	}
	return NewHost(nodes...), items
}

// TextItems returns one TextItem per label.
func TextItems(labels ...string) []*list.TextItem {
	out := make([]*list.TextItem, len(labels))
	for i, l := range labels {
		out[i] = list.NewTextItem(l)
	}
	return out
}

// Children implements list.Host.
func (h *Host) Children() []list.Node {
	h.mu.Lock()
	h.ChildrenCalls++
	h.mu.Unlock()
	return h.SliceHost.Children()
}

// Recorder collects the notifications of one list.
type Recorder struct {
	mu sync.Mutex

	ItemsUpdated []events.ListItemsUpdatedPayload
	Selected     []events.ListSelectedPayload
	Actions      []events.ListActionPayload
}

// Record subscribes a Recorder to every notification of the named list.
func Record(b event.Bus, name string) (*Recorder, error) {
	r := &Recorder{}
	_, err := event.SubscribeTyped[events.ListItemsUpdatedPayload](b, events.ListTopic(name, events.ListItemsUpdated),
		func(_ context.Context, e event.Event[events.ListItemsUpdatedPayload]) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ItemsUpdated = append(r.ItemsUpdated, e.Payload)
			return nil
		})
	if err != nil {
		return nil, err
	}
	_, err = event.SubscribeTyped[events.ListSelectedPayload](b, events.ListTopic(name, events.ListSelected),
		func(_ context.Context, e event.Event[events.ListSelectedPayload]) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Selected = append(r.Selected, e.Payload)
			return nil
		})
	if err != nil {
		return nil, err
	}
	_, err = event.SubscribeTyped[events.ListActionPayload](b, events.ListTopic(name, events.ListAction),
		func(_ context.Context, e event.Event[events.ListActionPayload]) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Actions = append(r.Actions, e.Payload)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Counts returns the number of items-updated, selected and action events.
func (r *Recorder) Counts() (updated, selected, actions int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ItemsUpdated), len(r.Selected), len(r.Actions)
}

// NewBus returns a started bus that is stopped when the test ends.
func NewBus(t interface{ Cleanup(func()) }) event.Bus {
	b := event.NewBus()
	_ = b.Start()
	t.Cleanup(func() { _ = b.Stop(context.Background()) })
	return b
}
