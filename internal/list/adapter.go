package list

import (
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/list/index"
)

// adapter exposes the registry to the foundation controller.
type adapter struct {
	l *List
}

func (a adapter) item(i int) Item {
	if i < 0 || i >= len(a.l.items) {
		return nil
	}
	return a.l.items[i]
}

func (a adapter) ItemCount() int { return len(a.l.items) }

func (a adapter) IsDisabled(i int) bool {
	it := a.item(i)
	return it == nil || it.Disabled()
}

func (a adapter) IsSelected(i int) bool {
	it := a.item(i)
	return it != nil && it.Selected()
}

func (a adapter) SetSelected(i int, selected bool) {
	if it := a.item(i); it != nil {
		it.SetSelected(selected)
	}
}

func (a adapter) SetActivated(i int, activated bool) {
	if it := a.item(i); it != nil {
		it.SetActivated(activated)
	}
}

func (a adapter) SetTabStop(i int, inFlow bool) {
	if it := a.item(i); it != nil {
		it.SetTabStop(inFlow)
	}
}

func (a adapter) FocusItem(i int) {
	if it := a.item(i); it != nil {
		a.l.host.Focus(it)
	}
}

func (a adapter) NotifySelected(idx index.Index, diff index.Diff) {
	publish(a.l, events.ListSelected, events.ListSelectedPayload{Index: idx, Diff: diff})
}

func (a adapter) NotifyAction(i int) {
	publish(a.l, events.ListAction, events.ListActionPayload{Index: i})
}
