package list

import (
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/list/index"
)

// ItemCount returns the number of registered items.
func (l *List) ItemCount() int { return len(l.items) }

// Items returns a copy of the registered items in order.
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Item returns the item at i.
func (l *List) Item(i int) (Item, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

// IndexOf returns the position of it, or -1.
func (l *List) IndexOf(it Item) int {
	if it == nil {
		return -1
	}
	for i, candidate := range l.items {
		if candidate == it {
			return i
		}
	}
	return -1
}

// IndexOfTarget walks an event path, innermost node first, and returns the
// position of the first registered item on it, or -1.
func (l *List) IndexOfTarget(path []Node) int {
	for _, n := range path {
		it, ok := n.(Item)
		if !ok {
			continue
		}
		if i := l.IndexOf(it); i >= 0 {
			return i
		}
	}
	return -1
}

// Layout re-establishes the roving tab stop and, when rescan is set, first
// rebuilds the registry from the host's children. The tab stop stays with
// its holder when that item survived; otherwise the first item takes it.
func (l *List) Layout(rescan bool) {
	var holder Item
	if i := l.foundation.TabStopIndex(); i >= 0 && i < len(l.items) {
		holder = l.items[i]
	}

	if rescan {
		l.updateItems()
	}

	target := -1
	if len(l.items) > 0 {
		target = l.IndexOf(holder)
		if target < 0 {
			target = 0
		}
	}

	if l.noninteractive {
		if l.parked == nil && target >= 0 {
			l.parked = l.items[target]
		}
		l.foundation.SetTabStopIndex(-1)
		return
	}
	l.foundation.SetTabStopIndex(target)
}

// updateItems replaces the registry with a snapshot of the host's items and
// seeds the selection from their selected flags. In single mode the lowest
// flagged position wins and the others are cleared.
func (l *List) updateItems() {
	var items []Item
	for _, n := range l.host.Children() {
		if it, ok := n.(Item); ok {
			it.SetManagingList(l)
			items = append(items, it)
			continue
		}
		if d, ok := n.(Divider); ok && d.IsDivider() && d.Role() == "" {
			d.SetRole(RoleSeparator)
		}
	}
	l.items = items

	seed := index.NewSet()
	for i, it := range items {
		it.SetRole(l.itemRoles)
		if it.Selected() {
			seed.Add(i)
		}
	}

	if l.multi {
		l.foundation.SetSelectedIndex(seed)
	} else {
		first := seed.Min()
		for i := range seed {
			if i != first {
				items[i].SetSelected(false)
				items[i].SetActivated(false)
			}
		}
		l.foundation.SetSelectedIndex(index.Single(first))
	}

	l.logger.Debug("items rescanned", "count", len(items), "seed", seed)
	publish(l, events.ListItemsUpdated, events.ListItemsUpdatedPayload{Count: len(items)})
}
