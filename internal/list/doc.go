// Package list implements a selectable list control: an item registry plus
// the selection and focus controller from package foundation.
//
// A List manages the Item children of a Host. The host owns the items and
// enumerates them; the list rescans that enumeration on Layout and keeps an
// ordered snapshot. Item attach and detach notifications are debounced so a
// burst of structural changes produces a single rescan. Callers that must
// observe the rescanned registry wait on ItemsReady or UpdateComplete.
//
// Outbound notifications are published on the event bus under
// "list.<name>":
//
//	list.<name>.items-updated
//	list.<name>.selected
//	list.<name>.action
//
// Subscribing to "list.**" observes every list.
//
// A List is driven from a single goroutine, normally the host's event loop.
// Debounce timers fire on their own goroutine; WithPoster marshals them back
// onto the host loop. Without a poster the timer only marks the rescan due
// and the owning goroutine runs it on its next call into the list or in
// UpdateComplete.
package list
