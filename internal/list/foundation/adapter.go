package foundation

import "github.com/dshills/listkit/internal/list/index"

// Adapter is the capability set the Controller needs from its host.
// Positions are registry indices; implementations ignore out-of-range
// positions.
type Adapter interface {
	// ItemCount returns the number of registered items.
	ItemCount() int

	// IsDisabled reports whether the item at i rejects focus and selection.
	IsDisabled(i int) bool

	// IsSelected reports the item's selected flag.
	IsSelected(i int) bool

	// SetSelected sets the item's selected flag.
	SetSelected(i int, selected bool)

	// SetActivated sets the item's activated styling flag.
	SetActivated(i int, activated bool)

	// SetTabStop puts the item in or out of the sequential focus order.
	SetTabStop(i int, inFlow bool)

	// FocusItem moves host focus to the item.
	FocusItem(i int)

	// NotifySelected reports a processed selection command.
	NotifySelected(idx index.Index, diff index.Diff)

	// NotifyAction reports that the user activated the item.
	NotifyAction(i int)
}
