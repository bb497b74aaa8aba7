package foundation

import (
	"io"
	"log/slog"

	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/list/index"
)

// Controller is the selection and focus state machine for one list.
// It is not safe for concurrent use; the hosting list serializes calls.
type Controller struct {
	adapter Adapter
	keymap  *Keymap
	logger  *slog.Logger

	selected index.Index
	tabStop  int

	multi       bool
	wrapFocus   bool
	activatable bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithKeymap sets the key bindings. Nil keeps the defaults.
func WithKeymap(km *Keymap) Option {
	return func(c *Controller) {
		if km != nil {
			c.keymap = km
		}
	}
}

// WithLogger sets the logger for ignored requests and focus moves.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller in single-select mode with nothing selected and
// no tab stop.
func New(a Adapter, opts ...Option) *Controller {
	c := &Controller{
		adapter:  a,
		keymap:   DefaultKeymap(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		selected: index.None,
		tabStop:  -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Multi reports whether the controller is in multi-select mode.
func (c *Controller) Multi() bool { return c.multi }

// WrapFocus reports whether next/prev wrap at the ends.
func (c *Controller) WrapFocus() bool { return c.wrapFocus }

// Activatable reports whether selection also drives activated styling.
func (c *Controller) Activatable() bool { return c.activatable }

// SetMulti switches selection mode. The tracked selection is reset to the
// empty value for the new mode; the host re-seeds it from item flags with a
// layout.
func (c *Controller) SetMulti(multi bool) {
	c.multi = multi
	if multi {
		c.selected = index.NewSet()
	} else {
		c.selected = index.None
	}
}

// SetWrapFocus enables wrap-around navigation.
func (c *Controller) SetWrapFocus(wrap bool) { c.wrapFocus = wrap }

// SetActivatable makes selection toggle the activated flag too.
func (c *Controller) SetActivatable(activatable bool) { c.activatable = activatable }

// SetKeymap replaces the key bindings. Nil restores the defaults.
func (c *Controller) SetKeymap(km *Keymap) {
	if km == nil {
		km = DefaultKeymap()
	}
	c.keymap = km
}

// SelectedIndex returns the current selection. Sets are copies.
func (c *Controller) SelectedIndex() index.Index {
	if s, ok := c.selected.(index.Set); ok {
		return s.Clone()
	}
	return c.selected
}

// TabStopIndex returns the position holding the roving tab stop, or -1.
func (c *Controller) TabStopIndex() int { return c.tabStop }

// SetSelectedIndex applies target as the whole selection and always
// notifies. Targets of the wrong kind for the mode, or with positions out of
// range, are ignored.
func (c *Controller) SetSelectedIndex(target index.Index) {
	if !c.isIndexValid(target) {
		c.logger.Debug("selection ignored", "target", target, "multi", c.multi)
		return
	}

	old := c.selected
	before := index.CreateSetFromIndex(old)
	after := index.CreateSetFromIndex(target)

	for i := range before {
		if !after.Has(i) {
			c.applyFlags(i, false)
		}
	}
	for i := range after {
		c.applyFlags(i, true)
	}

	if s, ok := target.(index.Set); ok {
		c.selected = s.Clone()
	} else {
		c.selected = target
	}
	c.adapter.NotifySelected(c.SelectedIndex(), index.Compute(old, target))
}

// ToggleMultiAtIndex adds or removes i from a multi selection. Only item i's
// flags are touched. Ignored in single mode.
func (c *Controller) ToggleMultiAtIndex(i int, selected bool) {
	if !c.multi || i < 0 || i >= c.adapter.ItemCount() {
		return
	}

	old := index.CreateSetFromIndex(c.selected)
	next := old.Clone()
	if selected {
		next.Add(i)
	} else {
		next.Remove(i)
	}

	c.applyFlags(i, selected)
	c.selected = next
	c.adapter.NotifySelected(next.Clone(), index.Compute(old, next))
}

// HandleSingleSelection resolves a selection request raised by item i.
// Disabled items are ignored. When isInteraction is set the user caused the
// request and an action notification follows the selection.
func (c *Controller) HandleSingleSelection(i int, isInteraction, wantSelected bool) {
	if i < 0 || i >= c.adapter.ItemCount() {
		return
	}
	if c.adapter.IsDisabled(i) {
		c.logger.Debug("selection request on disabled item", "index", i)
		return
	}

	switch {
	case c.multi:
		c.ToggleMultiAtIndex(i, wantSelected)
	case !wantSelected && c.selected == index.Single(i):
		c.SetSelectedIndex(index.None)
	default:
		c.SetSelectedIndex(index.Single(i))
	}

	if isInteraction {
		c.adapter.NotifyAction(i)
	}
}

// HandleKeydown interprets ev for the item at current. isRootItem is false
// when the key was pressed inside a nested control of the item, in which
// case only navigation applies. It reports whether the key was consumed.
func (c *Controller) HandleKeydown(ev key.Event, isRootItem bool, current int) bool {
	count := c.adapter.ItemCount()
	if count == 0 {
		return false
	}
	if current < 0 || current >= count {
		current = c.tabStop
	}

	action := c.keymap.Lookup(ev)
	switch action {
	case ActionNext:
		c.moveFocus(current, c.nextIndex(current, 1))
	case ActionPrev:
		c.moveFocus(current, c.nextIndex(current, -1))
	case ActionFirst:
		c.moveFocus(current, c.edgeIndex(current, 1))
	case ActionLast:
		c.moveFocus(current, c.edgeIndex(current, -1))
	case ActionActivate:
		if !isRootItem || current < 0 || c.adapter.IsDisabled(current) {
			return false
		}
		if c.activatable {
			c.selectFocused(current)
		}
		c.adapter.NotifyAction(current)
	case ActionSelect:
		if !c.activatable || !isRootItem || current < 0 || c.adapter.IsDisabled(current) {
			return false
		}
		c.selectFocused(current)
	default:
		return false
	}
	return true
}

// HandleFocusIn gives the tab stop to i when no item holds it.
func (c *Controller) HandleFocusIn(i int) {
	if i < 0 || c.tabStop >= 0 {
		return
	}
	c.adapter.SetTabStop(i, true)
	c.tabStop = i
}

// HandleFocusOut keeps the tab stop where it is so focus returns to it.
func (c *Controller) HandleFocusOut(int) {}

// FocusItemAtIndex moves the tab stop and host focus to i.
func (c *Controller) FocusItemAtIndex(i int) {
	if i < 0 || i >= c.adapter.ItemCount() {
		return
	}
	c.moveFocus(c.tabStop, i)
}

// SetTabStopIndex makes i the only item in the focus order without moving
// host focus. i of -1 removes every tab stop.
func (c *Controller) SetTabStopIndex(i int) {
	n := c.adapter.ItemCount()
	if i >= n {
		i = -1
	}
	for j := 0; j < n; j++ {
		c.adapter.SetTabStop(j, j == i)
	}
	c.tabStop = i
}

// ClearTabStop takes the current holder out of the focus order and returns
// its position, or -1.
func (c *Controller) ClearTabStop() int {
	prev := c.tabStop
	if prev >= 0 {
		c.adapter.SetTabStop(prev, false)
	}
	c.tabStop = -1
	return prev
}

func (c *Controller) selectFocused(i int) {
	if c.multi {
		c.ToggleMultiAtIndex(i, !c.adapter.IsSelected(i))
		return
	}
	c.SetSelectedIndex(index.Single(i))
}

func (c *Controller) moveFocus(from, to int) {
	if to < 0 {
		return
	}
	if from >= 0 && from != to {
		c.adapter.SetTabStop(from, false)
	}
	if c.tabStop >= 0 && c.tabStop != from && c.tabStop != to {
		c.adapter.SetTabStop(c.tabStop, false)
	}
	c.adapter.SetTabStop(to, true)
	c.tabStop = to
	c.adapter.FocusItem(to)
	c.logger.Debug("focus moved", "from", from, "to", to)
}

func (c *Controller) applyFlags(i int, on bool) {
	c.adapter.SetSelected(i, on)
	if !on || c.activatable {
		c.adapter.SetActivated(i, on)
	}
}

func (c *Controller) isIndexValid(target index.Index) bool {
	n := c.adapter.ItemCount()
	switch v := target.(type) {
	case index.Single:
		return !c.multi && v >= index.None && int(v) < n
	case index.Set:
		if !c.multi {
			return false
		}
		for i := range v {
			if i < 0 || i >= n {
				return false
			}
		}
		return true
	default:
		return false
	}
}
