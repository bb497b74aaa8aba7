package list

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/list/foundation"
	"github.com/dshills/listkit/internal/list/index"
	"github.com/dshills/listkit/internal/list/typeahead"
)

// DefaultDebounce is the quiet period before a debounced rescan runs.
const DefaultDebounce = 50 * time.Millisecond

// Poster runs fn on the host's event loop.
type Poster func(fn func())

// List is a selectable list control bound to a Host.
type List struct {
	name     string
	host     Host
	bus      event.Bus
	logger   *slog.Logger
	poster   Poster
	debounce time.Duration
	keymap   *foundation.Keymap

	foundation *foundation.Controller
	items      []Item
	typeahead  *typeahead.Buffer

	multi          bool
	wrapFocus      bool
	activatable    bool
	noninteractive bool
	rootTabbable   bool
	itemRoles      string
	innerRole      string
	innerAriaLabel string
	emptyMessage   string

	// parked holds the tab stop owner while noninteractive.
	parked Item

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	rescan  bool
	ready   chan struct{}
	waiting []chan struct{}

	// due is closed when a layout without a poster becomes due; dueGen
	// names that cycle until it is flushed.
	due    chan struct{}
	dueGen uint64
}

// Option configures a List.
type Option func(*List)

// WithName sets the list name used in event topics. Default "main".
func WithName(name string) Option {
	return func(l *List) {
		if name != "" {
			l.name = name
		}
	}
}

// WithBus sets the bus notifications are published on. Without a bus the
// list publishes nothing.
func WithBus(b event.Bus) Option {
	return func(l *List) { l.bus = b }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPoster marshals debounced rescans onto the host loop. Without a
// poster a due rescan runs on the next call into the list.
func WithPoster(p Poster) Option {
	return func(l *List) {
		if p != nil {
			l.poster = p
		}
	}
}

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(l *List) {
		if d > 0 {
			l.debounce = d
		}
	}
}

// WithKeymap sets the key bindings.
func WithKeymap(km *foundation.Keymap) Option {
	return func(l *List) { l.keymap = km }
}

// WithMulti starts the list in multi-select mode.
func WithMulti(multi bool) Option {
	return func(l *List) { l.multi = multi }
}

// WithWrapFocus starts the list with wrap-around navigation.
func WithWrapFocus(wrap bool) Option {
	return func(l *List) { l.wrapFocus = wrap }
}

// WithActivatable starts the list with activated styling on selection.
func WithActivatable(activatable bool) Option {
	return func(l *List) { l.activatable = activatable }
}

// WithTypeahead starts the list with typeahead focus on printable keys.
func WithTypeahead(on bool) Option {
	return func(l *List) {
		if on {
			l.typeahead = typeahead.NewBuffer(typeahead.DefaultTimeout)
		}
	}
}

// New creates a list over host. The registry is empty until the first
// Layout or Mount.
func New(host Host, opts ...Option) *List {
	l := &List{
		name:     "main",
		host:     host,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.logger = l.logger.With("list", l.name)
	l.foundation = foundation.New(adapter{l},
		foundation.WithKeymap(l.keymap),
		foundation.WithLogger(l.logger),
	)
	l.foundation.SetMulti(l.multi)
	l.foundation.SetWrapFocus(l.wrapFocus)
	l.foundation.SetActivatable(l.activatable)
	return l
}

// Name returns the list name.
func (l *List) Name() string { return l.name }

// Mount performs the initial scan.
func (l *List) Mount() { l.Layout(true) }

// Close stops a pending debounced rescan and releases its waiters.
func (l *List) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.due = nil
	l.dueGen = 0
	l.resolveLocked()
	return nil
}

// ItemAttached reports that n joined the host. The rescan is debounced.
func (l *List) ItemAttached(n Node) {
	l.DebouncedLayout(true)
}

// ItemDetached reports that n left the host. The rescan is debounced.
func (l *List) ItemDetached(n Node) {
	if it, ok := n.(Item); ok && it.ManagingList() == l {
		it.SetManagingList(nil)
	}
	l.DebouncedLayout(true)
}

// ItemRendered reports that it finished rendering. Items the registry has
// not seen yet trigger a rescan.
func (l *List) ItemRendered(it Item) {
	l.Layout(l.IndexOf(it) < 0)
}

// Multi reports whether multi-select mode is on.
func (l *List) Multi() bool { return l.multi }

// SetMulti switches selection mode and re-applies the selection held in
// item flags under the new mode.
func (l *List) SetMulti(multi bool) {
	if multi == l.multi {
		return
	}
	l.multi = multi
	l.foundation.SetMulti(multi)
	l.Layout(true)
}

// WrapFocus reports whether next/prev wrap.
func (l *List) WrapFocus() bool { return l.wrapFocus }

// SetWrapFocus enables wrap-around navigation.
func (l *List) SetWrapFocus(wrap bool) {
	l.wrapFocus = wrap
	l.foundation.SetWrapFocus(wrap)
}

// Activatable reports whether selection drives activated styling.
func (l *List) Activatable() bool { return l.activatable }

// SetActivatable enables activated styling and the select key.
func (l *List) SetActivatable(activatable bool) {
	l.activatable = activatable
	l.foundation.SetActivatable(activatable)
}

// ItemRoles returns the role applied to every item.
func (l *List) ItemRoles() string { return l.itemRoles }

// SetItemRoles sets the role applied to every item and rescans. An empty
// role clears item roles.
func (l *List) SetItemRoles(role string) {
	if role == l.itemRoles {
		return
	}
	l.itemRoles = role
	l.Layout(true)
}

// SetKeymap replaces the key bindings.
func (l *List) SetKeymap(km *foundation.Keymap) {
	l.keymap = km
	l.foundation.SetKeymap(km)
}

// Typeahead reports whether printable keys move focus by label.
func (l *List) Typeahead() bool { return l.typeahead != nil }

// SetTypeahead turns typeahead focus on or off.
func (l *List) SetTypeahead(on bool) {
	switch {
	case on && l.typeahead == nil:
		l.typeahead = typeahead.NewBuffer(typeahead.DefaultTimeout)
	case !on:
		l.typeahead = nil
	}
}

// Noninteractive reports whether the list ignores input.
func (l *List) Noninteractive() bool { return l.noninteractive }

// SetNoninteractive suppresses or restores the roving tab stop. Turning it
// on parks the current holder; turning it off gives the stop back to that
// same item.
func (l *List) SetNoninteractive(on bool) {
	if on == l.noninteractive {
		return
	}
	l.noninteractive = on

	if on {
		if i := l.foundation.ClearTabStop(); i >= 0 && i < len(l.items) {
			l.parked = l.items[i]
		}
		l.logger.Debug("tab stop parked", "item", nodeID(l.parked))
		return
	}

	target := -1
	if l.parked != nil {
		target = l.IndexOf(l.parked)
	}
	if target < 0 && len(l.items) > 0 {
		target = 0
	}
	l.parked = nil
	l.foundation.SetTabStopIndex(target)
	l.logger.Debug("tab stop restored", "index", target)
}

// RootTabbable reports whether the container itself takes a tab stop.
func (l *List) RootTabbable() bool { return l.rootTabbable }

// SetRootTabbable lets the container itself take a tab stop.
func (l *List) SetRootTabbable(v bool) { l.rootTabbable = v }

// RootTabStop reports whether the container is in the focus order.
func (l *List) RootTabStop() bool { return l.rootTabbable && !l.noninteractive }

// InnerRole returns the container role exposed to bindings.
func (l *List) InnerRole() string { return l.innerRole }

// SetInnerRole sets the container role.
func (l *List) SetInnerRole(role string) { l.innerRole = role }

// InnerAriaLabel returns the container's accessible label.
func (l *List) InnerAriaLabel() string { return l.innerAriaLabel }

// SetInnerAriaLabel sets the container's accessible label.
func (l *List) SetInnerAriaLabel(label string) { l.innerAriaLabel = label }

// EmptyMessage returns the placeholder shown for an empty list.
func (l *List) EmptyMessage() string { return l.emptyMessage }

// SetEmptyMessage sets the placeholder shown for an empty list.
func (l *List) SetEmptyMessage(msg string) { l.emptyMessage = msg }

// ShowEmptyMessage reports whether a binding should render the placeholder.
func (l *List) ShowEmptyMessage() bool {
	return l.emptyMessage != "" && len(l.items) == 0
}

// Index returns the current selection.
func (l *List) Index() index.Index { return l.foundation.SelectedIndex() }

// Selected returns the selected items in index order.
func (l *List) Selected() []Item {
	var out []Item
	for _, i := range index.CreateSetFromIndex(l.Index()).Sorted() {
		if i < len(l.items) {
			out = append(out, l.items[i])
		}
	}
	return out
}

// FocusedIndex returns the position holding the roving tab stop, or -1.
func (l *List) FocusedIndex() int { return l.foundation.TabStopIndex() }

// FocusedItemIndex returns the position of the item containing host focus,
// or -1. Nested items resolve to the deepest one.
func (l *List) FocusedItemIndex() int {
	return l.IndexOfTarget(l.host.FocusPath())
}

// Select applies idx as the whole selection.
func (l *List) Select(idx index.Index) {
	l.flushDue()
	l.foundation.SetSelectedIndex(idx)
}

// Toggle flips the selection of item i. Ignored unless multi.
func (l *List) Toggle(i int) {
	l.flushDue()
	if i < 0 || i >= len(l.items) {
		return
	}
	l.foundation.ToggleMultiAtIndex(i, !l.items[i].Selected())
}

// ToggleTo forces the selection of item i. Ignored unless multi.
func (l *List) ToggleTo(i int, selected bool) {
	l.flushDue()
	l.foundation.ToggleMultiAtIndex(i, selected)
}

// FocusItemAtIndex moves the tab stop and host focus to item i.
func (l *List) FocusItemAtIndex(i int) {
	l.flushDue()
	l.foundation.FocusItemAtIndex(i)
}

// HandleKeydown routes a key pressed with focus on path. It reports whether
// the list consumed the key.
func (l *List) HandleKeydown(ev key.Event, path []Node) bool {
	l.flushDue()
	if l.noninteractive {
		return false
	}
	i := l.IndexOfTarget(path)
	isRoot := i >= 0 && len(path) > 0 && path[0] == Node(l.items[i])
	if l.foundation.HandleKeydown(ev, isRoot, i) {
		return true
	}
	return l.handleTypeahead(ev, i)
}

// handleTypeahead focuses the item best matching the runes typed so far.
func (l *List) handleTypeahead(ev key.Event, current int) bool {
	if l.typeahead == nil || !ev.IsRune() || ev.Rune == ' ' ||
		ev.Modifiers.Has(key.ModCtrl) || ev.Modifiers.Has(key.ModAlt) || ev.Modifiers.Has(key.ModMeta) {
		return false
	}
	if current < 0 {
		current = l.foundation.TabStopIndex()
	}

	labels := make([]string, len(l.items))
	for i, it := range l.items {
		if lb, ok := it.(Labeled); ok {
			labels[i] = lb.Label()
		}
	}
	query := l.typeahead.Add(ev.Rune)
	target := typeahead.Next(query, labels, current, func(i int) bool { return l.items[i].Disabled() })
	l.logger.Debug("typeahead", "query", query, "target", target)
	if target < 0 {
		return true
	}
	l.foundation.FocusItemAtIndex(target)
	return true
}

// HandleFocusIn reports focus entering the list at path.
func (l *List) HandleFocusIn(path []Node) {
	l.flushDue()
	if l.noninteractive {
		return
	}
	l.foundation.HandleFocusIn(l.IndexOfTarget(path))
}

// HandleFocusOut reports focus leaving the list from path.
func (l *List) HandleFocusOut(path []Node) {
	l.flushDue()
	l.foundation.HandleFocusOut(l.IndexOfTarget(path))
}

// HandleRequestSelected resolves a selection request. A target the registry
// does not know yet forces one rescan before the request is dropped.
func (l *List) HandleRequestSelected(req RequestSelected) {
	l.flushDue()
	if l.noninteractive {
		l.logger.Debug("selection request ignored while noninteractive")
		return
	}

	i := l.IndexOfTarget(req.Path)
	if i < 0 {
		l.Layout(true)
		if i = l.IndexOfTarget(req.Path); i < 0 {
			l.logger.Debug("selection request target not found")
			return
		}
	}
	if l.items[i].Disabled() {
		return
	}
	l.foundation.HandleSingleSelection(i, req.Source == SourceInteraction, req.Selected)
}

func nodeID(n Node) string {
	if n == nil {
		return ""
	}
	return n.NodeID()
}

func publish[T any](l *List, kind string, payload T) {
	if l.bus == nil {
		return
	}
	evt := event.NewEvent(events.ListTopic(l.name, kind), payload, "list."+l.name)
	if err := l.bus.Publish(context.Background(), evt); err != nil {
		l.logger.Warn("publish failed", "kind", kind, "error", err)
	}
}
