// Package listview draws a list's host children on a backend and maps
// mouse input back to items.
package listview

import (
	"strings"

	"github.com/dshills/listkit/internal/list"
	"github.com/dshills/listkit/internal/renderer/backend"
	"github.com/dshills/listkit/internal/renderer/core"
)

const ellipsis = "…"

// View renders one list.
type View struct {
	list   *list.List
	host   list.Host
	theme  Theme
	rect   core.Rect
	margin int
	top    int

	// rows maps screen rows to host children after the last Draw.
	rows []list.Node
}

// Option configures a View.
type Option func(*View)

// WithTheme sets the styles.
func WithTheme(t Theme) Option {
	return func(v *View) { v.theme = t }
}

// WithScrollMargin keeps this many rows visible around the focused row.
func WithScrollMargin(n int) Option {
	return func(v *View) {
		if n >= 0 {
			v.margin = n
		}
	}
}

// New creates a view of l whose rows are host's children.
func New(l *list.List, host list.Host, opts ...Option) *View {
	v := &View{list: l, host: host, theme: DefaultTheme(), margin: 1}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetRect sets the drawing area.
func (v *View) SetRect(r core.Rect) { v.rect = r }

// Rect returns the drawing area.
func (v *View) Rect() core.Rect { return v.rect }

// SetTheme replaces the styles.
func (v *View) SetTheme(t Theme) { v.theme = t }

// Top returns the first visible child position.
func (v *View) Top() int { return v.top }

// Draw paints the list into its rect.
func (v *View) Draw(b backend.Backend) {
	r := v.rect
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	backend.Fill(b, r, core.Cell{Str: " ", Width: 1, Style: v.theme.Normal})
	v.rows = v.rows[:0]

	if v.list.ShowEmptyMessage() {
		msg := core.Truncate(v.list.EmptyMessage(), r.Width, ellipsis)
		backend.DrawString(b, r.X, r.Y, r.Width, msg, v.theme.Empty)
		return
	}

	children := v.host.Children()
	focused := v.focusedNode()
	v.scrollTo(children, focused)

	for row := 0; row < r.Height && v.top+row < len(children); row++ {
		n := children[v.top+row]
		v.rows = append(v.rows, n)
		v.drawRow(b, r.Y+row, n, n == focused)
	}
}

func (v *View) drawRow(b backend.Backend, y int, n list.Node, focused bool) {
	r := v.rect
	if d, ok := n.(list.Divider); ok && d.IsDivider() {
		line := strings.Repeat("─", r.Width)
		backend.DrawString(b, r.X, y, r.Width, line, v.theme.Separator)
		return
	}
	it, ok := n.(list.Item)
	if !ok {
		return
	}

	style := v.theme.Normal
	switch {
	case it.Disabled():
		style = v.theme.Disabled
	case it.Activated():
		style = v.theme.Activated
	case it.Selected():
		style = v.theme.Selected
	case focused:
		style = v.theme.Focused
	}
	if focused && !it.Disabled() && style != v.theme.Focused {
		style = style.With(core.AttrReverse)
	}

	var prefix strings.Builder
	if focused {
		prefix.WriteString(v.theme.Marker)
	} else {
		prefix.WriteString(strings.Repeat(" ", core.StringWidth(v.theme.Marker)))
	}
	if v.list.Multi() {
		if it.Selected() {
			prefix.WriteString(v.theme.SelectedMarker)
		} else {
			prefix.WriteString(strings.Repeat(" ", core.StringWidth(v.theme.SelectedMarker)))
		}
	}

	text := prefix.String() + label(n)
	backend.Fill(b, core.Rect{X: r.X, Y: y, Width: r.Width, Height: 1}, core.Cell{Str: " ", Width: 1, Style: style})
	backend.DrawString(b, r.X, y, r.Width, core.Truncate(text, r.Width, ellipsis), style)
}

// focusedNode is the child holding host focus, or the tab stop holder
// when focus is outside the list. A noninteractive list shows no focus.
func (v *View) focusedNode() list.Node {
	if v.list.Noninteractive() {
		return nil
	}
	i := v.list.FocusedItemIndex()
	if i < 0 {
		i = v.list.FocusedIndex()
	}
	it, ok := v.list.Item(i)
	if !ok {
		return nil
	}
	return it
}

// scrollTo moves top so the focused child stays margin rows from the
// edges.
func (v *View) scrollTo(children []list.Node, focused list.Node) {
	height := v.rect.Height
	maxTop := max(0, len(children)-height)
	pos := -1
	for i, n := range children {
		if focused != nil && n == focused {
			pos = i
			break
		}
	}

	if pos >= 0 {
		margin := min(v.margin, (height-1)/2)
		if pos < v.top+margin {
			v.top = pos - margin
		} else if pos > v.top+height-1-margin {
			v.top = pos - height + 1 + margin
		}
	}
	v.top = max(0, min(v.top, maxTop))
}

// Scroll moves the visible window by delta rows.
func (v *View) Scroll(delta int) {
	v.top = max(0, v.top+delta)
}

// NodeAt returns the child drawn at screen position x, y by the last Draw.
func (v *View) NodeAt(x, y int) (list.Node, bool) {
	if !v.rect.Contains(x, y) {
		return nil, false
	}
	row := y - v.rect.Y
	if row >= len(v.rows) {
		return nil, false
	}
	return v.rows[row], true
}

// HandleMouse focuses and selects the clicked item and scrolls on wheel
// events. It reports whether the event hit the view.
func (v *View) HandleMouse(ev backend.Event) bool {
	if ev.Type != backend.EventMouse || !v.rect.Contains(ev.MouseX, ev.MouseY) {
		return false
	}
	switch ev.Button {
	case backend.MouseWheelUp:
		v.Scroll(-1)
		return true
	case backend.MouseWheelDown:
		v.Scroll(1)
		return true
	case backend.MouseLeft:
	default:
		return false
	}

	n, ok := v.NodeAt(ev.MouseX, ev.MouseY)
	if !ok {
		return true
	}
	it, ok := n.(list.Item)
	if !ok || it.Disabled() || v.list.Noninteractive() {
		return true
	}
	// A row drawn before the registry saw it resolves through the
	// request's rescan.
	v.list.HandleRequestSelected(list.RequestSelected{
		Path:     []list.Node{it},
		Selected: !v.list.Multi() || !it.Selected(),
		Source:   list.SourceInteraction,
	})
	if i := v.list.IndexOf(it); i >= 0 {
		v.list.FocusItemAtIndex(i)
	}
	return true
}

func label(n list.Node) string {
	if l, ok := n.(list.Labeled); ok {
		return l.Label()
	}
	return n.NodeID()
}
