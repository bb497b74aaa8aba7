package bubble

import (
	"context"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/list"
	"github.com/dshills/listkit/internal/renderer/core"
)

const ellipsis = "…"

// runMsg carries a function posted from outside the program loop.
type runMsg func()

// Poster returns a list.Poster that runs functions on p's update loop.
func Poster(p *tea.Program) list.Poster {
	return func(fn func()) { p.Send(runMsg(fn)) }
}

// Model is a tea.Model showing one list.
type Model struct {
	list   *list.List
	host   *list.SliceHost
	styles Styles

	width  int
	height int
	top    int
	margin int

	quitKeys     []string
	quitOnAction bool
	doneFn       func() bool
	bus          event.Bus
	sub          event.Subscription

	acted     atomic.Bool
	done      bool
	cancelled bool
}

// Option configures a Model.
type Option func(*Model)

// WithStyles sets the row styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithQuitKeys replaces the keys that cancel the program. Keys use tea's
// names such as "esc" or "ctrl+c".
func WithQuitKeys(keys ...string) Option {
	return func(m *Model) { m.quitKeys = keys }
}

// WithQuitOnAction ends the program after the list raises an action on bus.
func WithQuitOnAction(b event.Bus) Option {
	return func(m *Model) {
		m.bus = b
		m.quitOnAction = b != nil
	}
}

// WithDone ends the program once fn reports true. fn is checked after
// every message.
func WithDone(fn func() bool) Option {
	return func(m *Model) { m.doneFn = fn }
}

// WithSize sets the initial viewport before the first WindowSizeMsg.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// New creates a model over host. Attach the list before running it.
func New(host *list.SliceHost, opts ...Option) *Model {
	m := &Model{
		host:     host,
		styles:   DefaultStyles(),
		margin:   1,
		quitKeys: []string{"q", "esc", "ctrl+c"},
		width:    80,
		height:   10,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach binds l, mounts it and gives host focus to its tab stop.
func (m *Model) Attach(l *list.List) error {
	m.list = l
	if m.quitOnAction {
		sub, err := event.SubscribeTyped[events.ListActionPayload](m.bus, events.ListTopic(l.Name(), events.ListAction),
			func(context.Context, event.Event[events.ListActionPayload]) error {
				m.acted.Store(true)
				return nil
			})
		if err != nil {
			return err
		}
		m.sub = sub
	}
	l.Mount()
	m.focusTabStop()
	return nil
}

// Detach drops the action subscription.
func (m *Model) Detach() {
	if m.sub != nil {
		_ = m.bus.Unsubscribe(m.sub)
		m.sub = nil
	}
}

// Finish ends the program as if the user had chosen.
func (m *Model) Finish() { m.acted.Store(true) }

// Done reports whether the program ended through an action.
func (m *Model) Done() bool { return m.done }

// Cancelled reports whether the user quit without choosing.
func (m *Model) Cancelled() bool { return m.cancelled }

// Chosen returns the selected items, or the focused item when an action
// ended the program with nothing selected.
func (m *Model) Chosen() []list.Item {
	if m.list == nil || m.cancelled {
		return nil
	}
	if sel := m.list.Selected(); len(sel) > 0 {
		return sel
	}
	if !m.done {
		return nil
	}
	if it, ok := m.list.Item(m.list.FocusedIndex()); ok {
		return []list.Item{it}
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg()
		m.focusTabStop()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		for _, k := range m.quitKeys {
			if msg.String() == k {
				m.cancelled = true
				return m, tea.Quit
			}
		}
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if m.acted.Load() || (m.doneFn != nil && m.doneFn()) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if m.list == nil {
		return
	}
	ev, ok := convertKey(msg)
	if !ok {
		return
	}
	if m.list.HandleKeydown(ev, m.host.FocusPath()) {
		return
	}
	// Space toggles in multi mode even when the select action is off.
	if m.list.Multi() && ev.Equals(key.Char(' ', key.ModNone)) && !m.list.Noninteractive() {
		m.list.Toggle(m.list.FocusedIndex())
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.list == nil {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.top = max(0, m.top-1)
		return
	case tea.MouseButtonWheelDown:
		m.top++
		return
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
	default:
		return
	}

	children := m.host.Children()
	row := m.top + msg.Y
	if msg.Y < 0 || msg.Y >= m.height || row >= len(children) {
		return
	}
	it, ok := children[row].(list.Item)
	if !ok || it.Disabled() || m.list.Noninteractive() {
		return
	}
	// A row drawn before the registry saw it resolves through the
	// request's rescan.
	m.list.HandleRequestSelected(list.RequestSelected{
		Path:     []list.Node{it},
		Selected: !m.list.Multi() || !it.Selected(),
		Source:   list.SourceInteraction,
	})
	if i := m.list.IndexOf(it); i >= 0 {
		m.list.FocusItemAtIndex(i)
	}
}

// focusTabStop moves host focus onto the tab stop holder when focus is not
// already on an item.
func (m *Model) focusTabStop() {
	if m.list == nil || m.list.Noninteractive() || m.list.FocusedItemIndex() >= 0 {
		return
	}
	if i := m.list.FocusedIndex(); i >= 0 {
		m.list.FocusItemAtIndex(i)
		m.list.HandleFocusIn(m.host.FocusPath())
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.list == nil || m.height <= 0 || m.width <= 0 {
		return ""
	}
	if m.list.ShowEmptyMessage() {
		return m.styles.Empty.Render(core.Truncate(m.list.EmptyMessage(), m.width, ellipsis)) + "\n"
	}

	children := m.host.Children()
	focused := m.focusedNode()
	m.scrollTo(children, focused)

	var b strings.Builder
	for row := 0; row < m.height && m.top+row < len(children); row++ {
		b.WriteString(m.renderRow(children[m.top+row], focused))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(n list.Node, focused list.Node) string {
	if d, ok := n.(list.Divider); ok && d.IsDivider() {
		return m.styles.Separator.Render(strings.Repeat("─", m.width))
	}
	it, ok := n.(list.Item)
	if !ok {
		return ""
	}
	isFocused := n == focused

	style := m.styles.Normal
	switch {
	case it.Disabled():
		style = m.styles.Disabled
	case it.Activated():
		style = m.styles.Activated
	case it.Selected():
		style = m.styles.Selected
	case isFocused:
		style = m.styles.Focused
	}

	var line strings.Builder
	if isFocused {
		line.WriteString(m.styles.Marker)
	} else {
		line.WriteString(strings.Repeat(" ", core.StringWidth(m.styles.Marker)))
	}
	if m.list.Multi() {
		if it.Selected() {
			line.WriteString(m.styles.SelectedMarker)
		} else {
			line.WriteString(strings.Repeat(" ", core.StringWidth(m.styles.SelectedMarker)))
		}
	}
	line.WriteString(label(n))
	return style.Render(core.Truncate(line.String(), m.width, ellipsis))
}

func (m *Model) focusedNode() list.Node {
	if m.list.Noninteractive() {
		return nil
	}
	i := m.list.FocusedItemIndex()
	if i < 0 {
		i = m.list.FocusedIndex()
	}
	if it, ok := m.list.Item(i); ok {
		return it
	}
	return nil
}

func (m *Model) scrollTo(children []list.Node, focused list.Node) {
	maxTop := max(0, len(children)-m.height)
	if focused != nil {
		for pos, n := range children {
			if n != focused {
				continue
			}
			margin := min(m.margin, (m.height-1)/2)
			if pos < m.top+margin {
				m.top = pos - margin
			} else if pos > m.top+m.height-1-margin {
				m.top = pos - m.height + 1 + margin
			}
			break
		}
	}
	m.top = max(0, min(m.top, maxTop))
}

func label(n list.Node) string {
	if l, ok := n.(list.Labeled); ok {
		return l.Label()
	}
	return n.NodeID()
}
