package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/renderer/core"
)

// postRetry is the interval at which a post refused by a full event queue
// is retried.
const postRetry = 5 * time.Millisecond

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	mouse  bool

	done     chan struct{}
	stopOnce sync.Once
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithMouse enables mouse reporting.
func WithMouse(on bool) TerminalOption {
	return func(t *Terminal) { t.mouse = on }
}

// NewTerminal creates a backend on the controlling terminal.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen, opts ...TerminalOption) *Terminal {
	t := &Terminal{screen: screen, done: make(chan struct{})}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	if t.mouse {
		t.screen.EnableMouse()
	}
	t.screen.EnableFocus()
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.stopOnce.Do(func() { close(t.done) })
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, c core.Cell) {
	if c.IsContinuation() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	runes := []rune(c.Str)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	t.screen.SetContent(x, y, runes[0], runes[1:], convertStyle(c.Style))
}

// Cell returns the cell at x, y.
func (t *Terminal) Cell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, comb, style, width := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Str:   string(append([]rune{mainc}, comb...)),
		Width: width,
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// PollEvent blocks without holding the lock so Post can run concurrently.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		if out := convertEvent(ev); out.Type != EventNone {
			return out
		}
	}
}

// Post queues fn for the polling goroutine. When the queue is full the post
// is retried from another goroutine until it lands or the terminal shuts
// down, since Post may be called from the polling goroutine itself.
func (t *Terminal) Post(fn func()) {
	ev := tcell.NewEventInterrupt(fn)
	if t.screen.PostEvent(ev) == nil {
		return
	}
	go func() {
		tick := time.NewTicker(postRetry)
		defer tick.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tick.C:
				if t.screen.PostEvent(ev) == nil {
					return
				}
			}
		}
	}()
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return Event{}
		}
		return Event{Type: EventKey, Key: k}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{Type: EventMouse, MouseX: x, MouseY: y, Button: convertMouseButton(e.Buttons())}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}
	case *tcell.EventInterrupt:
		fn, _ := e.Data().(func())
		return Event{Type: EventInterrupt, Fn: fn}
	default:
		return Event{}
	}
}

// convertKey maps a tcell key event to the key model. Control letters
// arrive as their own tcell keys and become Ctrl+letter runes.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	switch k := e.Key(); k {
	case tcell.KeyRune:
		return key.Char(e.Rune(), mods), true
	case tcell.KeyEscape:
		return key.Special(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.Special(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.Special(key.KeyTab, mods), true
	case tcell.KeyBacktab:
		return key.Special(key.KeyBacktab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Special(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.Special(key.KeyDelete, mods), true
	case tcell.KeyHome:
		return key.Special(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.Special(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.Special(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.Special(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.Special(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.Special(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.Special(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.Special(key.KeyRight, mods), true
	case tcell.KeyCtrlSpace:
		return key.Char(' ', mods.With(key.ModCtrl)), true
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return key.Char('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
		}
		return key.Event{}, false
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out = out.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		out = out.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		out = out.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		out = out.With(key.ModMeta)
	}
	return out
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}

func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}
	a := s.Attributes
	return style.
		Bold(a.Has(core.AttrBold)).
		Dim(a.Has(core.AttrDim)).
		Italic(a.Has(core.AttrItalic)).
		Underline(a.Has(core.AttrUnderline)).
		Reverse(a.Has(core.AttrReverse)).
		StrikeThrough(a.Has(core.AttrStrikethrough))
}

func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()
	s := core.Style{Foreground: convertTcellColor(fg), Background: convertTcellColor(bg)}
	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}
	if attrs&tcell.AttrStrikeThrough != 0 {
		s.Attributes |= core.AttrStrikethrough
	}
	return s
}

func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}
