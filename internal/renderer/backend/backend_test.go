package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/renderer/core"
)

func TestNullDrawString(t *testing.T) {
	b := NewNull(10, 2)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	n := DrawString(b, 1, 0, 5, "日本語です", core.DefaultStyle())
	if n != 4 {
		t.Errorf("used %d columns, want 4", n)
	}
	if got := b.Row(0); got != " 日本" {
		t.Errorf("row = %q", got)
	}

	Fill(b, core.Rect{X: 0, Y: 1, Width: 3, Height: 1}, core.Cell{Str: "-", Width: 1})
	if got := b.Row(1); got != "---" {
		t.Errorf("row = %q", got)
	}

	b.Clear()
	if got := b.Row(0); got != "" {
		t.Errorf("row after Clear = %q", got)
	}
}

func TestNullEvents(t *testing.T) {
	b := NewNull(4, 4)
	_ = b.Init()

	ran := false
	b.Post(func() { ran = true })
	ev := b.PollEvent()
	if ev.Type != EventInterrupt || ev.Fn == nil {
		t.Fatalf("event = %+v", ev)
	}
	ev.Fn()
	if !ran {
		t.Error("posted function did not run")
	}

	b.Resize(8, 2)
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 8 {
		t.Errorf("resize event = %+v", ev)
	}

	b.Shutdown()
	b.Shutdown()
	if ev := b.PollEvent(); ev.Type != EventClosed {
		t.Errorf("after Shutdown = %+v", ev)
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(20, 4)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalSetCell(t *testing.T) {
	term, _ := newSimTerminal(t)

	red, _ := core.ColorFromHex("#ff0000")
	style := core.DefaultStyle().WithForeground(red).With(core.AttrBold)
	DrawString(term, 0, 1, 10, "hi", style)

	c := term.Cell(1, 1)
	if c.Str != "i" {
		t.Errorf("cell = %q", c.Str)
	}
	if c.Style.Foreground != red || !c.Style.Attributes.Has(core.AttrBold) {
		t.Errorf("style = %+v", c.Style)
	}
}

func TestTerminalPost(t *testing.T) {
	term, _ := newSimTerminal(t)

	done := make(chan Event, 1)
	go func() {
		for {
			ev := term.PollEvent()
			if ev.Type == EventInterrupt || ev.Type == EventClosed {
				done <- ev
				return
			}
		}
	}()

	ran := false
	term.Post(func() { ran = true })

	select {
	case ev := <-done:
		if ev.Type != EventInterrupt {
			t.Fatalf("event = %+v", ev)
		}
		ev.Fn()
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt not delivered")
	}
	if !ran {
		t.Error("posted function did not run")
	}
}

func TestTerminalPostQueueFull(t *testing.T) {
	term, _ := newSimTerminal(t)

	const n = 25
	var ran int
	for range n {
		term.Post(func() { ran++ })
	}

	got := make(chan int, 1)
	go func() {
		count := 0
		for count < n {
			ev := term.PollEvent()
			if ev.Type == EventClosed {
				break
			}
			if ev.Type == EventInterrupt {
				ev.Fn()
				count++
			}
		}
		got <- count
	}()

	select {
	case count := <-got:
		if count != n || ran != n {
			t.Errorf("delivered %d, ran %d, want %d", count, ran, n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("posts lost when the event queue was full")
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   *tcell.EventKey
		want key.Event
	}{
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), key.Special(key.KeyDown, key.ModNone)},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter, key.ModNone)},
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), key.Char('j', key.ModNone)},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.Char(' ', key.ModNone)},
		{tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), key.Char('n', key.ModCtrl)},
		{tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModShift), key.Special(key.KeyHome, key.ModShift)},
	}
	for _, tt := range tests {
		got, ok := convertKey(tt.in)
		if !ok || !got.Equals(tt.want) {
			t.Errorf("convertKey(%v) = %v, %v; want %v", tt.in.Name(), got, ok, tt.want)
		}
	}

	if _, ok := convertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("F5 should not convert")
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone))
	if ev.Type != EventMouse || ev.MouseX != 3 || ev.MouseY != 2 || ev.Button != MouseLeft {
		t.Errorf("mouse = %+v", ev)
	}
	ev = convertEvent(tcell.NewEventResize(40, 10))
	if ev.Type != EventResize || ev.Width != 40 || ev.Height != 10 {
		t.Errorf("resize = %+v", ev)
	}
}
