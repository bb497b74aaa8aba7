// Package backend abstracts the terminal a list view draws on.
package backend

import (
	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/renderer/core"
)

// EventType identifies a terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	// EventInterrupt carries a function posted with Post.
	EventInterrupt
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// MouseButton identifies the pressed button.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Event is a terminal event.
type Event struct {
	Type EventType

	Key key.Event

	MouseX, MouseY int
	Button         MouseButton

	Width, Height int

	Focused bool

	// Fn is the function an EventInterrupt carries.
	Fn func()
}

// Backend is a drawing surface with an input queue.
type Backend interface {
	// Init prepares the backend. It must be called first.
	Init() error

	// Shutdown restores the terminal. PollEvent then returns EventClosed.
	Shutdown()

	// Size returns the surface dimensions.
	Size() (width, height int)

	// SetCell draws c at x, y. Positions outside the surface are ignored.
	SetCell(x, y int, c core.Cell)

	// Clear blanks the surface.
	Clear()

	// Show flushes drawing to the display.
	Show()

	// HideCursor hides the text cursor.
	HideCursor()

	// PollEvent blocks for the next event.
	PollEvent() Event

	// Post queues fn to be returned by PollEvent as an EventInterrupt.
	// It is safe to call from any goroutine.
	Post(fn func())
}

// DrawString draws s at x, y clipped to width columns and returns the
// columns used.
func DrawString(b Backend, x, y, width int, s string, style core.Style) int {
	used := 0
	for _, c := range core.CellsFromString(s, style) {
		if used >= width {
			break
		}
		if c.IsContinuation() {
			used++
			continue
		}
		if used+c.Width > width {
			break
		}
		b.SetCell(x+used, y, c)
		used++
	}
	return used
}

// Fill paints every cell of r with c.
func Fill(b Backend, r core.Rect, c core.Cell) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.SetCell(x, y, c)
		}
	}
}
