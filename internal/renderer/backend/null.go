package backend

import (
	"strings"
	"sync"

	"github.com/dshills/listkit/internal/renderer/core"
)

// Null is an in-memory backend for tests and headless runs.
type Null struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	events        chan Event
	closed        chan struct{}
	once          sync.Once
	shows         int
}

// NewNull creates a null backend of the given size.
func NewNull(width, height int) *Null {
	return &Null{
		width:  width,
		height: height,
		events: make(chan Event, 256),
		closed: make(chan struct{}),
	}
}

func (b *Null) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
	return nil
}

func (b *Null) Shutdown() {
	b.once.Do(func() { close(b.closed) })
}

func (b *Null) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Null) SetCell(x, y int, c core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y >= 0 && y < len(b.cells) && x >= 0 && x < len(b.cells[y]) {
		b.cells[y][x] = c
	}
}

// Cell returns the cell at x, y.
func (b *Null) Cell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y >= 0 && y < len(b.cells) && x >= 0 && x < len(b.cells[y]) {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns row y as text with trailing blanks trimmed.
func (b *Null) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.cells) {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteString(c.Str)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Shows returns how many times Show was called.
func (b *Null) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

func (b *Null) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
}

func (b *Null) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *Null) HideCursor() {}

func (b *Null) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.closed:
		return Event{Type: EventClosed}
	}
}

func (b *Null) Post(fn func()) {
	b.Inject(Event{Type: EventInterrupt, Fn: fn})
}

// Inject queues ev. Events are dropped once the queue is full.
func (b *Null) Inject(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

// Resize changes the size and queues an EventResize.
func (b *Null) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.resetLocked()
	b.mu.Unlock()
	b.Inject(Event{Type: EventResize, Width: width, Height: height})
}

func (b *Null) resetLocked() {
	b.cells = make([][]core.Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]core.Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = core.EmptyCell()
		}
	}
}
