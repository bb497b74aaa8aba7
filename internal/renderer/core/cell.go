package core

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Cell is one grapheme cluster on screen. A wide cluster occupies Width
// columns; the columns after it hold continuation cells.
type Cell struct {
	Str   string
	Width int
	Style Style
}

// EmptyCell is a blank in the default style.
func EmptyCell() Cell {
	return Cell{Str: " ", Width: 1, Style: DefaultStyle()}
}

// IsContinuation reports whether c is the tail of a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// CellsFromString splits s into grapheme cells.
func CellsFromString(s string, style Style) []Cell {
	var cells []Cell
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if width == 0 {
			continue
		}
		cells = append(cells, Cell{Str: cluster, Width: width, Style: style})
		for i := 1; i < width; i++ {
			cells = append(cells, Cell{Style: style})
		}
	}
	return cells
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most width columns, ending with tail when
// anything was cut. Clusters are never split.
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	tailWidth := uniseg.StringWidth(tail)
	if tailWidth > width {
		tail, tailWidth = "", 0
	}

	var b strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > width-tailWidth {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(tail)
	return b.String()
}

// Rect is a screen area.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell at x, y lies in r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
