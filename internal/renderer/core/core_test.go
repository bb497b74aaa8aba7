package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff8800", ColorFromRGB(0xff, 0x88, 0x00), false},
		{"#f80", ColorFromRGB(0xff, 0x88, 0x00), false},
		{"", ColorDefault, false},
		{"orange", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ColorFromHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ColorFromHex(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ColorFromHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend 0 = %v", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend 1 = %v", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("Blend 0.5 = %v, want a gray", mid)
	}
	if got := ColorDefault.Blend(white, 0.3); got != white {
		t.Errorf("default blend = %v", got)
	}
	if white.Hex() != "#ffffff" || ColorDefault.String() != "default" {
		t.Error("unexpected color strings")
	}
}

func TestCellsFromString(t *testing.T) {
	cells := CellsFromString("a日é", DefaultStyle())
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	if cells[1].Str != "日" || cells[1].Width != 2 || !cells[2].IsContinuation() {
		t.Errorf("wide cell = %+v, %+v", cells[1], cells[2])
	}
	if cells[3].Str != "é" {
		t.Errorf("combining cluster split: %q", cells[3].Str)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"apple", 10, "apple"},
		{"apple", 5, "apple"},
		{"banana split", 6, "banan…"},
		{"日本語テキスト", 5, "日本…"},
		{"abc", 0, ""},
		{"abcdef", 1, "…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width, "…"); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, Width: 3, Height: 2}
	if !r.Contains(2, 1) || !r.Contains(4, 2) || r.Contains(5, 1) || r.Contains(2, 3) {
		t.Error("Contains mismatch")
	}
}
