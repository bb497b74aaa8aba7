package bubble

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/listkit/internal/input/key"
)

var specialKeys = map[tea.KeyType]key.Key{
	tea.KeyEsc:       key.KeyEscape,
	tea.KeyEnter:     key.KeyEnter,
	tea.KeyTab:       key.KeyTab,
	tea.KeyShiftTab:  key.KeyBacktab,
	tea.KeyBackspace: key.KeyBackspace,
	tea.KeyDelete:    key.KeyDelete,
	tea.KeyHome:      key.KeyHome,
	tea.KeyEnd:       key.KeyEnd,
	tea.KeyPgUp:      key.KeyPageUp,
	tea.KeyPgDown:    key.KeyPageDown,
	tea.KeyUp:        key.KeyUp,
	tea.KeyDown:      key.KeyDown,
	tea.KeyLeft:      key.KeyLeft,
	tea.KeyRight:     key.KeyRight,
}

var shiftedKeys = map[tea.KeyType]key.Key{
	tea.KeyShiftUp:    key.KeyUp,
	tea.KeyShiftDown:  key.KeyDown,
	tea.KeyShiftLeft:  key.KeyLeft,
	tea.KeyShiftRight: key.KeyRight,
	tea.KeyShiftHome:  key.KeyHome,
	tea.KeyShiftEnd:   key.KeyEnd,
}

// convertKey maps a tea key message to a key event. ok is false for keys
// with no equivalent.
func convertKey(msg tea.KeyMsg) (key.Event, bool) {
	mods := key.ModNone
	if msg.Alt {
		mods |= key.ModAlt
	}

	if k, ok := specialKeys[msg.Type]; ok {
		return key.Special(k, mods), true
	}
	if k, ok := shiftedKeys[msg.Type]; ok {
		return key.Special(k, mods|key.ModShift), true
	}

	switch {
	case msg.Type == tea.KeySpace:
		return key.Char(' ', mods), true
	case msg.Type == tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return key.Event{}, false
		}
		return key.Char(msg.Runes[0], mods), true
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return key.Char(r, mods|key.ModCtrl), true
	}
	return key.Event{}, false
}
