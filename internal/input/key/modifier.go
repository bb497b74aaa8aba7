package key

import "strings"

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m includes mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String renders the set as "Ctrl+Alt".
func (m Modifier) String() string {
	return strings.Join(m.names(false), "+")
}

// short renders the set in bracket form, "C-A".
func (m Modifier) short() string {
	return strings.Join(m.names(true), "-")
}

func (m Modifier) names(short bool) []string {
	var out []string
	add := func(mod Modifier, long, abbr string) {
		if !m.Has(mod) {
			return
		}
		if short {
			out = append(out, abbr)
		} else {
			out = append(out, long)
		}
	}
	add(ModCtrl, "Ctrl", "C")
	add(ModAlt, "Alt", "A")
	add(ModShift, "Shift", "S")
	add(ModMeta, "Meta", "M")
	return out
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"a":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
	"m":       ModMeta,
	"d":       ModMeta,
}

// ModifierFromName returns the modifier for name, ignoring case.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
