package key

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Special returns an event for a named key.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Char returns an event for a typed character.
func Char(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Equals compares key, rune and modifiers. Shift on a character is ignored
// because terminals report it inconsistently; the rune already reflects it.
func (e Event) Equals(other Event) bool {
	if e.Key != other.Key || e.Rune != other.Rune {
		return false
	}
	if e.Key == KeyRune {
		return e.Modifiers&^ModShift == other.Modifiers&^ModShift
	}
	return e.Modifiers == other.Modifiers
}

// Spec returns the canonical spec for e; Parse(e.Spec()) equals e.
func (e Event) Spec() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = runeName(e.Rune)
	}

	mods := e.Modifiers
	if e.Key == KeyRune {
		mods &^= ModShift
	}
	if mods == ModNone {
		if len([]rune(name)) == 1 || e.Key != KeyRune {
			return name
		}
		return "<" + name + ">"
	}
	return "<" + mods.short() + "-" + name + ">"
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return e.Spec()
}

func runeName(r rune) string {
	switch r {
	case ' ':
		return "Space"
	case '<':
		return "lt"
	case '-':
		return "minus"
	}
	return string(r)
}
