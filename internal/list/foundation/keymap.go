package foundation

import (
	"fmt"
	"strings"

	"github.com/dshills/listkit/internal/input/key"
)

// Action is a logical list command produced by a key press.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionFirst
	ActionLast
	ActionActivate
	ActionSelect
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionNext:     "next",
	ActionPrev:     "prev",
	ActionFirst:    "first",
	ActionLast:     "last",
	ActionActivate: "activate",
	ActionSelect:   "select",
}

// String returns the config name of the action.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ActionFromName resolves a config name such as "next" or "activate".
func ActionFromName(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, s := range actionNames {
		if s == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// Binding maps one key to an action.
type Binding struct {
	Key    key.Event
	Action Action
}

// Keymap resolves key events to actions. The zero value has no bindings.
type Keymap struct {
	// Name identifies the keymap in logs.
	Name string

	bindings []Binding
}

// NewKeymap returns an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// DefaultKeymap binds the arrow keys, Home/End, Enter and Space.
func DefaultKeymap() *Keymap {
	km := NewKeymap("default")
	km.Add(key.Special(key.KeyDown, key.ModNone), ActionNext)
	km.Add(key.Special(key.KeyUp, key.ModNone), ActionPrev)
	km.Add(key.Special(key.KeyHome, key.ModNone), ActionFirst)
	km.Add(key.Special(key.KeyEnd, key.ModNone), ActionLast)
	km.Add(key.Special(key.KeyEnter, key.ModNone), ActionActivate)
	km.Add(key.Char(' ', key.ModNone), ActionSelect)
	return km
}

// Add appends a binding. Earlier bindings win on lookup.
func (k *Keymap) Add(ev key.Event, a Action) *Keymap {
	k.bindings = append(k.bindings, Binding{Key: ev, Action: a})
	return k
}

// Bind replaces every binding of a with the parsed specs.
func (k *Keymap) Bind(a Action, specs ...string) error {
	events, err := key.ParseAll(specs)
	if err != nil {
		return fmt.Errorf("bind %s: %w", a, err)
	}

	kept := k.bindings[:0]
	for _, b := range k.bindings {
		if b.Action != a {
			kept = append(kept, b)
		}
	}
	k.bindings = kept

	for _, ev := range events {
		k.Add(ev, a)
	}
	return nil
}

// Lookup returns the action bound to ev, or ActionNone.
func (k *Keymap) Lookup(ev key.Event) Action {
	if k == nil {
		return ActionNone
	}
	for _, b := range k.bindings {
		if b.Key.Equals(ev) {
			return b.Action
		}
	}
	return ActionNone
}

// Bindings returns a copy of the bindings in lookup order.
func (k *Keymap) Bindings() []Binding {
	return append([]Binding(nil), k.bindings...)
}

// FromConfig builds a keymap from action-name to key-spec lists, starting
// from the defaults. Actions missing from m keep their default keys.
func FromConfig(m map[string][]string) (*Keymap, error) {
	km := DefaultKeymap()
	km.Name = "config"
	for name, specs := range m {
		a, ok := ActionFromName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
		}
		if err := km.Bind(a, specs...); err != nil {
			return nil, err
		}
	}
	return km, nil
}
