package foundation

import (
	"errors"
	"testing"

	"github.com/dshills/listkit/internal/input/key"
)

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		spec string
		want Action
	}{
		{"Down", ActionNext},
		{"Up", ActionPrev},
		{"Home", ActionFirst},
		{"End", ActionLast},
		{"Enter", ActionActivate},
		{"Space", ActionSelect},
		{"j", ActionNone},
	}

	for _, tt := range tests {
		if got := km.Lookup(key.MustParse(tt.spec)); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestKeymapBindReplaces(t *testing.T) {
	km := DefaultKeymap()
	if err := km.Bind(ActionNext, "j", "Ctrl+N"); err != nil {
		t.Fatal(err)
	}

	if got := km.Lookup(key.MustParse("Down")); got != ActionNone {
		t.Errorf("Down still bound to %v", got)
	}
	if got := km.Lookup(key.MustParse("<C-n>")); got != ActionNext {
		t.Errorf("<C-n> = %v, want next", got)
	}
	if got := km.Lookup(key.MustParse("Up")); got != ActionPrev {
		t.Errorf("Up = %v, want prev", got)
	}
}

func TestFromConfig(t *testing.T) {
	km, err := FromConfig(map[string][]string{"prev": {"k"}})
	if err != nil {
		t.Fatal(err)
	}
	if km.Lookup(key.MustParse("k")) != ActionPrev || km.Lookup(key.MustParse("Down")) != ActionNext {
		t.Errorf("unexpected bindings: %v", km.Bindings())
	}

	if _, err := FromConfig(map[string][]string{"jump": {"x"}}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action error = %v", err)
	}
	if _, err := FromConfig(map[string][]string{"next": {""}}); !errors.Is(err, key.ErrEmptySpec) {
		t.Errorf("bad spec error = %v", err)
	}
}

func TestActionNames(t *testing.T) {
	for _, name := range []string{"next", "prev", "first", "last", "activate", "select"} {
		a, ok := ActionFromName(name)
		if !ok || a.String() != name {
			t.Errorf("ActionFromName(%q) = %v, %v", name, a, ok)
		}
	}
	if _, ok := ActionFromName("none"); ok {
		t.Error("none must not be bindable")
	}
	var nilMap *Keymap
	if nilMap.Lookup(key.MustParse("Down")) != ActionNone {
		t.Error("nil keymap must resolve nothing")
	}
}
