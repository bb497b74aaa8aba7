package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
)

func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	c := New(append([]Option{WithEnvPrefix("LISTKIT_TEST_")}, opts...)...)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestDefaults(t *testing.T) {
	c := newTestConfig(t)

	lc := c.List()
	if lc.Name != "main" || lc.Multi || lc.WrapFocus || lc.InnerRole != "listbox" {
		t.Errorf("List() = %+v", lc)
	}
	if lc.Debounce != 50*time.Millisecond {
		t.Errorf("Debounce = %v, want 50ms", lc.Debounce)
	}
	if got := c.Log().Level; got != "warn" {
		t.Errorf("Log().Level = %q", got)
	}
	if len(c.Keys()) != 0 {
		t.Errorf("Keys() = %v, want none", c.Keys())
	}
	if errs := c.ConfigErrors(); len(errs) != 0 {
		t.Errorf("ConfigErrors = %v", errs)
	}
}

func TestLayerPrecedence(t *testing.T) {
	fsys := fstest.MapFS{
		"listkit.toml": {Data: []byte(`
[list]
multi = true
wrapFocus = true
itemRoles = "option"
debounce = "20ms"

[keys]
next = ["j", "Down"]
select = "x"
`)},
	}
	t.Setenv("LISTKIT_TEST_WRAP_FOCUS", "false")

	c := newTestConfig(t,
		WithFileSystem(fsys),
		WithFile("listkit.toml"),
		WithOverrides(map[string]any{"list.itemRoles": "menuitem"}),
	)

	lc := c.List()
	if !lc.Multi {
		t.Error("file layer not applied")
	}
	if lc.WrapFocus {
		t.Error("env layer must override the file")
	}
	if lc.ItemRoles != "menuitem" {
		t.Errorf("ItemRoles = %q, overrides must win", lc.ItemRoles)
	}
	if lc.Debounce != 20*time.Millisecond {
		t.Errorf("Debounce = %v", lc.Debounce)
	}

	keys := c.Keys()
	if len(keys["next"]) != 2 || keys["select"][0] != "x" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestTypedGetters(t *testing.T) {
	c := newTestConfig(t)

	if _, err := c.GetString("list.nope"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("missing = %v, want ErrSettingNotFound", err)
	}
	_, err := c.GetBool("list.name")
	var te *TypeError
	if !errors.As(err, &te) || !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetBool(list.name) = %v, want TypeError", err)
	}
	if te.Expected != "bool" || te.Actual != "string" {
		t.Errorf("TypeError = %+v", te)
	}
	if n, err := c.GetInt("log.maxSizeMB"); err != nil || n != 10 {
		t.Errorf("GetInt = %d, %v", n, err)
	}
	if f, err := c.GetFloat("theme.activatedBlend"); err != nil || f != 0.35 {
		t.Errorf("GetFloat = %v, %v", f, err)
	}
}

func TestSetAndConfigErrors(t *testing.T) {
	c := newTestConfig(t)

	if err := c.Set("", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Set empty path = %v", err)
	}
	if err := c.Set("list.multi", "sometimes"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("list.debounce", int64(75)); err != nil {
		t.Fatal(err)
	}

	lc := c.List()
	if lc.Multi {
		t.Error("mistyped value must fall back to the default")
	}
	if lc.Debounce != 75*time.Millisecond {
		t.Errorf("Debounce = %v, want 75ms", lc.Debounce)
	}
	errs := c.ConfigErrors()
	if _, ok := errs["list.multi"]; !ok || len(errs) != 1 {
		t.Errorf("ConfigErrors = %v", errs)
	}

	c.ClearConfigErrors()
	if c.ConfigErrors() != nil {
		t.Error("ClearConfigErrors left errors")
	}
}

func TestParseErrorFromLoad(t *testing.T) {
	fsys := fstest.MapFS{"bad.yaml": {Data: []byte("list: [unclosed")}}
	c := New(WithFileSystem(fsys), WithFile("bad.yaml"))
	if err := c.Load(context.Background()); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestReloadReportsChanges(t *testing.T) {
	fsys := fstest.MapFS{"listkit.yaml": {Data: []byte("list:\n  wrapFocus: false\n")}}
	c := newTestConfig(t, WithFileSystem(fsys), WithFile("listkit.yaml"))

	fsys["listkit.yaml"] = &fstest.MapFile{Data: []byte("list:\n  wrapFocus: true\n  activatable: true\n")}
	changed, err := c.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 2 || changed[0] != "list.activatable" || changed[1] != "list.wrapFocus" {
		t.Errorf("changed = %v", changed)
	}

	changed, _ = c.Reload()
	if len(changed) != 0 {
		t.Errorf("unchanged reload reported %v", changed)
	}
}

func TestWatchPublishesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listkit.toml")
	if err := os.WriteFile(path, []byte("[list]\nmulti = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	got := make(chan events.ConfigReloaded, 1)
	_, err := event.SubscribeTyped[events.ConfigReloaded](bus, events.TopicConfigReloaded,
		func(_ context.Context, e event.Event[events.ConfigReloaded]) error {
			got <- e.Payload
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}

	c := newTestConfig(t, WithFile(path), WithBus(bus))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Watch(ctx); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("[list]\nmulti = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-got:
		if len(p.Changed) != 1 || p.Changed[0] != "list.multi" {
			t.Errorf("Changed = %v", p.Changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload published")
	}
	if !c.List().Multi {
		t.Error("reloaded value not visible")
	}
}

func TestWatchWithoutFile(t *testing.T) {
	c := newTestConfig(t)
	if err := c.Watch(context.Background()); !errors.Is(err, ErrNoFile) {
		t.Errorf("Watch = %v, want ErrNoFile", err)
	}
}
