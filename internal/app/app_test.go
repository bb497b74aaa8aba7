package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/list"
	"github.com/dshills/listkit/internal/list/listtest"
	"github.com/dshills/listkit/internal/logging"
	"github.com/dshills/listkit/internal/renderer/backend"
)

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	opts.EnvPrefix = "LISTKIT_APPTEST_"
	opts.Logger = logging.Discard()
	app, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app
}

// run starts the event loop on a null backend and returns a channel that
// yields Run's error.
func run(t *testing.T, app *Application, ctx context.Context) (*backend.Null, <-chan error) {
	t.Helper()
	b := backend.NewNull(20, 5)
	require.NoError(t, app.SetBackend(b))
	errc := make(chan error, 1)
	go func() { errc <- app.Run(ctx) }()
	return b, errc
}

func wait(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func press(b *backend.Null, evs ...key.Event) {
	for _, ev := range evs {
		b.Inject(backend.Event{Type: backend.EventKey, Key: ev})
	}
}

var (
	down  = key.Special(key.KeyDown, key.ModNone)
	enter = key.Special(key.KeyEnter, key.ModNone)
	space = key.Char(' ', key.ModNone)
)

func TestNewWithLabels(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a", "b", "---", "c"}})

	assert.Equal(t, 3, app.List().ItemCount())
	assert.Len(t, app.Host().Children(), 4)
	assert.Equal(t, 0, app.List().FocusedIndex())
	assert.Equal(t, "listbox", app.List().InnerRole())
	assert.False(t, app.IsRunning())
}

func TestNewWithoutItems(t *testing.T) {
	_, err := New(Options{
		EnvPrefix: "LISTKIT_APPTEST_",
		Logger:    logging.Discard(),
		Overrides: map[string]any{"list.emptyMessage": ""},
	})
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestNewEmptyMessage(t *testing.T) {
	app := newApp(t, Options{Overrides: map[string]any{"list.emptyMessage": "Nothing here"}})
	assert.Equal(t, 0, app.List().ItemCount())
	assert.True(t, app.List().ShowEmptyMessage())
}

func TestNewAppliesListSettings(t *testing.T) {
	app := newApp(t, Options{
		Labels: []string{"a", "b"},
		Overrides: map[string]any{
			"list.name":      "fruit",
			"list.multi":     true,
			"list.wrapFocus": true,
			"list.itemRoles": "option",
		},
	})

	l := app.List()
	assert.Equal(t, "fruit", l.Name())
	assert.True(t, l.Multi())
	assert.True(t, l.WrapFocus())
	it, ok := l.Item(1)
	require.True(t, ok)
	assert.Equal(t, "option", it.Role())
}

func TestNewBadKeys(t *testing.T) {
	_, err := New(Options{
		EnvPrefix: "LISTKIT_APPTEST_",
		Logger:    logging.Discard(),
		Labels:    []string{"a"},
		Overrides: map[string]any{"keys.jump": []any{"j"}},
	})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "keymap", initErr.Component)
}

func TestNewFromFeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":["a",{"text":"b","selected":true}]}`), 0o644))

	app := newApp(t, Options{FeedPath: path})
	assert.Equal(t, 2, app.List().ItemCount())
	sel := app.List().Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, "b", sel[0].(*list.TextItem).Text)
}

func TestNewFromFeedStdin(t *testing.T) {
	app := newApp(t, Options{FeedPath: "-", Stdin: strings.NewReader(`["x","y","z"]`)})
	assert.Equal(t, 3, app.List().ItemCount())
}

func TestNewInvalidFeed(t *testing.T) {
	_, err := New(Options{
		EnvPrefix: "LISTKIT_APPTEST_",
		Logger:    logging.Discard(),
		FeedPath:  "-",
		Stdin:     strings.NewReader(`{"items": 3}`),
	})
	assert.ErrorIs(t, err, ErrInvalidFeed)
}

func TestNewBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listkit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[list\nmulti = "), 0o644))

	_, err := New(Options{EnvPrefix: "LISTKIT_APPTEST_", ConfigPath: path, Labels: []string{"a"}})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "config", initErr.Component)
}

func TestRunWithoutBackend(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a"}})
	assert.ErrorIs(t, app.Run(context.Background()), ErrNoBackend)
}

func TestRunChooseWithEnter(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a", "b", "c"}})
	b, errc := run(t, app, context.Background())

	press(b, down, enter)
	wait(t, errc)

	r := app.Result()
	assert.False(t, r.Cancelled)
	assert.Equal(t, 1, r.Action)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "b", r.Items[0].Text)
	assert.Positive(t, b.Shows())
}

func TestRunCancel(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a", "b"}})
	b, errc := run(t, app, context.Background())

	press(b, key.Special(key.KeyEscape, key.ModNone))
	wait(t, errc)

	r := app.Result()
	assert.True(t, r.Cancelled)
	assert.Empty(t, r.Items)
	assert.Equal(t, "> a", b.Row(0))
}

func TestRunMultiToggle(t *testing.T) {
	app := newApp(t, Options{
		Labels:    []string{"a", "b", "c"},
		Overrides: map[string]any{"list.multi": true},
	})
	b, errc := run(t, app, context.Background())

	press(b, space, down, down, space, enter)
	wait(t, errc)

	r := app.Result()
	require.Len(t, r.Items, 2)
	assert.Equal(t, "a", r.Items[0].Text)
	assert.Equal(t, "c", r.Items[1].Text)
	assert.Equal(t, 2, r.Action)
}

func TestRunContextCancel(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a"}})
	ctx, cancel := context.WithCancel(context.Background())
	_, errc := run(t, app, ctx)

	cancel()
	wait(t, errc)
	assert.True(t, app.Result().Cancelled)
}

func TestFeedReloadReplacesItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a","b"]`), 0o644))
	app := newApp(t, Options{FeedPath: path, Overrides: map[string]any{"list.debounce": "1ms"}})
	rec, err := listtest.Record(app.EventBus(), "main")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`["x","y","z"]`), 0o644))
	app.post(app.reloadFeed)
	assert.Equal(t, 2, app.List().ItemCount(), "reload waits for the event loop")

	b, errc := run(t, app, context.Background())
	require.Eventually(t, func() bool {
		updated, _, _ := rec.Counts()
		return updated == 1
	}, 2*time.Second, 5*time.Millisecond)
	press(b, enter)
	wait(t, errc)

	assert.Equal(t, 3, app.List().ItemCount())
	r := app.Result()
	require.Len(t, r.Items, 1)
	assert.Equal(t, "x", r.Items[0].Text)
}

func TestRunMouseClick(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a", "b"}})
	b, errc := run(t, app, context.Background())

	b.Inject(backend.Event{Type: backend.EventMouse, Button: backend.MouseLeft, MouseX: 3, MouseY: 1})
	press(b, enter)
	wait(t, errc)

	r := app.Result()
	require.Len(t, r.Items, 1)
	assert.Equal(t, "b", r.Items[0].Text)
}

func TestRunScriptDecidesFinish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.lua")
	code := `
items = {"x", "y"}
function on_action(i, text)
  return text == "y"
end
`
	require.NoError(t, os.WriteFile(path, []byte(code), 0o644))

	app := newApp(t, Options{ScriptPath: path})
	b, errc := run(t, app, context.Background())

	press(b, enter, down, enter)
	wait(t, errc)

	r := app.Result()
	assert.Equal(t, 1, r.Action)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "y", r.Items[0].Value)
}

func TestApplyConfig(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a", "b", "c"}})
	l := app.List()

	require.NoError(t, app.Config().Set("list.wrapFocus", true))
	require.NoError(t, app.Config().Set("keys.next", []any{"j"}))
	app.applyConfig([]string{"list.wrapFocus", "keys.next"})

	assert.True(t, l.WrapFocus())
	l.FocusItemAtIndex(2)
	assert.True(t, l.HandleKeydown(key.Char('j', key.ModNone), app.Host().FocusPath()))
	assert.Equal(t, 0, l.FocusedIndex(), "j wraps to the first item")
}

func TestConfigReloadEvent(t *testing.T) {
	app := newApp(t, Options{Labels: []string{"a", "b"}})

	require.NoError(t, app.Config().Set("list.noninteractive", true))
	evt := event.NewEvent(events.TopicConfigReloaded, events.ConfigReloaded{Changed: []string{"list.noninteractive"}}, "test")
	require.NoError(t, app.EventBus().Publish(context.Background(), evt))
	assert.False(t, app.List().Noninteractive(), "applied on the event loop, not the publisher")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, errc := run(t, app, ctx)
	wait(t, errc)

	assert.True(t, app.List().Noninteractive())
	assert.Equal(t, -1, app.List().FocusedIndex())
}

func TestShutdownIdempotent(t *testing.T) {
	app, err := New(Options{EnvPrefix: "LISTKIT_APPTEST_", Logger: logging.Discard(), Labels: []string{"a"}})
	require.NoError(t, err)
	app.Shutdown()
	app.Shutdown()
	assert.False(t, app.IsRunning())
}
