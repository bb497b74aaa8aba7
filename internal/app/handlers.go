package app

import (
	"strings"

	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/list/foundation"
	"github.com/dshills/listkit/internal/renderer/backend"
	"github.com/dshills/listkit/internal/renderer/core"
	"github.com/dshills/listkit/internal/renderer/listview"
)

var (
	keyInterrupt = key.Char('c', key.ModCtrl)
	keyEscape    = key.Special(key.KeyEscape, key.ModNone)
	keyQuit      = key.Char('q', key.ModNone)
	keySpace     = key.Char(' ', key.ModNone)
)

// handleBackendEvent routes a backend event. It returns ErrQuit when the
// user cancels.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.view.HandleMouse(ev)
	case backend.EventFocus:
		app.handleFocusEvent(ev)
	case backend.EventInterrupt:
		if ev.Fn != nil {
			ev.Fn()
		}
		app.focusTabStop()
	}
	return nil
}

func (app *Application) handleResize(ev backend.Event) {
	app.view.SetRect(core.Rect{Width: ev.Width, Height: ev.Height})
}

// handleKeyEvent gives the list first refusal. Ctrl+C always cancels; Esc
// and q cancel when the list has no binding for them.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	k := ev.Key
	if k.Equals(keyInterrupt) {
		app.cancelled.Store(true)
		return ErrQuit
	}
	if app.list.HandleKeydown(k, app.host.FocusPath()) {
		return nil
	}

	switch {
	case k.Equals(keyEscape), k.Equals(keyQuit):
		app.cancelled.Store(true)
		return ErrQuit
	case k.Equals(keySpace) && app.list.Multi() && !app.list.Noninteractive():
		app.list.Toggle(app.list.FocusedIndex())
	}
	return nil
}

func (app *Application) handleFocusEvent(ev backend.Event) {
	if ev.Focused {
		app.focusTabStop()
		app.list.HandleFocusIn(app.host.FocusPath())
		return
	}
	app.list.HandleFocusOut(app.host.FocusPath())
}

// applyConfig pushes reloaded settings into the running list.
func (app *Application) applyConfig(changed []string) {
	lc := app.config.List()
	var keysChanged, themeChanged bool
	for _, path := range changed {
		switch {
		case path == "list.multi":
			app.list.SetMulti(lc.Multi)
		case path == "list.wrapFocus":
			app.list.SetWrapFocus(lc.WrapFocus)
		case path == "list.activatable":
			app.list.SetActivatable(lc.Activatable)
		case path == "list.itemRoles":
			app.list.SetItemRoles(lc.ItemRoles)
		case path == "list.noninteractive":
			app.list.SetNoninteractive(lc.Noninteractive)
		case path == "list.typeahead":
			app.list.SetTypeahead(lc.Typeahead)
		case path == "list.rootTabbable":
			app.list.SetRootTabbable(lc.RootTabbable)
		case path == "list.innerAriaLabel":
			app.list.SetInnerAriaLabel(lc.InnerAriaLabel)
		case path == "list.emptyMessage":
			app.list.SetEmptyMessage(lc.EmptyMessage)
		case strings.HasPrefix(path, "keys."):
			keysChanged = true
		case strings.HasPrefix(path, "theme."):
			themeChanged = true
		}
	}

	if keysChanged {
		km, err := foundation.FromConfig(app.config.Keys())
		if err != nil {
			app.logger.Warn("reloaded keys ignored", "error", err)
		} else {
			app.list.SetKeymap(km)
		}
	}
	if themeChanged {
		theme, err := listview.ThemeFromConfig(app.config.Theme())
		if err != nil {
			app.logger.Warn("reloaded theme ignored", "error", err)
		} else {
			app.view.SetTheme(theme)
		}
	}
	app.logger.Info("config applied", "changed", changed)
}
