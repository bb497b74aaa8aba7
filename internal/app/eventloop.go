package app

import (
	"errors"

	"github.com/dshills/listkit/internal/renderer/backend"
	"github.com/dshills/listkit/internal/renderer/core"
)

// eventLoop draws the list and handles events until the run ends.
func (app *Application) eventLoop(b backend.Backend) error {
	defer app.stopLoop()
	for _, fn := range app.startLoop() {
		fn()
	}

	w, h := b.Size()
	app.view.SetRect(core.Rect{Width: w, Height: h})
	app.focusTabStop()
	app.draw(b)

	for !app.ended() {
		ev := b.PollEvent()
		if ev.Type == backend.EventClosed {
			return nil
		}

		err := app.handleBackendEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if app.ended() {
			break
		}
		app.draw(b)
	}
	return nil
}

func (app *Application) ended() bool {
	return app.finished.Load() || app.cancelled.Load()
}

func (app *Application) draw(b backend.Backend) {
	b.Clear()
	app.view.Draw(b)
	b.Show()
}

// focusTabStop gives host focus to the tab stop holder when focus is not
// on an item.
func (app *Application) focusTabStop() {
	l := app.list
	if l.Noninteractive() || l.FocusedItemIndex() >= 0 {
		return
	}
	if i := l.FocusedIndex(); i >= 0 {
		l.FocusItemAtIndex(i)
		l.HandleFocusIn(app.host.FocusPath())
	}
}
