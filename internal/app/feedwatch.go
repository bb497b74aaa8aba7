package app

import (
	"context"
	"fmt"

	"github.com/dshills/listkit/internal/config/watcher"
	"github.com/dshills/listkit/internal/list"
)

// watchFeed reloads the item feed whenever its file changes until ctx is
// done. The reload runs on the event loop.
func (app *Application) watchFeed(ctx context.Context) error {
	w, err := watcher.New(func(string) {
		app.post(app.reloadFeed)
	}, watcher.WithLogger(app.logger))
	if err != nil {
		return fmt.Errorf("starting feed watcher: %w", err)
	}
	if err := w.Add(app.opts.FeedPath); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", app.opts.FeedPath, err)
	}
	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return nil
}

// reloadFeed replaces the host's children with the feed's current items.
// The list sees the change through detach and attach notifications, so the
// burst coalesces into one rescan.
func (app *Application) reloadFeed() {
	data, err := app.readFeed()
	if err != nil {
		app.logger.Warn("feed reload failed", "path", app.opts.FeedPath, "error", err)
		return
	}
	specs, err := ParseFeed(data)
	if err != nil {
		app.logger.Warn("feed reload failed", "path", app.opts.FeedPath, "error", err)
		return
	}

	old := app.host.Children()
	nodes := list.Build(specs)
	app.host.Replace(nodes...)
	for _, n := range old {
		app.list.ItemDetached(n)
	}
	for _, n := range nodes {
		app.list.ItemAttached(n)
	}
	app.logger.Info("feed reloaded", "path", app.opts.FeedPath, "items", len(specs))
}
