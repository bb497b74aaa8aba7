package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/listkit/internal/config"
	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
	"github.com/dshills/listkit/internal/list"
	"github.com/dshills/listkit/internal/list/foundation"
	"github.com/dshills/listkit/internal/logging"
	"github.com/dshills/listkit/internal/renderer/listview"
	"github.com/dshills/listkit/internal/script"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Event bus
	app.eventBus = event.NewBus()
	if err := app.eventBus.Start(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}

	// 2. Config
	cfgOpts := []config.Option{
		config.WithBus(app.eventBus),
		config.WithOverrides(app.opts.Overrides),
	}
	if app.opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithFile(app.opts.ConfigPath))
	}
	if app.opts.EnvPrefix != "" {
		cfgOpts = append(cfgOpts, config.WithEnvPrefix(app.opts.EnvPrefix))
	}
	app.config = config.New(cfgOpts...)
	if err := app.config.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 3. Logging
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
	} else {
		logger, closer, err := logging.New(app.config.Log())
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		app.logger, app.logCloser = logger, closer
	}
	for path, err := range app.config.ConfigErrors() {
		app.logger.Warn("config value ignored", "path", path, "error", err)
	}

	// 4. Items
	specs, err := app.loadItems()
	if err != nil {
		return err
	}
	lc := app.config.List()
	if len(specs) == 0 && lc.EmptyMessage == "" {
		return ErrNoItems
	}

	// 5. List
	keymap, err := foundation.FromConfig(app.config.Keys())
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	app.host = list.NewSliceHost(list.Build(specs)...)
	app.list = list.New(app.host,
		list.WithName(lc.Name),
		list.WithBus(app.eventBus),
		list.WithLogger(app.logger),
		list.WithPoster(app.post),
		list.WithDebounce(lc.Debounce),
		list.WithKeymap(keymap),
		list.WithMulti(lc.Multi),
		list.WithWrapFocus(lc.WrapFocus),
		list.WithActivatable(lc.Activatable),
		list.WithTypeahead(lc.Typeahead),
	)
	app.list.SetItemRoles(lc.ItemRoles)
	app.list.SetRootTabbable(lc.RootTabbable)
	app.list.SetInnerRole(lc.InnerRole)
	app.list.SetInnerAriaLabel(lc.InnerAriaLabel)
	app.list.SetEmptyMessage(lc.EmptyMessage)
	app.list.SetNoninteractive(lc.Noninteractive)

	// 6. Subscriptions and script hooks
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}
	if app.script != nil {
		app.hooks, err = app.script.Attach(app.eventBus, app.list.Name(), app.label, app.Finish)
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}

	app.list.Mount()

	// 7. View
	theme, err := listview.ThemeFromConfig(app.config.Theme())
	if err != nil {
		app.logger.Warn("theme ignored", "error", err)
	}
	app.view = listview.New(app.list, app.host, listview.WithTheme(theme))

	app.logger.Info("bootstrap complete",
		"items", app.list.ItemCount(),
		"multi", lc.Multi,
		"config", app.config.File(),
	)
	return nil
}

// loadItems reads items from the first configured source: the script, the
// JSON feed, then literal labels.
func (app *Application) loadItems() ([]list.ItemSpec, error) {
	scriptPath := app.opts.ScriptPath
	if scriptPath == "" {
		scriptPath = app.config.Paths().Script
	}

	switch {
	case scriptPath != "":
		s, err := script.LoadFile(scriptPath, script.WithLogger(app.logger))
		if err != nil {
			return nil, &InitError{Component: "script", Err: err}
		}
		app.script = s
		specs, err := s.Items()
		if err != nil {
			return nil, &InitError{Component: "script", Err: err}
		}
		if len(specs) == 0 {
			return LabelSpecs(app.opts.Labels), nil
		}
		return specs, nil

	case app.opts.FeedPath != "":
		data, err := app.readFeed()
		if err != nil {
			return nil, &InitError{Component: "feed", Err: err}
		}
		specs, err := ParseFeed(data)
		if err != nil {
			return nil, &InitError{Component: "feed", Err: err}
		}
		app.feedSource = app.opts.FeedPath != "-"
		return specs, nil
	}
	return LabelSpecs(app.opts.Labels), nil
}

func (app *Application) readFeed() ([]byte, error) {
	if app.opts.FeedPath != "-" {
		return os.ReadFile(app.opts.FeedPath)
	}
	if app.opts.Stdin == nil {
		return nil, fmt.Errorf("%w: no stdin", ErrInvalidFeed)
	}
	return io.ReadAll(app.opts.Stdin)
}

// subscribe finishes the run on item actions and applies config reloads.
// With an on_action hook the script decides when the run finishes.
func (app *Application) subscribe() error {
	if app.script == nil || !app.script.HasHook(script.HookOnAction) {
		sub, err := event.SubscribeTyped[events.ListActionPayload](app.eventBus,
			events.ListTopic(app.list.Name(), events.ListAction),
			func(_ context.Context, e event.Event[events.ListActionPayload]) error {
				app.action.Store(int64(e.Payload.Index))
				app.finished.Store(true)
				return nil
			})
		if err != nil {
			return err
		}
		app.subs = append(app.subs, sub)
	} else {
		sub, err := event.SubscribeTyped[events.ListActionPayload](app.eventBus,
			events.ListTopic(app.list.Name(), events.ListAction),
			func(_ context.Context, e event.Event[events.ListActionPayload]) error {
				app.action.Store(int64(e.Payload.Index))
				return nil
			}, event.WithPriority(event.PriorityHigh))
		if err != nil {
			return err
		}
		app.subs = append(app.subs, sub)
	}

	sub, err := event.SubscribeTyped[events.ConfigReloaded](app.eventBus, events.TopicConfigReloaded,
		func(_ context.Context, e event.Event[events.ConfigReloaded]) error {
			changed := e.Payload.Changed
			app.post(func() { app.applyConfig(changed) })
			return nil
		})
	if err != nil {
		return err
	}
	app.subs = append(app.subs, sub)
	return nil
}

func (app *Application) label(i int) string {
	it, ok := app.list.Item(i)
	if !ok {
		return ""
	}
	if l, ok := it.(list.Labeled); ok {
		return l.Label()
	}
	return it.NodeID()
}
