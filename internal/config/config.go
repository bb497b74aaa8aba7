package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/listkit/internal/config/layer"
	"github.com/dshills/listkit/internal/config/loader"
	"github.com/dshills/listkit/internal/config/watcher"
	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/event/events"
)

// Layer names.
const (
	layerDefaults = "defaults"
	layerFile     = "file"
	layerEnv      = "env"
	layerArgs     = "args"
)

// Config is the merged view of every configuration layer.
type Config struct {
	mu sync.RWMutex

	layers    *layer.Manager
	file      string
	envPrefix string
	overrides map[string]any
	fs        loader.FileSystem

	bus    event.Bus
	logger *slog.Logger

	watcher *watcher.Watcher
	closed  bool

	configErrors map[string]error
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the config file. The format follows the extension.
func WithFile(path string) Option {
	return func(c *Config) { c.file = path }
}

// WithEnvPrefix sets the environment variable prefix, "LISTKIT_" by
// default.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) { c.envPrefix = prefix }
}

// WithOverrides sets the command-line layer. Keys are dot-separated paths.
func WithOverrides(values map[string]any) Option {
	return func(c *Config) {
		for path, v := range values {
			layer.SetByPath(c.overrides, path, v)
		}
	}
}

// WithBus sets the bus reload notifications are published on.
func WithBus(b event.Bus) Option {
	return func(c *Config) { c.bus = b }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFileSystem replaces the file system the config file is read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) { c.fs = fsys }
}

// New creates a configuration holding only the built-in defaults.
// Call Load to read the other layers.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewManager(),
		envPrefix: loader.DefaultEnvPrefix,
		overrides: make(map[string]any),
		fs:        loader.DefaultFS(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layers.Set(layer.New(layerDefaults, layer.SourceBuiltin, defaultConfig()))
	return c
}

// File returns the config file path, or "".
func (c *Config) File() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.file
}

// Load reads the file, environment and override layers.
func (c *Config) Load(_ context.Context) error {
	if err := c.loadFile(); err != nil {
		return err
	}
	if err := c.loadEnv(); err != nil {
		return err
	}
	c.layers.Set(layer.New(layerArgs, layer.SourceArgs, c.overrides))
	return nil
}

// Reload re-reads the file and environment layers and returns the setting
// paths whose merged value changed.
func (c *Config) Reload() ([]string, error) {
	before := c.layers.Merge()
	if err := c.loadFile(); err != nil {
		return nil, err
	}
	if err := c.loadEnv(); err != nil {
		return nil, err
	}
	c.ClearConfigErrors()
	return layer.ChangedPaths(before, c.layers.Merge()), nil
}

func (c *Config) loadFile() error {
	path := c.File()
	if path == "" {
		return nil
	}
	l, err := loader.ForPath(c.fs, path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return err
	}
	if data == nil {
		c.logger.Debug("config file not found", "path", path)
	}
	lyr := layer.New(layerFile, layer.SourceFile, data)
	lyr.Path = path
	c.layers.Set(lyr)
	return nil
}

func (c *Config) loadEnv() error {
	data, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	c.layers.Set(layer.New(layerEnv, layer.SourceEnv, data))
	return nil
}

// Watch reloads the config file whenever it changes on disk until ctx is
// done or the config is closed. Each reload that changes a value publishes
// events.TopicConfigReloaded.
func (c *Config) Watch(ctx context.Context) error {
	path := c.File()
	if path == "" {
		return ErrNoFile
	}

	w, err := watcher.New(c.handleFileChange, watcher.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", path, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = w.Close()
		return ErrClosed
	}
	if c.watcher != nil {
		_ = c.watcher.Close()
	}
	c.watcher = w
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return nil
}

func (c *Config) handleFileChange(path string) {
	changed, err := c.Reload()
	if err != nil {
		c.logger.Warn("config reload failed", "path", path, "error", err)
		return
	}
	if len(changed) == 0 {
		return
	}
	c.logger.Info("config reloaded", "path", path, "changed", changed)

	if c.bus == nil {
		return
	}
	evt := event.NewEvent(events.TopicConfigReloaded, events.ConfigReloaded{
		Path:    filepath.Clean(path),
		Changed: changed,
	}, "config")
	if err := c.bus.Publish(context.Background(), evt); err != nil {
		c.logger.Warn("publish config reload failed", "error", err)
	}
}

// Close stops watching.
func (c *Config) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	c.watcher = nil
	return err
}

// Get returns the merged value at path.
func (c *Config) Get(path string) (any, bool) {
	return layer.GetByPath(c.layers.Merge(), path)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	return c.layers.Merge()
}

// Set writes value into the override layer.
func (c *Config) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if !c.layers.SetValue(layerArgs, path, value) {
		c.layers.Set(layer.New(layerArgs, layer.SourceArgs, c.overrides))
		c.layers.SetValue(layerArgs, path, value)
	}
	return nil
}

// GetString returns a string value at path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetFloat returns a float value at path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetDuration returns a duration written as a string ("50ms") or a number
// of milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("string %q", val)}
		}
		return d, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// GetStringSlice returns a list of strings at path. A single string is
// returned as a one-element slice.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
