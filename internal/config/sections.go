package config

import (
	"errors"
	"maps"
	"time"

	"github.com/dshills/listkit/internal/logging"
)

// ListConfig holds the [list] section.
type ListConfig struct {
	Name           string
	Multi          bool
	WrapFocus      bool
	Activatable    bool
	Noninteractive bool
	Typeahead      bool
	ItemRoles      string
	RootTabbable   bool
	InnerRole      string
	InnerAriaLabel string
	EmptyMessage   string
	Debounce       time.Duration
}

// ThemeConfig holds the [theme] section. Colors are "#rrggbb" strings; an
// empty color leaves the terminal default.
type ThemeConfig struct {
	Fg             string
	Bg             string
	FocusedFg      string
	FocusedBg      string
	SelectedFg     string
	SelectedBg     string
	DisabledFg     string
	ActivatedBlend float64
	Marker         string
	SelectedMarker string
}

// PathsConfig holds the [paths] section.
type PathsConfig struct {
	Config string
	Script string
}

// List returns the list settings.
func (c *Config) List() ListConfig {
	return ListConfig{
		Name:           c.getStringOr("list.name", "main"),
		Multi:          c.getBoolOr("list.multi", false),
		WrapFocus:      c.getBoolOr("list.wrapFocus", false),
		Activatable:    c.getBoolOr("list.activatable", false),
		Noninteractive: c.getBoolOr("list.noninteractive", false),
		Typeahead:      c.getBoolOr("list.typeahead", false),
		ItemRoles:      c.getStringOr("list.itemRoles", ""),
		RootTabbable:   c.getBoolOr("list.rootTabbable", false),
		InnerRole:      c.getStringOr("list.innerRole", "listbox"),
		InnerAriaLabel: c.getStringOr("list.innerAriaLabel", ""),
		EmptyMessage:   c.getStringOr("list.emptyMessage", ""),
		Debounce:       c.getDurationOr("list.debounce", 50*time.Millisecond),
	}
}

// Keys returns the [keys] section: action name to key specs.
func (c *Config) Keys() map[string][]string {
	v, ok := c.Get("keys")
	if !ok {
		return nil
	}
	section, ok := v.(map[string]any)
	if !ok {
		c.recordConfigError("keys", &TypeError{Path: "keys", Expected: "table", Actual: typeName(v)})
		return nil
	}
	out := make(map[string][]string, len(section))
	for action := range section {
		if specs := c.getStringSliceOr("keys."+action, nil); len(specs) > 0 {
			out[action] = specs
		}
	}
	return out
}

// Log returns the [log] section as a logging configuration.
func (c *Config) Log() logging.Config {
	def := logging.DefaultConfig()
	return logging.Config{
		Level:      c.getStringOr("log.level", def.Level),
		Format:     c.getStringOr("log.format", def.Format),
		File:       c.getStringOr("log.file", def.File),
		MaxSizeMB:  c.getIntOr("log.maxSizeMB", def.MaxSizeMB),
		MaxBackups: c.getIntOr("log.maxBackups", def.MaxBackups),
		MaxAgeDays: c.getIntOr("log.maxAgeDays", def.MaxAgeDays),
		Compress:   c.getBoolOr("log.compress", def.Compress),
	}
}

// Theme returns the color settings.
func (c *Config) Theme() ThemeConfig {
	return ThemeConfig{
		Fg:             c.getStringOr("theme.fg", ""),
		Bg:             c.getStringOr("theme.bg", ""),
		FocusedFg:      c.getStringOr("theme.focusedFg", ""),
		FocusedBg:      c.getStringOr("theme.focusedBg", ""),
		SelectedFg:     c.getStringOr("theme.selectedFg", ""),
		SelectedBg:     c.getStringOr("theme.selectedBg", ""),
		DisabledFg:     c.getStringOr("theme.disabledFg", ""),
		ActivatedBlend: c.getFloatOr("theme.activatedBlend", 0),
		Marker:         c.getStringOr("theme.marker", "> "),
		SelectedMarker: c.getStringOr("theme.selectedMarker", "* "),
	}
}

// Paths returns the [paths] section.
func (c *Config) Paths() PathsConfig {
	return PathsConfig{
		Config: c.getStringOr("paths.config", ""),
		Script: c.getStringOr("paths.script", ""),
	}
}

// The getXOr helpers return the default for missing settings. Type errors
// also return the default but are recorded for ConfigErrors.

func (c *Config) getStringOr(path, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getFloatOr(path string, defaultValue float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil || v <= 0 {
		if err != nil {
			c.recordUnlessMissing(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return append([]string(nil), defaultValue...)
	}
	return v
}

func (c *Config) recordUnlessMissing(path string, err error) {
	if !errors.Is(err, ErrSettingNotFound) {
		c.recordConfigError(path, err)
	}
}

// recordConfigError keeps the first error seen for each path.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
		c.logger.Warn("invalid setting", "path", path, "error", err)
	}
}

// ConfigErrors returns the type errors met by section accessors.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	return maps.Clone(c.configErrors)
}

// ClearConfigErrors forgets recorded errors.
func (c *Config) ClearConfigErrors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors = nil
}
