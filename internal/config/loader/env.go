package loader

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/listkit/internal/config/layer"
	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix scanned for configuration variables.
const DefaultEnvPrefix = "LISTKIT_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":      "log.level",
		prefix + "LOG_FILE":       "log.file",
		prefix + "MULTI":          "list.multi",
		prefix + "WRAP_FOCUS":     "list.wrapFocus",
		prefix + "ACTIVATABLE":    "list.activatable",
		prefix + "NONINTERACTIVE": "list.noninteractive",
		prefix + "TYPEAHEAD":      "list.typeahead",
		prefix + "ITEM_ROLES":     "list.itemRoles",
		prefix + "EMPTY_MESSAGE":  "list.emptyMessage",
		prefix + "DEBOUNCE":       "list.debounce",
		prefix + "CONFIG":         "paths.config",
		prefix + "SCRIPT":         "paths.script",
	}
}

// AddMapping maps envVar to a config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads every mapped or prefixed variable. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		layer.SetByPath(config, path, ParseValue(value))
	}
	return config, nil
}

// envToPath converts LISTKIT_THEME_SELECTED_FG to theme.selectedFg.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}
	setting := strings.ToLower(parts[1])
	for _, p := range parts[2:] {
		if p != "" {
			setting += strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
	}
	return section + "." + setting
}

// ParseValue guesses the type of an environment or command-line value.
func ParseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if _, err := time.ParseDuration(s); err == nil {
		return s
	}
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}
