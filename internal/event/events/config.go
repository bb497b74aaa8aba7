package events

import "github.com/dshills/listkit/internal/event/topic"

// TopicConfigReloaded is published after a watched config file is re-read.
const TopicConfigReloaded topic.Topic = "config.reloaded"

// ConfigReloaded lists the settings whose value changed.
type ConfigReloaded struct {
	// Path is the file that triggered the reload.
	Path string

	// Changed holds dot-notation setting paths (e.g. "list.wrapFocus").
	Changed []string
}
