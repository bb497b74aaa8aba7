// Package config loads listkit settings from layered sources.
//
// Layers, lowest priority first:
//
//   - built-in defaults
//   - a TOML or YAML file chosen by extension
//   - LISTKIT_* environment variables
//   - command-line overrides
//
// Values are addressed by dot-separated paths such as "list.wrapFocus".
// Typed section accessors (List, Keys, Log, Theme) fall back to defaults on
// missing or mistyped values and record the mistakes in ConfigErrors.
//
// Watch re-reads the file when it changes on disk and publishes
// events.TopicConfigReloaded with the paths whose values changed.
package config
