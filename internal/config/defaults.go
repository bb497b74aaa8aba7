package config

// defaultConfig returns the built-in layer. Keys are absent on purpose:
// the [keys] section only overrides the default keymap.
func defaultConfig() map[string]any {
	return map[string]any{
		"list": map[string]any{
			"name":           "main",
			"multi":          false,
			"wrapFocus":      false,
			"activatable":    false,
			"noninteractive": false,
			"typeahead":      false,
			"itemRoles":      "",
			"rootTabbable":   false,
			"innerRole":      "listbox",
			"innerAriaLabel": "",
			"emptyMessage":   "No items",
			"debounce":       "50ms",
		},
		"log": map[string]any{
			"level":      "warn",
			"format":     "text",
			"file":       "",
			"maxSizeMB":  int64(10),
			"maxBackups": int64(3),
			"maxAgeDays": int64(28),
			"compress":   false,
		},
		"theme": map[string]any{
			"fg":             "#d0d0d0",
			"bg":             "",
			"focusedFg":      "#ffffff",
			"focusedBg":      "#3a3a3a",
			"selectedFg":     "#000000",
			"selectedBg":     "#87afd7",
			"disabledFg":     "#6c6c6c",
			"activatedBlend": 0.35,
			"marker":         "> ",
			"selectedMarker": "* ",
		},
		"paths": map[string]any{
			"config": "",
			"script": "",
		},
	}
}
