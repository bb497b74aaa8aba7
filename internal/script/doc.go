// Package script runs a Lua file that supplies list items and reacts to
// list notifications.
//
// A script may define:
//
//	items = { "apple", { text = "banana", value = "b", selected = true }, "---" }
//
//	function on_selected(indices, added, removed) end
//	function on_action(index, text) return true end
//
// items may also be a function returning such a table. The string "---"
// and tables with separator = true become separators. Indices passed to
// hooks are zero-based. on_action returning true asks the host to finish.
//
// The state opens only the base, table, string and math libraries, plus a
// listkit table whose log function writes to the application log.
package script
