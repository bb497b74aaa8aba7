// Package key describes keyboard input delivered to a list.
//
// A key press is an Event: a Key (a named key or KeyRune), the typed rune
// for KeyRune, and any held Modifier. Bindings are written as specs:
//
//   - Named keys: "Down", "Home", "Enter", "Space"
//   - Characters: "j", "K", "?"
//   - Modifier form: "Ctrl+N", "Alt+Enter"
//   - Bracket form: "<C-n>", "<CR>", "<S-Tab>"
//
// Parse turns a spec into an Event and Event.Spec renders one back, so
// specs read from config compare with Equals against terminal input.
package key
