// Package foundation holds the selection and focus state machine behind a
// list control.
//
// The Controller owns which positions are selected and which position holds
// the roving tab stop. It never touches items directly; every effect goes
// through an Adapter, which the hosting list implements over its registry.
//
// Selection is either an index.Single (single mode) or an index.Set (multi
// mode). Every selection command raises NotifySelected, even when nothing
// changed, so observers can treat it as "command processed".
//
// Keyboard input is mapped to a small set of actions by a Keymap:
//
//	next, prev      move the tab stop, skipping disabled items
//	first, last     jump to the first or last enabled item
//	activate        select when activatable, then raise an action
//	select          select the focused item (activatable lists only)
package foundation
