// Package bubble hosts a list in a Bubble Tea program.
//
// Model adapts tea messages to the list: key messages become key events
// routed with the host's focus path, left clicks raise interaction
// selection requests, and wheel messages scroll. Debounced rescans run on
// the program loop through Poster.
//
//	host := list.NewSliceHost(nodes...)
//	m := bubble.New(host, bubble.WithQuitOnAction(bus))
//	p := tea.NewProgram(m)
//	l := list.New(host, list.WithBus(bus), list.WithPoster(bubble.Poster(p)))
//	m.Attach(l)
package bubble
