package list

import (
	"context"
	"time"
)

// DebouncedLayout schedules Layout after the debounce delay. Each call
// restarts the delay, so a burst of calls runs one layout. A rescan request
// anywhere in the burst makes the layout rescan.
//
// With a Poster the layout runs on the host loop. Without one the timer only
// marks the layout due; it runs on the goroutine that next calls into the
// list, or inside UpdateComplete.
func (l *List) DebouncedLayout(rescan bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
	}
	l.rescan = l.rescan || rescan

	if l.ready != nil {
		l.waiting = append(l.waiting, l.ready)
	}
	l.ready = make(chan struct{})

	l.gen++
	gen := l.gen
	if l.poster != nil {
		l.timer = time.AfterFunc(l.debounce, func() {
			l.poster(func() { l.runDebounced(gen) })
		})
		return
	}

	l.dueGen = 0
	due := make(chan struct{})
	l.due = due
	l.timer = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if gen == l.gen && l.timer != nil && l.due == due {
			l.dueGen = gen
			close(due)
		}
	})
}

// flushDue runs a layout whose delay elapsed while no poster was set. It is
// a no-op otherwise.
func (l *List) flushDue() {
	l.mu.Lock()
	gen := l.dueGen
	l.dueGen = 0
	l.mu.Unlock()
	if gen != 0 {
		l.runDebounced(gen)
	}
}

// runDebounced executes the layout for cycle gen unless a later call
// replaced it, then resolves every signal handed out during the cycle.
func (l *List) runDebounced(gen uint64) {
	l.mu.Lock()
	if gen != l.gen || l.timer == nil {
		l.mu.Unlock()
		return
	}
	rescan := l.rescan
	l.rescan = false
	l.timer = nil
	l.due = nil
	l.mu.Unlock()

	l.Layout(rescan)

	l.mu.Lock()
	if l.timer == nil {
		l.resolveLocked()
	}
	l.mu.Unlock()
}

// resolveLocked closes the current and superseded ready signals.
func (l *List) resolveLocked() {
	for _, ch := range l.waiting {
		close(ch)
	}
	l.waiting = nil
	if l.ready != nil {
		close(l.ready)
		l.ready = nil
	}
}

// ItemsReady returns a channel closed once the pending debounced rescan has
// run. With nothing pending the channel is already closed. Without a Poster
// the rescan runs on the caller's next call into the list, so a caller
// blocking on this channel should use UpdateComplete instead.
func (l *List) ItemsReady() <-chan struct{} {
	l.flushDue()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return l.ready
}

// UpdateComplete waits for the pending debounced rescan. Without a Poster
// the rescan runs here, on the caller's goroutine.
func (l *List) UpdateComplete(ctx context.Context) error {
	for {
		l.flushDue()

		l.mu.Lock()
		ready, due := l.ready, l.due
		l.mu.Unlock()
		if ready == nil {
			return nil
		}

		select {
		case <-ready:
		case <-due:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
