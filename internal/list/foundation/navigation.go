package foundation

// nextIndex steps from `from` by step (+1 or -1), skipping disabled items.
// Without wrapFocus, reaching either end leaves the position unchanged, as
// does a list where every candidate is disabled. from of -1 starts before
// the first item, or after the last when stepping backwards.
func (c *Controller) nextIndex(from, step int) int {
	n := c.adapter.ItemCount()
	if n == 0 {
		return from
	}

	i := from
	if i < 0 && step < 0 {
		i = n
	}
	for range n {
		i += step
		switch {
		case i >= n:
			if !c.wrapFocus {
				return from
			}
			i = 0
		case i < 0:
			if !c.wrapFocus {
				return from
			}
			i = n - 1
		}
		if i == from {
			return from
		}
		if !c.adapter.IsDisabled(i) {
			return i
		}
	}
	return from
}

// edgeIndex returns the first enabled item scanning from the start (dir +1)
// or the end (dir -1), or from when none is enabled.
func (c *Controller) edgeIndex(from, dir int) int {
	n := c.adapter.ItemCount()
	start, end := 0, n
	if dir < 0 {
		start, end = n-1, -1
	}
	for i := start; i != end; i += dir {
		if !c.adapter.IsDisabled(i) {
			return i
		}
	}
	return from
}
