package foundation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/listkit/internal/input/key"
	"github.com/dshills/listkit/internal/list/index"
)

type fakeItem struct {
	disabled  bool
	selected  bool
	activated bool
	tabStop   bool
}

type selectedNote struct {
	idx  index.Index
	diff index.Diff
}

type fakeAdapter struct {
	items    []*fakeItem
	focused  int
	selected []selectedNote
	actions  []int

	// calls logs tab stop and focus changes in order.
	calls []string
}

func newFakeAdapter(n int) *fakeAdapter {
	a := &fakeAdapter{focused: -1}
	for range n {
		a.items = append(a.items, &fakeItem{})
	}
	return a
}

func (a *fakeAdapter) item(i int) *fakeItem {
	if i < 0 || i >= len(a.items) {
		return &fakeItem{}
	}
	return a.items[i]
}

func (a *fakeAdapter) ItemCount() int             { return len(a.items) }
func (a *fakeAdapter) IsDisabled(i int) bool      { return a.item(i).disabled }
func (a *fakeAdapter) IsSelected(i int) bool      { return a.item(i).selected }
func (a *fakeAdapter) SetSelected(i int, v bool)  { a.item(i).selected = v }
func (a *fakeAdapter) SetActivated(i int, v bool) { a.item(i).activated = v }
func (a *fakeAdapter) NotifyAction(i int)         { a.actions = append(a.actions, i) }
func (a *fakeAdapter) NotifySelected(idx index.Index, diff index.Diff) {
	a.selected = append(a.selected, selectedNote{idx: idx, diff: diff})
}

func (a *fakeAdapter) SetTabStop(i int, inFlow bool) {
	a.item(i).tabStop = inFlow
	a.calls = append(a.calls, fmt.Sprintf("SetTabStop(%d,%t)", i, inFlow))
}

func (a *fakeAdapter) FocusItem(i int) {
	a.focused = i
	a.calls = append(a.calls, fmt.Sprintf("FocusItem(%d)", i))
}

func (a *fakeAdapter) selectedFlags() []int {
	var out []int
	for i, it := range a.items {
		if it.selected {
			out = append(out, i)
		}
	}
	return out
}

func (a *fakeAdapter) tabStops() []int {
	var out []int
	for i, it := range a.items {
		if it.tabStop {
			out = append(out, i)
		}
	}
	return out
}

var (
	keyDown  = key.Special(key.KeyDown, key.ModNone)
	keyUp    = key.Special(key.KeyUp, key.ModNone)
	keyHome  = key.Special(key.KeyHome, key.ModNone)
	keyEnd   = key.Special(key.KeyEnd, key.ModNone)
	keyEnter = key.Special(key.KeyEnter, key.ModNone)
	keySpace = key.Char(' ', key.ModNone)
)

func TestSingleSelectInvariant(t *testing.T) {
	a := newFakeAdapter(4)
	c := New(a)

	requests := []struct {
		index int
		want  bool
	}{
		{2, true}, {0, true}, {0, false}, {3, true}, {1, false}, {3, true},
	}
	for _, r := range requests {
		c.HandleSingleSelection(r.index, false, r.want)

		flags := a.selectedFlags()
		require.LessOrEqual(t, len(flags), 1)
		if s := c.SelectedIndex().(index.Single); s == index.None {
			assert.Empty(t, flags)
		} else {
			assert.Equal(t, []int{int(s)}, flags)
		}
	}
	assert.Equal(t, index.Single(3), c.SelectedIndex())
}

func TestDeselectSelectedItem(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	c.HandleSingleSelection(1, false, true)
	c.HandleSingleSelection(1, false, false)

	assert.Equal(t, index.None, c.SelectedIndex())
	assert.Empty(t, a.selectedFlags())
	require.Len(t, a.selected, 2)
	assert.Equal(t, []int{1}, a.selected[1].diff.Removed.Sorted())
}

func TestIdempotentReselection(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	c.SetSelectedIndex(index.Single(1))
	before := *a.items[1]
	c.SetSelectedIndex(index.Single(1))

	assert.Equal(t, before, *a.items[1])
	assert.Equal(t, []int{1}, a.selectedFlags())
	require.Len(t, a.selected, 2)
	assert.True(t, a.selected[1].diff.Empty())
}

func TestSetSelectedIndexIgnoresInvalidTargets(t *testing.T) {
	a := newFakeAdapter(2)
	c := New(a)

	c.SetSelectedIndex(index.Single(5))
	c.SetSelectedIndex(index.NewSet(0))
	c.SetSelectedIndex(nil)

	assert.Empty(t, a.selected)
	assert.Equal(t, index.None, c.SelectedIndex())

	c.SetMulti(true)
	c.SetSelectedIndex(index.Single(0))
	c.SetSelectedIndex(index.NewSet(0, 9))
	assert.Empty(t, a.selected)
}

func TestMultiSelectConsistency(t *testing.T) {
	a := newFakeAdapter(5)
	c := New(a)
	c.SetMulti(true)

	toggles := []struct {
		index int
		on    bool
	}{
		{4, true}, {1, true}, {4, false}, {2, true}, {0, true}, {2, false}, {2, false},
	}
	for _, tg := range toggles {
		c.ToggleMultiAtIndex(tg.index, tg.on)

		set := c.SelectedIndex().(index.Set)
		flags := a.selectedFlags()
		if flags == nil {
			flags = []int{}
		}
		assert.Equal(t, set.Sorted(), flags)
	}
}

func TestMultiToggleScenario(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)
	c.SetMulti(true)

	c.ToggleMultiAtIndex(2, true)
	c.ToggleMultiAtIndex(0, true)
	c.ToggleMultiAtIndex(2, false)

	assert.Equal(t, []int{0}, c.SelectedIndex().(index.Set).Sorted())
	require.Len(t, a.selected, 3)
	for _, n := range a.selected {
		assert.Equal(t, 1, n.diff.Added.Len()+n.diff.Removed.Len())
	}
	assert.Equal(t, []int{2}, a.selected[2].diff.Removed.Sorted())
}

func TestToggleIgnoredInSingleMode(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	c.ToggleMultiAtIndex(1, true)

	assert.Empty(t, a.selected)
	assert.Empty(t, a.selectedFlags())
}

func TestHandleSingleSelectionDisabled(t *testing.T) {
	a := newFakeAdapter(3)
	a.items[1].disabled = true
	c := New(a)

	c.HandleSingleSelection(1, true, true)

	assert.Empty(t, a.selected)
	assert.Empty(t, a.actions)
}

func TestHandleSingleSelectionInteractionRaisesAction(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	c.HandleSingleSelection(2, true, true)
	c.HandleSingleSelection(0, false, true)

	assert.Equal(t, []int{2}, a.actions)
	assert.Len(t, a.selected, 2)
}

func TestHandleSingleSelectionMultiDelegatesToToggle(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)
	c.SetMulti(true)

	c.HandleSingleSelection(0, false, true)
	c.HandleSingleSelection(2, false, true)
	c.HandleSingleSelection(0, false, false)

	assert.Equal(t, []int{2}, c.SelectedIndex().(index.Set).Sorted())
}

func TestActivatedFollowsSelectionWhenActivatable(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)
	c.SetActivatable(true)

	c.SetSelectedIndex(index.Single(1))
	assert.True(t, a.items[1].activated)

	c.SetSelectedIndex(index.Single(2))
	assert.False(t, a.items[1].activated)
	assert.True(t, a.items[2].activated)
}

func TestDisabledSkip(t *testing.T) {
	a := newFakeAdapter(4)
	a.items[1].disabled = true
	a.items[3].disabled = true
	c := New(a)
	c.SetTabStopIndex(0)

	consumed := c.HandleKeydown(keyDown, true, 0)

	assert.True(t, consumed)
	assert.Equal(t, 2, c.TabStopIndex())
	assert.Equal(t, 2, a.focused)
	assert.Equal(t, []int{2}, a.tabStops())
}

func TestAllDisabledRetainsIndex(t *testing.T) {
	a := newFakeAdapter(3)
	for _, it := range a.items {
		it.disabled = true
	}
	c := New(a)
	c.SetWrapFocus(true)
	c.SetTabStopIndex(1)

	c.HandleKeydown(keyDown, true, 1)
	assert.Equal(t, 1, c.TabStopIndex())

	c.HandleKeydown(keyEnd, true, 1)
	assert.Equal(t, 1, c.TabStopIndex())
}

func TestWrapFocus(t *testing.T) {
	tests := []struct {
		name string
		wrap bool
		key  key.Event
		from int
		want int
	}{
		{"next at end without wrap", false, keyDown, 3, 3},
		{"next at end with wrap", true, keyDown, 3, 0},
		{"prev at start without wrap", false, keyUp, 0, 0},
		{"prev at start with wrap", true, keyUp, 0, 3},
		{"next in middle", false, keyDown, 1, 2},
		{"home", false, keyHome, 2, 0},
		{"end", false, keyEnd, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFakeAdapter(4)
			c := New(a)
			c.SetWrapFocus(tt.wrap)
			c.SetTabStopIndex(tt.from)

			c.HandleKeydown(tt.key, true, tt.from)

			assert.Equal(t, tt.want, c.TabStopIndex())
			assert.Equal(t, []int{tt.want}, a.tabStops())
		})
	}
}

func TestKeydownFromNoFocus(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	c.HandleKeydown(keyUp, true, -1)

	assert.Equal(t, 2, c.TabStopIndex())
}

func TestKeydownEmptyList(t *testing.T) {
	c := New(newFakeAdapter(0))
	assert.False(t, c.HandleKeydown(keyDown, true, 0))
	assert.Equal(t, -1, c.TabStopIndex())
}

func TestActivateKey(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	assert.True(t, c.HandleKeydown(keyEnter, true, 1))
	assert.Equal(t, []int{1}, a.actions)
	assert.Empty(t, a.selected, "non-activatable lists only raise the action")

	c.SetActivatable(true)
	c.HandleKeydown(keyEnter, true, 2)
	assert.Equal(t, index.Single(2), c.SelectedIndex())
	assert.Equal(t, []int{1, 2}, a.actions)

	assert.False(t, c.HandleKeydown(keyEnter, false, 0), "nested controls keep activation keys")
}

func TestSelectKey(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	assert.False(t, c.HandleKeydown(keySpace, true, 0))

	c.SetActivatable(true)
	c.SetMulti(true)
	assert.True(t, c.HandleKeydown(keySpace, true, 0))
	assert.True(t, c.HandleKeydown(keySpace, true, 2))
	assert.True(t, c.HandleKeydown(keySpace, true, 0))

	assert.Equal(t, []int{2}, c.SelectedIndex().(index.Set).Sorted())
	assert.Empty(t, a.actions)
}

func TestUnboundKeyNotConsumed(t *testing.T) {
	c := New(newFakeAdapter(2))
	assert.False(t, c.HandleKeydown(key.Char('x', key.ModNone), true, 0))
}

func TestFocusIn(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)

	c.HandleFocusIn(-1)
	assert.Equal(t, -1, c.TabStopIndex())

	c.HandleFocusIn(2)
	assert.Equal(t, 2, c.TabStopIndex())

	c.HandleFocusIn(0)
	assert.Equal(t, 2, c.TabStopIndex(), "existing tab stop is kept")

	c.HandleFocusOut(2)
	assert.Equal(t, []int{2}, a.tabStops())
}

func TestClearAndSetTabStop(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)
	c.SetTabStopIndex(1)

	assert.Equal(t, 1, c.ClearTabStop())
	assert.Empty(t, a.tabStops())
	assert.Equal(t, -1, c.ClearTabStop())

	a.items[2].tabStop = true
	c.SetTabStopIndex(0)
	assert.Equal(t, []int{0}, a.tabStops())
}

func TestFocusItemAtIndex(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)
	c.SetTabStopIndex(0)

	c.FocusItemAtIndex(2)
	assert.Equal(t, []int{2}, a.tabStops())
	assert.Equal(t, 2, a.focused)

	c.FocusItemAtIndex(7)
	assert.Equal(t, 2, a.focused)
}

func TestFocusMoveOrder(t *testing.T) {
	a := newFakeAdapter(4)
	c := New(a)
	c.SetTabStopIndex(0)

	steps := []struct {
		name string
		move func()
		want []string
	}{
		{"Next", func() { c.HandleKeydown(keyDown, true, 0) },
			[]string{"SetTabStop(0,false)", "SetTabStop(1,true)", "FocusItem(1)"}},
		{"Prev", func() { c.HandleKeydown(keyUp, true, 1) },
			[]string{"SetTabStop(1,false)", "SetTabStop(0,true)", "FocusItem(0)"}},
		{"Last", func() { c.HandleKeydown(keyEnd, true, 0) },
			[]string{"SetTabStop(0,false)", "SetTabStop(3,true)", "FocusItem(3)"}},
		{"First", func() { c.HandleKeydown(keyHome, true, 3) },
			[]string{"SetTabStop(3,false)", "SetTabStop(0,true)", "FocusItem(0)"}},
		{"FocusItemAtIndex", func() { c.FocusItemAtIndex(2) },
			[]string{"SetTabStop(0,false)", "SetTabStop(2,true)", "FocusItem(2)"}},
	}
	for _, step := range steps {
		a.calls = nil
		step.move()
		if !assert.Equal(t, step.want, a.calls, step.name) {
			return
		}
	}
}

func TestSetMultiResetsSelection(t *testing.T) {
	a := newFakeAdapter(3)
	c := New(a)
	c.SetSelectedIndex(index.Single(1))

	c.SetMulti(true)
	assert.Equal(t, 0, c.SelectedIndex().(index.Set).Len())

	c.SetMulti(false)
	assert.Equal(t, index.None, c.SelectedIndex())
}
