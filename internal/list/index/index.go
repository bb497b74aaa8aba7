// Package index models list selection: a single position or a set of
// positions, and the difference between two selections.
package index

import (
	"slices"
	"strconv"
	"strings"
)

// Index is a selection target: either a Single position or a Set.
type Index interface {
	isIndex()
	String() string
}

// Single is one selected position. None (-1) means nothing is selected.
type Single int

// None is the empty single selection.
const None Single = -1

func (Single) isIndex() {}

// String returns the decimal position, or "none".
func (s Single) String() string {
	if s < 0 {
		return "none"
	}
	return strconv.Itoa(int(s))
}

// Set is an unordered collection of selected positions.
type Set map[int]struct{}

func (Set) isIndex() {}

// NewSet returns a set holding the given positions.
func NewSet(indices ...int) Set {
	s := make(Set, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether i is in the set.
func (s Set) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Add inserts i.
func (s Set) Add(i int) {
	s[i] = struct{}{}
}

// Remove deletes i.
func (s Set) Remove(i int) {
	delete(s, i)
}

// Len returns the number of positions.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the positions in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Min returns the lowest position, or -1 for an empty set.
func (s Set) Min() int {
	if len(s) == 0 {
		return -1
	}
	return s.Sorted()[0]
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for i := range s {
		out[i] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same positions.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !other.Has(i) {
			return false
		}
	}
	return true
}

// String renders the set as "{0,2,5}".
func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, i := range s.Sorted() {
		parts = append(parts, strconv.Itoa(i))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// IsSet reports whether idx is a Set.
func IsSet(idx Index) bool {
	_, ok := idx.(Set)
	return ok
}

// CreateSetFromIndex normalizes any Index to a Set. None and nil yield an
// empty set.
func CreateSetFromIndex(idx Index) Set {
	switch v := idx.(type) {
	case Set:
		return v.Clone()
	case Single:
		if v < 0 {
			return Set{}
		}
		return NewSet(int(v))
	default:
		return Set{}
	}
}

// Diff lists the positions that entered and left a selection.
type Diff struct {
	Added   Set
	Removed Set
}

// Compute returns the difference going from old to next.
func Compute(old, next Index) Diff {
	before := CreateSetFromIndex(old)
	after := CreateSetFromIndex(next)

	d := Diff{Added: Set{}, Removed: Set{}}
	for i := range after {
		if !before.Has(i) {
			d.Added.Add(i)
		}
	}
	for i := range before {
		if !after.Has(i) {
			d.Removed.Add(i)
		}
	}
	return d
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return d.Added.Len() == 0 && d.Removed.Len() == 0
}
