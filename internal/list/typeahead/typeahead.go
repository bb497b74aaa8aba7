// Package typeahead moves list focus to the item whose label best matches
// the characters typed in quick succession.
//
// Labels match when the query is a case-insensitive subsequence. Scores
// favor prefix and word-boundary matches, so "gr" prefers "Grape" over
// "Orange" and "bp" finds "Blood Peach".
package typeahead

import (
	"strings"
	"sync"
	"time"
)

// DefaultTimeout is the pause after which typing starts a new query.
const DefaultTimeout = 500 * time.Millisecond

// Buffer accumulates typed runes into a query.
type Buffer struct {
	mu      sync.Mutex
	query   []rune
	last    time.Time
	timeout time.Duration
	now     func() time.Time
}

// NewBuffer returns a buffer that resets after timeout without input.
func NewBuffer(timeout time.Duration) *Buffer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Buffer{timeout: timeout, now: time.Now}
}

// Add appends r and returns the query. A pause longer than the timeout
// discards the previous query first.
func (b *Buffer) Add(r rune) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) > b.timeout {
		b.query = b.query[:0]
	}
	b.last = now
	b.query = append(b.query, r)
	return string(b.query)
}

// Query returns the current query.
func (b *Buffer) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.query)
}

// Reset discards the query.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = b.query[:0]
	b.last = time.Time{}
}

// Match returns the position of the first label, walking forward from
// start and wrapping, that begins with query. Without such a label it
// returns the best-scoring subsequence match, or -1. skip excludes
// positions such as disabled items.
func Match(query string, labels []string, start int, skip func(int) bool) int {
	q := []rune(strings.ToLower(query))
	n := len(labels)
	if len(q) == 0 || n == 0 {
		return -1
	}
	start = ((start % n) + n) % n

	best, bestScore := -1, 0
	for k := range n {
		i := (start + k) % n
		if skip != nil && skip(i) {
			continue
		}
		s, ok := Score(q, labels[i])
		if !ok {
			continue
		}
		if hasPrefix([]rune(strings.ToLower(labels[i])), q) {
			return i
		}
		if s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// Next picks the item after current for a query. A query made of one
// repeated rune cycles through the items matching that rune; a longer
// query refines in place.
func Next(query string, labels []string, current int, skip func(int) bool) int {
	start := current
	if isRepeated(query) {
		start = current + 1
	}
	if start < 0 {
		start = 0
	}
	if isRepeated(query) {
		query = string([]rune(query)[:1])
	}
	return Match(query, labels, start, skip)
}

func isRepeated(query string) bool {
	r := []rune(query)
	if len(r) == 0 {
		return false
	}
	for _, c := range r[1:] {
		if c != r[0] {
			return false
		}
	}
	return true
}
