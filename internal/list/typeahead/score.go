package typeahead

import (
	"strings"
	"unicode"
)

// Score weights.
const (
	baseScore        = 100
	consecutiveBonus = 20
	boundaryBonus    = 15
	firstRuneBonus   = 25
	exactPrefixBonus = 50
	gapPenalty       = 2
	shortLabelLimit  = 20
)

// Score matches the lowercased query q against label. ok is false unless
// every rune of q appears in order.
func Score(q []rune, label string) (score int, ok bool) {
	original := []rune(label)
	lower := []rune(strings.ToLower(label))
	if len(q) == 0 || len(lower) == 0 {
		return 0, false
	}

	matches := make([]int, 0, len(q))
	qi := 0
	for i := 0; i < len(lower) && qi < len(q); i++ {
		if lower[i] == q[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(q) {
		return 0, false
	}

	score = baseScore
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += consecutiveBonus
		}
	}
	for _, idx := range matches {
		if isBoundary(original, idx) {
			score += boundaryBonus
		}
	}
	if matches[0] == 0 {
		score += firstRuneBonus
	} else {
		score -= matches[0]
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		score -= gap * gapPenalty
	}
	if len(lower) < shortLabelLimit {
		score += shortLabelLimit - len(lower)
	}
	if hasPrefix(lower, q) {
		score += exactPrefixBonus
	}
	return max(score, 1), true
}

func hasPrefix(text, q []rune) bool {
	if len(text) < len(q) {
		return false
	}
	for i, r := range q {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isBoundary reports whether idx starts a word: the first rune, a rune
// after space or punctuation, or an upper-case rune after a lower-case one.
func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
