package subtitle

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinOverlap is the shortest suffix/prefix overlap the deduplicator
// will treat as a rolling-caption repetition. Empirically chosen; shorter
// matches are too often genuine word boundaries.
const DefaultMinOverlap = 4

// LongestOverlap returns the greatest L, at least minOverlap, such that the
// last L runes of prev equal the first L runes of cur. Returns 0 when no
// qualifying overlap exists. The scan runs from longest to shortest, so the
// longest exact match always wins.
func LongestOverlap(prev, cur string, minOverlap int) int {
	if prev == "" || cur == "" {
		return 0
	}
	if minOverlap < 1 {
		minOverlap = 1
	}
	p := []rune(prev)
	c := []rune(cur)
	max := len(p)
	if len(c) < max {
		max = len(c)
	}
	for l := max; l >= minOverlap; l-- {
		if string(p[len(p)-l:]) == string(c[:l]) {
			return l
		}
	}
	return 0
}

// Deduplicate removes the rolling-caption artifact where the trailing
// fragment of one caption repeats at the start of the next.
//
// Overlap comparisons chain against the text that was actually retained for
// the previous kept entry, not the raw input, so cascaded repetitions
// collapse in a single pass. Entries whose retained text is a single rune or
// empty are dropped entirely; timestamps of kept entries are untouched.
func Deduplicate(entries []Entry, minOverlap int) []Entry {
	if minOverlap <= 0 {
		minOverlap = DefaultMinOverlap
	}

	out := make([]Entry, 0, len(entries))
	prev := ""
	for _, e := range entries {
		cur := strings.TrimSpace(e.Text)
		retained := cur
		if len(out) > 0 {
			if l := LongestOverlap(prev, cur, minOverlap); l > 0 {
				retained = strings.TrimSpace(string([]rune(cur)[l:]))
			}
		}
		if utf8.RuneCountInString(retained) <= 1 {
			continue
		}
		e.Text = retained
		out = append(out, e)
		prev = retained
	}
	return out
}
