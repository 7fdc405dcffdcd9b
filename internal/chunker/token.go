// Package chunker splits a deduplicated subtitle entry sequence into
// overlapping token-bounded chunks aligned to entry boundaries.
package chunker

import "github.com/dgallion1/vidnotes/internal/subtitle"

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// CountTokens counts sizing tokens in text: each CJK ideograph is one token,
// each maximal run of ASCII letters or digits is one token. Punctuation and
// whitespace count for nothing.
func CountTokens(text string) int {
	count := 0
	inRun := false
	for _, r := range text {
		switch {
		case isCJK(r):
			count++
			inRun = false
		case isASCIIAlnum(r):
			if !inRun {
				count++
				inRun = true
			}
		default:
			inRun = false
		}
	}
	return count
}

// EntryTokens is CountTokens with a floor of 1, so an entry with no countable
// tokens still advances the chunk walk.
func EntryTokens(e subtitle.Entry) int {
	if n := CountTokens(e.Text); n > 0 {
		return n
	}
	return 1
}
