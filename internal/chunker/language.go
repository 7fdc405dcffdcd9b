package chunker

// Language is the detected dominant language class of a transcript, used
// upstream to pick chunk size and overlap.
type Language string

const (
	LanguageCJK   Language = "cjk"
	LanguageLatin Language = "latin"
)

// DetectLanguage classifies text as CJK when at least 10% of its runes are
// CJK ideographs. Empty text defaults to Latin.
func DetectLanguage(text string) Language {
	total := 0
	cjk := 0
	for _, r := range text {
		total++
		if isCJK(r) {
			cjk++
		}
	}
	if total > 0 && float64(cjk)/float64(total) >= 0.1 {
		return LanguageCJK
	}
	return LanguageLatin
}
