package search

import (
	"strings"
	"unicode"
)

// Term extraction bounds
const (
	MaxTerms     = 5
	MinTermRunes = 2
	MaxTermRunes = 30
)

// ExtractTerms derives candidate search terms from free text: the whole
// trimmed string, punctuation-segmented tokens of MinTermRunes to
// MaxTermRunes runes, and contiguous runs of CJK or digit runes of length
// at least MinTermRunes. Terms are deduplicated preserving first-seen order
// and capped at MaxTerms.
func ExtractTerms(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	terms := []string{}
	seen := make(map[string]struct{})
	add := func(term string) {
		if len(terms) >= MaxTerms {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	add(trimmed)

	for _, token := range splitTokens(trimmed) {
		if n := len([]rune(token)); n >= MinTermRunes && n <= MaxTermRunes {
			add(token)
		}
	}

	for _, run := range scriptRuns(trimmed) {
		add(run)
	}

	return terms
}

// splitTokens segments text on whitespace, punctuation, and symbols.
func splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// scriptRuns collects contiguous runs of CJK or digit runes.
func scriptRuns(text string) []string {
	var runs []string
	var current []rune

	flush := func() {
		if len(current) >= MinTermRunes {
			runs = append(runs, string(current))
		}
		current = current[:0]
	}

	for _, r := range text {
		if isCJK(r) || unicode.IsDigit(r) {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()

	return runs
}

// isCJK reports whether r belongs to the Han, Hiragana, or Katakana scripts.
func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}
