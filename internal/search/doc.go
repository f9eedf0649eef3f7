// Package search implements free-text monument search.
//
// Free text is reduced to at most five candidate terms: the whole trimmed
// string, punctuation-segmented tokens of 2 to 30 runes, and contiguous
// CJK or digit runs of 2 or more runes. The upstream API has no cross-entity
// text index, so the searcher cascades: poem text matches first, then
// inscription containment, then an unfiltered page as the final fallback so
// a query never comes back empty-handed.
package search
