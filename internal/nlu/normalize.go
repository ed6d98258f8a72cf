// Package nlu implements the heuristic language-understanding pipeline:
// text normalization, string similarity, entity extraction, sentiment
// estimation, and intent resolution. Everything here is deterministic
// given the input text and session history.
package nlu

import "strings"

// Normalize lowercases the text, replaces every character outside the
// word/whitespace class with a space, collapses whitespace runs, and
// trims. Pure and total: empty input yields the empty string.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens normalizes the text and splits it into word tokens.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}

// tokenSet builds a duplicate-free token set from normalized text.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokens(text) {
		set[t] = struct{}{}
	}
	return set
}
