// Package textnorm canonicalizes free text before any comparison.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize lowercases text, turns every rune that is not a letter, digit,
// underscore, whitespace, '+', '#' or '.' into a space, and collapses
// whitespace runs. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	mapped := strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if keep(r) {
			return r
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}

func keep(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
		return true
	case r == '_', r == '+', r == '#', r == '.':
		return true
	}
	return false
}

// RemoveStopwords drops English stopwords from whitespace separated text,
// keeping technical terms.
func RemoveStopwords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if !IsStopword(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Tokens returns the vector-space terms of text: normalized words with
// trailing dots trimmed. Tokens without a letter or digit are dropped, as
// are single-rune tokens outside the technical allowlist.
func Tokens(text string) []string {
	fields := strings.Fields(Normalize(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, ".")
		if !hasAlnum(f) {
			continue
		}
		if utf8.RuneCountInString(f) < 2 && !IsTechnical(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
