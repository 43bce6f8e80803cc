package utils

import (
	"strings"
	"unicode"
)

// Canonicalize reduces a display form ("Déjà vu", "e-mail") to the
// uppercase A-Z key used for grid matching. Non-letters are dropped,
// accents are not transliterated.
func Canonicalize(display string) string {
	var b strings.Builder
	b.Grow(len(display))
	for _, r := range display {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r - 'a' + 'A')
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCanonical reports whether s is a valid canonical word (^[A-Z]+$).
func IsCanonical(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsPhrase reports whether a display form spans multiple words
// (spaces or hyphens) before canonicalization.
func IsPhrase(display string) bool {
	return strings.ContainsAny(display, " -")
}

// TitleCase lowercases a shouting word, keeping the leading capital.
// Used for seed entries that only exist in all-caps source lists.
func TitleCase(word string) string {
	if len(word) <= 1 {
		return strings.ToUpper(word)
	}
	return word[:1] + strings.ToLower(word[1:])
}

// ContainsDigits reports whether a string has any numeric runes.
// Seed lists occasionally carry entries like "PIAN0" that must be rejected.
func ContainsDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
