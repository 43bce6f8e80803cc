package index

import (
	"fmt"
	"strings"
)

// Wildcard marks an unfilled cell in a pattern.
const Wildcard = '_'

// Pattern is a fixed-length letter constraint over {A-Z, '_'}.
// The zero value is invalid; build one with Parse or Empty.
type Pattern string

// Parse validates s as a pattern. Lowercase letters are accepted and
// folded; anything outside A-Z and the wildcard is rejected.
func Parse(s string) (Pattern, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty pattern")
	}
	up := strings.ToUpper(s)
	for i := 0; i < len(up); i++ {
		ch := up[i]
		if ch != Wildcard && (ch < 'A' || ch > 'Z') {
			return "", fmt.Errorf("pattern %q: invalid character %q at %d", s, ch, i)
		}
	}
	return Pattern(up), nil
}

// Empty returns a pattern of length n with every cell open.
func Empty(n int) Pattern {
	return Pattern(strings.Repeat(string(rune(Wildcard)), n))
}

// Len returns the pattern length.
func (p Pattern) Len() int { return len(p) }

// Complete reports whether every position is a fixed letter, which
// turns a count query into an exact lookup.
func (p Pattern) Complete() bool {
	return strings.IndexByte(string(p), Wildcard) < 0
}

// Fixed returns the number of non-wildcard positions.
func (p Pattern) Fixed() int {
	n := 0
	for i := 0; i < len(p); i++ {
		if p[i] != Wildcard {
			n++
		}
	}
	return n
}

// WithLetter returns a copy of p with the letter at pos overwritten.
// This is the single-cell overlay the crossing analyzer uses to
// simulate a placement.
func (p Pattern) WithLetter(pos int, letter byte) Pattern {
	b := []byte(p)
	b[pos] = letter
	return Pattern(b)
}

func (p Pattern) String() string { return string(p) }
