package baseconv

import (
	"strings"

	"github.com/agbru/convkit/internal/numeric"
)

// Detection is the routing decision for a pasted string.
type Detection struct {
	// Base is the field base that should receive the text.
	Base int
	// Prefix is the literal prefix Set should strip, or "".
	Prefix string
	// Text is the trimmed input, prefix included.
	Text string
}

var detectPrefixes = []struct {
	prefix string
	base   int
}{
	{"0x", 16},
	{"0b", 2},
	{"0o", 8},
}

// Detect picks the base of a pasted string. Prefixes win over content: "0x",
// "0b" and "0o" select bases 16, 2 and 8. Otherwise text containing letters
// is base 32 when every character is in [0-9a-vA-V], base 36 when every
// character is alphanumeric, and base 10 in every other case.
func Detect(text string) Detection {
	text = strings.TrimSpace(text)
	for _, p := range detectPrefixes {
		if strings.HasPrefix(text, p.prefix) {
			return Detection{Base: p.base, Prefix: p.prefix, Text: text}
		}
	}

	d := Detection{Base: 10, Text: text}
	if !strings.ContainsFunc(text, isLetter) {
		return d
	}
	switch {
	case allOf(text, 32):
		d.Base = 32
	case allOf(text, 36):
		d.Base = 36
	}
	return d
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// allOf reports whether every character of text is a digit of base.
func allOf(text string, base int) bool {
	for _, c := range text {
		if !numeric.IsDigit(c, base) {
			return false
		}
	}
	return true
}
