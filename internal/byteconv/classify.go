package byteconv

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Detection is the routing decision for a pasted size.
type Detection struct {
	// Exponent selects the unit field that receives Text.
	Exponent uint
	// Text is the numeric part of the input, trimmed.
	Text string
}

// Detect splits a pasted size such as "1.5 MB", "512KiB" or "8 bits" into a
// number and a unit field. Text with no trailing unit, or with a unit that is
// not recognised, goes to the Bytes field unchanged apart from trimming.
func Detect(text string) Detection {
	text = strings.TrimSpace(text)
	cut := 0
	if i := strings.LastIndexFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }); i >= 0 {
		_, size := utf8.DecodeRuneInString(text[i:])
		cut = i + size
	}
	token := text[cut:]
	number := strings.TrimSpace(text[:cut])
	if token == "" || number == "" {
		return Detection{Exponent: Bytes, Text: text}
	}
	exp, ok := LookupExponent(token)
	if !ok {
		return Detection{Exponent: Bytes, Text: text}
	}
	return Detection{Exponent: exp, Text: number}
}
