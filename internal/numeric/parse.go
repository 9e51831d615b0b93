package numeric

import (
	"errors"
	"fmt"
	"math/big"
)

// Supported radix range for Parse and Render.
const (
	MinBase = 2
	MaxBase = 36
)

var (
	// ErrEmpty is returned when there are no digits to parse. An empty field
	// means "no value", never zero.
	ErrEmpty = errors.New("numeric: empty input")
	// ErrInvalidDigit is wrapped by *ParseError when a character is not a
	// digit of the requested base.
	ErrInvalidDigit = errors.New("numeric: invalid digit")
	// ErrInvalidBase is returned when the radix is outside [MinBase, MaxBase].
	ErrInvalidBase = errors.New("numeric: base out of range")
)

// ParseError reports the first character that is not a digit of Base.
type ParseError struct {
	// Text is the full input that was being parsed.
	Text string
	// Base is the radix the input was parsed in.
	Base int
	// Offset is the byte offset of Char within Text.
	Offset int
	// Char is the offending character.
	Char rune
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("numeric: invalid digit %q at offset %d for base %d", e.Char, e.Offset, e.Base)
}

// Unwrap returns ErrInvalidDigit so callers can use errors.Is.
func (e *ParseError) Unwrap() error { return ErrInvalidDigit }

// ValidBase reports whether base is a supported radix.
func ValidBase(base int) bool {
	return base >= MinBase && base <= MaxBase
}

// digitValue returns the numeric value of c as a base-36 digit, or -1.
// Letters are case-insensitive.
func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// IsDigit reports whether c is a digit of base.
func IsDigit(c rune, base int) bool {
	d := digitValue(c)
	return d >= 0 && d < base
}

// Parse converts a string of digits in the given base into a non-negative
// integer.
//
// The input must already be trimmed and have any radix prefix removed. Signs,
// separators, whitespace and prefixes are all rejected as invalid digits.
// There is no bound on the input length; digits are validated in one pass and
// accumulated with a divide-and-conquer scan.
//
// Parameters:
//   - text: The digits to parse (0-9, then a-z or A-Z for values 10 to 35).
//   - base: The radix, between MinBase and MaxBase.
//
// Returns:
//   - *big.Int: The parsed value.
//   - error: ErrInvalidBase, ErrEmpty, or a *ParseError.
func Parse(text string, base int) (*big.Int, error) {
	if !ValidBase(base) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBase, base)
	}
	if text == "" {
		return nil, ErrEmpty
	}
	for i, c := range text {
		if !IsDigit(c, base) {
			return nil, &ParseError{Text: text, Base: base, Offset: i, Char: c}
		}
	}
	z := accumulate(text, base)
	if z == nil {
		// Unreachable once every digit has been validated.
		return nil, &ParseError{Text: text, Base: base, Char: []rune(text)[0]}
	}
	return z, nil
}

// Render returns the lowercase representation of n in the given base with no
// padding. It returns the empty string for a nil n or an unsupported base.
func Render(n *big.Int, base int) string {
	if n == nil || !ValidBase(base) {
		return ""
	}
	return n.Text(base)
}
