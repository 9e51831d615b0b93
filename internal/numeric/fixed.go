package numeric

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxExponent bounds the magnitude of a scientific exponent accepted by
// Decode. Larger exponents are treated as malformed literals.
const MaxExponent = 10000

// ErrMalformed is returned by Decode for any literal it cannot represent.
var ErrMalformed = errors.New("numeric: malformed decimal literal")

// Fraction is an exact non-negative rational Num/Scale, where Scale is a
// power of ten.
type Fraction struct {
	Num   *big.Int
	Scale *big.Int
}

// Rat returns f as a normalized big.Rat.
func (f Fraction) Rat() *big.Rat {
	return new(big.Rat).SetFrac(f.Num, f.Scale)
}

// Decode parses a decimal literal with an optional fractional part and an
// optional scientific exponent ("12", "1.5", ".25", "3e3", "1.5E-2") into an
// exact fraction. The mantissa digits are read with Parse in base 10, so
// signs, separators and whitespace are rejected.
//
// Parameters:
//   - text: The literal to decode.
//
// Returns:
//   - Fraction: Num/Scale equal to the literal's value.
//   - error: An error wrapping ErrMalformed if the literal is invalid.
func Decode(text string) (Fraction, error) {
	mantissa, exp, err := splitExponent(text)
	if err != nil {
		return Fraction{}, err
	}

	digits := mantissa
	after := 0
	if point := strings.IndexByte(mantissa, '.'); point >= 0 {
		after = len(mantissa) - point - 1
		digits = mantissa[:point] + mantissa[point+1:]
	}

	raw, err := Parse(digits, 10)
	if err != nil {
		return Fraction{}, fmt.Errorf("%w %q: %w", ErrMalformed, text, err)
	}

	d := after - exp
	if d < 0 {
		raw.Mul(raw, pow10(-d))
		return Fraction{Num: raw, Scale: big.NewInt(1)}, nil
	}
	return Fraction{Num: raw, Scale: pow10(d)}, nil
}

// splitExponent separates the mantissa from an "e<int>" suffix.
func splitExponent(text string) (string, int, error) {
	idx := strings.IndexAny(text, "eE")
	if idx < 0 {
		return text, 0, nil
	}
	exp, err := strconv.Atoi(text[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("%w %q: bad exponent", ErrMalformed, text)
	}
	if exp > MaxExponent || exp < -MaxExponent {
		return "", 0, fmt.Errorf("%w %q: exponent out of range", ErrMalformed, text)
	}
	return text[:idx], exp, nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Encode formats an integer holding a value multiplied by 100 as the
// shortest decimal string with at most two fractional digits.
//
// Examples: 1050 -> "10.5", 100 -> "1", 5 -> "0.05", 0 -> "0".
func Encode(scaled *big.Int) string {
	if scaled == nil {
		return ""
	}
	digits := scaled.Text(10)
	sign := ""
	if scaled.Sign() < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	cut := len(digits) - 2
	s := digits[:cut] + "." + digits[cut:]
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return sign + s
}
