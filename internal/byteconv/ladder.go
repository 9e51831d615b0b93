// Package byteconv implements the byte/bit magnitude converter: a session
// holding one canonical bit count projected into every unit of a fixed
// power-of-1024 ladder, with two-decimal fixed-point rendering and best-unit
// selection.
package byteconv

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/agbru/convkit/internal/errors"
)

// Unit is one rung of the ladder. A value of 1 in the unit equals
// 2^Exponent bits.
type Unit struct {
	Name     string `json:"name"`
	Exponent uint   `json:"exponent"`
}

// Ladder is an ordered list of units, smallest first.
type Ladder []Unit

// Exponents of the default ladder.
const (
	Bits  uint = 0
	Bytes uint = 3
	KB    uint = 13
	MB    uint = 23
	GB    uint = 33
	TB    uint = 43
	PB    uint = 53
	EB    uint = 63
)

var defaultLadder = Ladder{
	{"bits", Bits},
	{"Bytes", Bytes},
	{"KB", KB},
	{"MB", MB},
	{"GB", GB},
	{"TB", TB},
	{"PB", PB},
	{"EB", EB},
}

// DefaultLadder returns a copy of the bits to EB ladder.
func DefaultLadder() Ladder {
	return slices.Clone(defaultLadder)
}

// ByExponent returns the unit with the given exponent.
func (l Ladder) ByExponent(exp uint) (Unit, bool) {
	for _, u := range l {
		if u.Exponent == exp {
			return u, true
		}
	}
	return Unit{}, false
}

// exactAliases are matched case-sensitively so that "b" stays bits and "B"
// stays Bytes.
var exactAliases = map[string]uint{
	"b": Bits, "bit": Bits, "bits": Bits,
	"B": Bytes, "byte": Bytes, "bytes": Bytes, "Bytes": Bytes,
	"K": KB, "KB": KB, "KiB": KB,
	"M": MB, "MB": MB, "MiB": MB,
	"G": GB, "GB": GB, "GiB": GB,
	"T": TB, "TB": TB, "TiB": TB,
	"P": PB, "PB": PB, "PiB": PB,
	"E": EB, "EB": EB, "EiB": EB,
}

// foldedAliases are matched after lowercasing.
var foldedAliases = map[string]uint{
	"bit": Bits, "bits": Bits,
	"byte": Bytes, "bytes": Bytes,
	"kb": KB, "kib": KB, "kilobyte": KB, "kilobytes": KB,
	"mb": MB, "mib": MB, "megabyte": MB, "megabytes": MB,
	"gb": GB, "gib": GB, "gigabyte": GB, "gigabytes": GB,
	"tb": TB, "tib": TB, "terabyte": TB, "terabytes": TB,
	"pb": PB, "pib": PB, "petabyte": PB, "petabytes": PB,
	"eb": EB, "eib": EB, "exabyte": EB, "exabytes": EB,
}

// LookupExponent resolves a unit token to its exponent.
func LookupExponent(token string) (uint, bool) {
	if exp, ok := exactAliases[token]; ok {
		return exp, true
	}
	exp, ok := foldedAliases[strings.ToLower(token)]
	return exp, ok
}

// ParseUnit resolves a unit token against the default ladder.
//
// Parameters:
//   - token: A unit name or alias such as "KB", "KiB", "bytes" or "b".
//
// Returns:
//   - Unit: The matching unit.
//   - error: An apperrors.ValidationError if the token is unknown.
func ParseUnit(token string) (Unit, error) {
	token = strings.TrimSpace(token)
	if exp, ok := LookupExponent(token); ok {
		if u, ok := defaultLadder.ByExponent(exp); ok {
			return u, nil
		}
	}
	names := make([]string, len(defaultLadder))
	for i, u := range defaultLadder {
		names[i] = u.Name
	}
	return Unit{}, apperrors.NewValidationError("unit", fmt.Sprintf("must be one of %s", strings.Join(names, ", ")), token)
}
