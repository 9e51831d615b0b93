// Package baseconv implements the integer base converter: a session holding
// one canonical integer that every base field projects, plus the classifier
// that routes pasted text to a base.
package baseconv

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/numeric"
)

// View identifiers used as Field.ID. Fields that share a base but live in
// different views never echo each other's override text.
const (
	SimpleView   = 0
	AdvancedView = 1
)

// Field identifies one editable representation of the canonical value.
type Field struct {
	// Base is the radix the field renders in, between 2 and 36.
	Base int
	// ID disambiguates several fields with the same base.
	ID int
}

// String implements fmt.Stringer.
func (f Field) String() string {
	if f.ID == 0 {
		return "base" + strconv.Itoa(f.Base)
	}
	return fmt.Sprintf("base%d#%d", f.Base, f.ID)
}

// SimpleBases lists the bases of the simple view, in display order.
var SimpleBases = []int{2, 8, 10, 16}

// AdvancedBases returns every supported base in ascending order.
func AdvancedBases() []int {
	bases := make([]int, 0, numeric.MaxBase-numeric.MinBase+1)
	for b := numeric.MinBase; b <= numeric.MaxBase; b++ {
		bases = append(bases, b)
	}
	return bases
}

// Prefix returns the conventional literal prefix of base, or "" if the base
// has none.
func Prefix(base int) string {
	switch base {
	case 2:
		return "0b"
	case 8:
		return "0o"
	case 16:
		return "0x"
	}
	return ""
}

// Name returns a human-readable label for base.
func Name(base int) string {
	switch base {
	case 2:
		return "Binary"
	case 8:
		return "Octal"
	case 10:
		return "Decimal"
	case 16:
		return "Hexadecimal"
	}
	return "Base " + strconv.Itoa(base)
}

var baseAliases = map[string]int{
	"bin": 2, "binary": 2,
	"oct": 8, "octal": 8,
	"dec": 10, "decimal": 10,
	"hex": 16, "hexadecimal": 16,
}

// ParseBase resolves a base given either as a number ("16", "base16") or as
// a name ("hex", "Binary").
//
// Parameters:
//   - s: The base designation to resolve.
//
// Returns:
//   - int: The radix.
//   - error: An apperrors.ValidationError if s does not name a supported base.
func ParseBase(s string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if b, ok := baseAliases[key]; ok {
		return b, nil
	}
	b, err := strconv.Atoi(strings.TrimPrefix(key, "base"))
	if err != nil || !numeric.ValidBase(b) {
		return 0, apperrors.NewValidationError("base", fmt.Sprintf("must be a number between %d and %d or a base name", numeric.MinBase, numeric.MaxBase), s)
	}
	return b, nil
}
