package byteconv

import (
	"math/big"
	"strings"

	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/numeric"
)

const (
	// Precision is the fixed-point scale of rendered magnitudes: two
	// decimal places.
	Precision = 100
	// Threshold is the magnitude a unit must stay strictly below to be
	// picked as the best unit.
	Threshold = 1000
)

var (
	precision = big.NewInt(Precision)
	limit     = big.NewInt(Precision * Threshold)
)

// Session holds the canonical bit count of the magnitude converter and the
// raw text of the most recently edited unit field.
//
// A Session is not safe for concurrent use; callers serialise access.
type Session struct {
	bits     numeric.Value
	override *override
	ladder   Ladder
	err      error
}

type override struct {
	exponent uint
	text     string
}

// Option configures a Session.
type Option func(*Session)

// WithLadder replaces the default unit ladder used by BestUnitExpression.
// The ladder is copied.
func WithLadder(l Ladder) Option {
	return func(s *Session) {
		s.ladder = append(Ladder(nil), l...)
	}
}

// NewSession returns an empty session over DefaultLadder unless an option
// says otherwise.
func NewSession(opts ...Option) *Session {
	s := &Session{ladder: DefaultLadder()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ladder returns the units the session selects from.
func (s *Session) Ladder() Ladder {
	return append(Ladder(nil), s.ladder...)
}

// scaled returns (Precision * bits) >> exponent, the magnitude in the unit
// multiplied by 100 and truncated.
func scaled(bits *big.Int, exponent uint) *big.Int {
	v := new(big.Int).Mul(bits, precision)
	return v.Rsh(v, exponent)
}

// Get returns the text of the unit field with the given exponent: the
// override text if it was the last field edited, "" while the canonical value
// is unset, and otherwise the magnitude in that unit with up to two decimals.
func (s *Session) Get(exponent uint) string {
	if s.override != nil && s.override.exponent == exponent {
		return s.override.text
	}
	bits, ok := s.bits.Get()
	if !ok {
		return ""
	}
	return numeric.Encode(scaled(bits, exponent))
}

// Set records an edit of the unit field with the given exponent. The raw text
// becomes the override, then the trimmed text is decoded as a decimal
// literal. On success the canonical bit count becomes
// (numerator << exponent) / scale, truncated; on failure it becomes unset.
func (s *Session) Set(exponent uint, text string) {
	s.override = &override{exponent: exponent, text: text}

	f, err := numeric.Decode(strings.TrimSpace(text))
	s.err = err
	if err != nil {
		s.bits = numeric.None()
		return
	}
	bits := new(big.Int).Lsh(f.Num, exponent)
	s.bits = numeric.Some(bits.Quo(bits, f.Scale))
}

// Paste classifies text with Detect and forwards it to Set.
func (s *Session) Paste(text string) Detection {
	d := Detect(text)
	s.Set(d.Exponent, d.Text)
	return d
}

// Reset clears the canonical value and the override.
func (s *Session) Reset() {
	s.bits = numeric.None()
	s.override = nil
	s.err = nil
}

// Value returns the canonical bit count.
func (s *Session) Value() numeric.Value {
	return s.bits
}

// Err returns why the last edit left the value unset, or nil.
func (s *Session) Err() error {
	return s.err
}

// Override returns the exponent of the last edited field and its raw text.
func (s *Session) Override() (uint, string, bool) {
	if s.override == nil {
		return 0, "", false
	}
	return s.override.exponent, s.override.text, true
}

// BestUnit picks the display unit for the canonical value.
//
// Among the ladder units whose magnitude is strictly below Threshold, the one
// with the largest magnitude wins. When no unit qualifies, the unit with the
// smallest magnitude is used. Ties keep the unit that comes first in the
// ladder.
//
// Returns:
//   - Unit: The selected unit.
//   - string: The magnitude in that unit, encoded with two decimals.
//   - bool: false if the canonical value is unset.
//
// BestUnit panics with an apperrors.ConfigError when the ladder is empty.
func (s *Session) BestUnit() (Unit, string, bool) {
	bits, ok := s.bits.Get()
	if !ok {
		return Unit{}, "", false
	}

	var best, closest *Unit
	var bestV, closestV *big.Int
	for i := range s.ladder {
		u := &s.ladder[i]
		v := scaled(bits, u.Exponent)
		if v.Cmp(limit) < 0 && (best == nil || v.Cmp(bestV) > 0) {
			best, bestV = u, v
		}
		if closest == nil || v.Cmp(closestV) < 0 {
			closest, closestV = u, v
		}
	}

	switch {
	case best != nil:
		return *best, numeric.Encode(bestV), true
	case closest != nil:
		return *closest, numeric.Encode(closestV), true
	}
	panic(apperrors.NewConfigError("byteconv: unit ladder is empty"))
}

// BestUnitExpression returns the canonical value in its best unit, formatted
// as "<magnitude> <unit>", or false if the value is unset.
func (s *Session) BestUnitExpression() (string, bool) {
	u, v, ok := s.BestUnit()
	if !ok {
		return "", false
	}
	return v + " " + u.Name, true
}
