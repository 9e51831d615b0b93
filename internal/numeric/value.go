// Package numeric provides the exact arithmetic primitives shared by the
// converters: an arbitrary-precision integer parser for bases 2 to 36, a
// fixed-point decimal codec, and an explicit optional value type.
//
// Nothing in this package uses floating point. Every conversion is carried
// out on math/big integers so that values of any size round-trip exactly.
package numeric

import "math/big"

// Value is an optional non-negative integer. The zero Value is unset.
//
// Value distinguishes "no value" from zero explicitly, so callers must check
// IsSet (or the ok result of Get) rather than testing the integer itself.
type Value struct {
	n  *big.Int
	ok bool
}

// Some returns a set Value holding a copy of n. A nil n yields an unset Value.
func Some(n *big.Int) Value {
	if n == nil {
		return Value{}
	}
	return Value{n: new(big.Int).Set(n), ok: true}
}

// None returns an unset Value.
func None() Value {
	return Value{}
}

// IsSet reports whether v holds an integer.
func (v Value) IsSet() bool {
	return v.ok
}

// Get returns a copy of the held integer and true, or nil and false when v is
// unset. The copy may be modified freely by the caller.
func (v Value) Get() (*big.Int, bool) {
	if !v.ok {
		return nil, false
	}
	return new(big.Int).Set(v.n), true
}

// Text renders the held integer in the given base, or returns the empty
// string when v is unset.
func (v Value) Text(base int) string {
	if !v.ok {
		return ""
	}
	return Render(v.n, base)
}

// Equal reports whether v and w are both unset or hold the same integer.
func (v Value) Equal(w Value) bool {
	if v.ok != w.ok {
		return false
	}
	if !v.ok {
		return true
	}
	return v.n.Cmp(w.n) == 0
}

// String implements fmt.Stringer for debugging and log output.
func (v Value) String() string {
	if !v.ok {
		return "<unset>"
	}
	return v.n.String()
}
