//go:build gmp

// This file swaps the digit accumulator for libgmp, conditionally compiled
// with the "gmp" build tag:
//   - the default build stays pure Go (math/big)
//   - GMP support is opt-in: go build -tags=gmp
//
// System requirements: libgmp-dev (Debian/Ubuntu) or `brew install gmp`.

package numeric

import (
	"math/big"

	"github.com/ncw/gmp"
)

// accumulate turns a string of already validated digits into an integer
// using mpz_set_str, then converts the result back to math/big.
func accumulate(digits string, base int) *big.Int {
	g, ok := gmp.NewInt(0).SetString(digits, base)
	if !ok {
		return nil
	}
	return new(big.Int).SetBytes(g.Bytes())
}
