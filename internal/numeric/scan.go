//go:build !gmp

package numeric

import "math/big"

// quadraticScanThreshold is the number of digits below which
// big.Int.SetString is faster than splitting the input.
// 1232 decimal digits fit in 4096 bits.
const quadraticScanThreshold = 1232

// accumulate turns a string of already validated digits into an integer.
// Power-of-two bases are linear in big.Int.SetString and skip the split.
func accumulate(digits string, base int) *big.Int {
	if base&(base-1) == 0 || len(digits) <= quadraticScanThreshold {
		z, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return nil
		}
		return z
	}
	s := scanner{base: base}
	z := new(big.Int)
	if !s.scan(z, digits) {
		return nil
	}
	return z
}

// scanner splits long digit strings in halves and recombines them with a
// multiplication by a cached power of the base.
type scanner struct {
	base int
	// powers[i] is base^(quadraticScanThreshold << i).
	powers []*big.Int
}

func (s *scanner) chunkSize(size int) (int, *big.Int) {
	if size <= quadraticScanThreshold {
		panic("numeric: size <= quadraticScanThreshold")
	}
	pow := uint(0)
	for n := size; n > quadraticScanThreshold; n /= 2 {
		pow++
	}
	// threshold * 2^(pow-1) < size <= threshold * 2^pow
	return quadraticScanThreshold << (pow - 1), s.power(pow - 1)
}

func (s *scanner) power(k uint) *big.Int {
	for i := len(s.powers); i <= int(k); i++ {
		z := new(big.Int)
		if i == 0 {
			z.Exp(big.NewInt(int64(s.base)), big.NewInt(quadraticScanThreshold), nil)
		} else {
			z.Mul(s.powers[i-1], s.powers[i-1])
		}
		s.powers = append(s.powers, z)
	}
	return s.powers[k]
}

func (s *scanner) scan(z *big.Int, str string) bool {
	if len(str) <= quadraticScanThreshold {
		_, ok := z.SetString(str, s.base)
		return ok
	}
	sz, pow := s.chunkSize(len(str))
	if !s.scan(z, str[:len(str)-sz]) {
		return false
	}
	z.Mul(z, pow)
	low := new(big.Int)
	if !s.scan(low, str[len(str)-sz:]) {
		return false
	}
	z.Add(z, low)
	return true
}
