package numeric

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		base int
		want string
	}{
		{"Zero", "0", 10, "0"},
		{"Decimal", "255", 10, "255"},
		{"Hex lowercase", "ff", 16, "255"},
		{"Hex uppercase", "FF", 16, "255"},
		{"Hex mixed case", "fF", 16, "255"},
		{"Binary", "11111111", 2, "255"},
		{"Octal", "377", 8, "255"},
		{"Base 32 top digit", "V", 32, "31"},
		{"Base 36 top digit", "z", 36, "35"},
		{"Base 36 word", "1a2bZ", 36, "2149199"},
		{"Leading zeros", "000123", 10, "123"},
		{"Beyond uint64", "18446744073709551616", 10, "18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.text, tt.base)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	t.Run("Empty is not zero", func(t *testing.T) {
		t.Parallel()
		got, err := Parse("", 10)
		require.Nil(t, got)
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("Base out of range", func(t *testing.T) {
		t.Parallel()
		for _, base := range []int{-1, 0, 1, 37, 64} {
			_, err := Parse("1", base)
			require.ErrorIs(t, err, ErrInvalidBase, "base %d", base)
		}
	})

	invalid := []struct {
		name   string
		text   string
		base   int
		offset int
		char   rune
	}{
		{"Digit equal to base", "2", 2, 0, '2'},
		{"Hex letter past f", "1g", 16, 1, 'g'},
		{"Sign", "-1", 10, 0, '-'},
		{"Plus sign", "+1", 10, 0, '+'},
		{"Inner whitespace", "1 2", 10, 1, ' '},
		{"Leading whitespace", " 1", 10, 0, ' '},
		{"Prefix not stripped", "0x1", 16, 1, 'x'},
		{"Separator", "1_000", 10, 1, '_'},
		{"Decimal point", "1.5", 10, 1, '.'},
		{"Non-ASCII digit", "1٣", 10, 1, '٣'},
		{"Letter in decimal", "12a", 10, 2, 'a'},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.text, tt.base)
			require.Nil(t, got)
			require.ErrorIs(t, err, ErrInvalidDigit)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, tt.offset, pe.Offset)
			require.Equal(t, tt.char, pe.Char)
			require.Equal(t, tt.base, pe.Base)
			require.Contains(t, pe.Error(), "offset")
		})
	}
}

func TestParse_LongInputs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		base int
	}{
		{"Decimal past threshold", strings.Repeat("9", quadraticScanThreshold+1), 10},
		{"Decimal several chunks", strings.Repeat("1234567890", 900), 10},
		{"Ternary", strings.Repeat("210", 2000), 3},
		{"Base 36", strings.Repeat("zy0x", 1500), 36},
		{"Binary", strings.Repeat("10", 5000), 2},
		{"Hex", strings.Repeat("deadbeef", 1000), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.text, tt.base)
			require.NoError(t, err)
			want, ok := new(big.Int).SetString(tt.text, tt.base)
			require.True(t, ok)
			require.Zero(t, got.Cmp(want), "mismatch for %d digits in base %d", len(tt.text), tt.base)
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()
	n := big.NewInt(255)
	require.Equal(t, "ff", Render(n, 16))
	require.Equal(t, "11111111", Render(n, 2))
	require.Equal(t, "377", Render(n, 8))
	require.Equal(t, "73", Render(n, 36))
	require.Equal(t, "0", Render(new(big.Int), 7))
	require.Empty(t, Render(nil, 10))
	require.Empty(t, Render(n, 1))
	require.Empty(t, Render(n, 37))
}

// TestRenderParseRoundTrip_PropertyBased checks that every rendering parses
// back to the same integer in every supported base.
func TestRenderParseRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Render(n, b), b) == n", prop.ForAll(
		func(hi, lo uint64, base int) bool {
			n := new(big.Int).SetUint64(hi)
			n.Lsh(n, 64).Or(n, new(big.Int).SetUint64(lo))
			got, err := Parse(Render(n, base), base)
			if err != nil {
				t.Logf("Parse failed for %s in base %d: %v", n, base, err)
				return false
			}
			return got.Cmp(n) == 0
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.IntRange(MinBase, MaxBase),
	))

	properties.Property("uppercase input parses like lowercase", prop.ForAll(
		func(v uint64, base int) bool {
			text := Render(new(big.Int).SetUint64(v), base)
			lower, err1 := Parse(text, base)
			upper, err2 := Parse(strings.ToUpper(text), base)
			return err1 == nil && err2 == nil && lower.Cmp(upper) == 0
		},
		gen.UInt64(),
		gen.IntRange(11, MaxBase),
	))

	properties.TestingRun(t)
}

// FuzzParse checks Parse against big.Int.SetString on inputs that
// SetString treats the same way (no sign, underscore or prefix).
func FuzzParse(f *testing.F) {
	f.Add("0", 10)
	f.Add("ff", 16)
	f.Add("1a2bZ", 36)
	f.Add("", 2)
	f.Add("-5", 10)
	f.Add(strings.Repeat("7", 1300), 8)

	f.Fuzz(func(t *testing.T, text string, base int) {
		if len(text) > 4096 {
			return
		}
		got, err := Parse(text, base)
		if err != nil {
			if got != nil {
				t.Fatalf("Parse(%q, %d) returned a value with error %v", text, base, err)
			}
			return
		}
		if got.Sign() < 0 {
			t.Fatalf("Parse(%q, %d) = %s, want non-negative", text, base, got)
		}
		want, ok := new(big.Int).SetString(text, base)
		if !ok {
			t.Fatalf("Parse accepted %q in base %d but SetString did not", text, base)
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("Parse(%q, %d) = %s, want %s", text, base, got, want)
		}
	})
}
