package byteconv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/convkit/internal/errors"
)

func TestDetect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  Detection
	}{
		{"1.5 MB", Detection{MB, "1.5"}},
		{"512KiB", Detection{KB, "512"}},
		{"8 bits", Detection{Bits, "8"}},
		{"8b", Detection{Bits, "8"}},
		{"8B", Detection{Bytes, "8"}},
		{"  2 gigabytes \n", Detection{GB, "2"}},
		{"3 Terabytes", Detection{TB, "3"}},
		{"1e3 kb", Detection{KB, "1e3"}},
		{"4E", Detection{EB, "4"}},
		{"1024", Detection{Bytes, "1024"}},
		{"1e5", Detection{Bytes, "1e5"}},
		{"3e", Detection{Bytes, "3e"}},
		{"12 parsecs", Detection{Bytes, "12 parsecs"}},
		{"MB", Detection{Bytes, "MB"}},
		{"", Detection{Bytes, ""}},
		{"5€MB", Detection{MB, "5€"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestParseUnit(t *testing.T) {
	t.Parallel()
	for token, want := range map[string]string{
		"b": "bits", "bits": "bits", "B": "Bytes", "bytes": "Bytes",
		"KB": "KB", "kib": "KB", "Megabytes": "MB", " GiB ": "GB", "EB": "EB",
	} {
		u, err := ParseUnit(token)
		require.NoError(t, err, token)
		require.Equal(t, want, u.Name, token)
	}

	_, err := ParseUnit("furlong")
	var ve apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "unit", ve.Field)
	require.Contains(t, ve.Message, "KB")
}

func TestDefaultLadder(t *testing.T) {
	t.Parallel()
	l := DefaultLadder()
	require.Len(t, l, 8)
	for i := 2; i < len(l); i++ {
		require.Equal(t, l[i-1].Exponent+10, l[i].Exponent, "each byte unit is 1024 times the previous")
	}
	l[0].Name = "mutated"
	require.Equal(t, "bits", DefaultLadder()[0].Name)

	u, ok := l.ByExponent(GB)
	require.True(t, ok)
	require.Equal(t, "GB", u.Name)
	_, ok = l.ByExponent(7)
	require.False(t, ok)
}
