package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/agbru/convkit/internal/byteconv"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/pkg/models"
)

func newTestService(t *testing.T, opts ...Option) *ConversionService {
	t.Helper()
	svc, err := NewConversionService(opts...)
	if err != nil {
		t.Fatalf("NewConversionService: %v", err)
	}
	return svc
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("reading counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func fieldTexts(fields []models.BaseField) map[int]string {
	m := make(map[int]string, len(fields))
	for _, f := range fields {
		m[f.Base] = f.Text
	}
	return m
}

// TestNewConversionService tests the constructor and its options.
func TestNewConversionService(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	if svc.maxInput != DefaultMaxInput {
		t.Errorf("maxInput = %d, want %d", svc.maxInput, DefaultMaxInput)
	}
	if svc.baseCache == nil || svc.byteCache == nil {
		t.Error("caches should be enabled by default")
	}

	svc = newTestService(t, WithCacheSize(0), WithMaxInput(16), WithLogger(nil))
	if svc.baseCache != nil || svc.byteCache != nil {
		t.Error("cache size 0 should disable caching")
	}
	if svc.maxInput != 16 {
		t.Errorf("maxInput = %d, want 16", svc.maxInput)
	}
	if svc.logger == nil {
		t.Error("a nil logger must not replace the default")
	}

	if _, err := NewConversionService(WithLadder(byteconv.Ladder{})); err == nil {
		t.Error("an empty ladder should be rejected")
	} else {
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %T", err)
		}
	}
}

func TestConvertBase(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.BaseRequest
		valid   bool
		decimal string
		texts   map[int]string
	}{
		{
			name:    "hex to simple view",
			req:     models.BaseRequest{Value: "ff", Base: 16},
			valid:   true,
			decimal: "255",
			texts:   map[int]string{2: "11111111", 8: "377", 10: "255", 16: "ff"},
		},
		{
			name:    "prefix is stripped and echoed",
			req:     models.BaseRequest{Value: "0xFF", Base: 16, Prefix: "0x"},
			valid:   true,
			decimal: "255",
			texts:   map[int]string{2: "11111111", 10: "255", 16: "0xFF"},
		},
		{
			name:    "explicit target bases",
			req:     models.BaseRequest{Value: "35", Base: 10, Bases: []int{36, 3}},
			valid:   true,
			decimal: "35",
			texts:   map[int]string{36: "z", 3: "1022"},
		},
		{
			name:  "invalid digit leaves other fields empty",
			req:   models.BaseRequest{Value: "12z", Base: 10},
			texts: map[int]string{2: "", 8: "", 10: "12z", 16: ""},
		},
		{
			name:  "empty input is no value",
			req:   models.BaseRequest{Value: "", Base: 2},
			texts: map[int]string{2: "", 10: ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.ConvertBase(ctx, tc.req)
			if err != nil {
				t.Fatalf("ConvertBase: %v", err)
			}
			if resp.Valid != tc.valid {
				t.Errorf("Valid = %v, want %v", resp.Valid, tc.valid)
			}
			if resp.Decimal != tc.decimal {
				t.Errorf("Decimal = %q, want %q", resp.Decimal, tc.decimal)
			}
			got := fieldTexts(resp.Fields)
			for base, want := range tc.texts {
				if got[base] != want {
					t.Errorf("field %d = %q, want %q", base, got[base], want)
				}
			}
			if !tc.valid && resp.Error == "" {
				t.Error("an unresolved input should carry an error message")
			}
		})
	}
}

func TestConvertBaseErrors(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, WithMaxInput(8))

	var valErr apperrors.ValidationError
	if _, err := svc.ConvertBase(context.Background(), models.BaseRequest{Value: "1", Base: 1}); !errors.As(err, &valErr) {
		t.Errorf("base 1: expected ValidationError, got %v", err)
	}
	if _, err := svc.ConvertBase(context.Background(), models.BaseRequest{Value: "1", Base: 10, Bases: []int{37}}); !errors.As(err, &valErr) {
		t.Errorf("target base 37: expected ValidationError, got %v", err)
	}
	if _, err := svc.ConvertBase(context.Background(), models.BaseRequest{Value: strings.Repeat("1", 9), Base: 2}); !errors.Is(err, ErrInputTooLong) {
		t.Errorf("long input: expected ErrInputTooLong, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.ConvertBase(ctx, models.BaseRequest{Value: "1", Base: 10}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: expected context.Canceled, got %v", err)
	}
}

func TestConvertBytes(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	resp, err := svc.ConvertBytes(context.Background(), models.ByteRequest{Value: "1.5", Unit: "MB"})
	if err != nil {
		t.Fatalf("ConvertBytes: %v", err)
	}
	if !resp.Valid || resp.Bits != "12582912" || resp.Best != "1.5 MB" || resp.Unit != "MB" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	want := map[string]string{"bits": "12582912", "Bytes": "1572864", "KB": "1536", "MB": "1.5", "GB": "0"}
	for _, f := range resp.Fields {
		if w, ok := want[f.Unit]; ok && f.Text != w {
			t.Errorf("field %s = %q, want %q", f.Unit, f.Text, w)
		}
	}
	if len(resp.Fields) != len(byteconv.DefaultLadder()) {
		t.Errorf("got %d fields, want %d", len(resp.Fields), len(byteconv.DefaultLadder()))
	}

	resp, err = svc.ConvertBytes(context.Background(), models.ByteRequest{Value: "2", Unit: "kib"})
	if err != nil || resp.Unit != "KB" || resp.Bits != "16384" {
		t.Errorf("alias unit: got %+v, %v", resp, err)
	}

	resp, err = svc.ConvertBytes(context.Background(), models.ByteRequest{Value: "abc", Unit: "Bytes"})
	if err != nil {
		t.Fatalf("ConvertBytes: %v", err)
	}
	if resp.Valid || resp.Best != "" || resp.Error == "" {
		t.Errorf("malformed literal: got %+v", resp)
	}
	for _, f := range resp.Fields {
		if f.Unit == "Bytes" && f.Text != "abc" {
			t.Errorf("edited field should echo the raw text, got %q", f.Text)
		}
		if f.Unit != "Bytes" && f.Text != "" {
			t.Errorf("field %s should be empty, got %q", f.Unit, f.Text)
		}
	}

	var valErr apperrors.ValidationError
	if _, err := svc.ConvertBytes(context.Background(), models.ByteRequest{Value: "1", Unit: "parsecs"}); !errors.As(err, &valErr) {
		t.Errorf("unknown unit: expected ValidationError, got %v", err)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	det, err := svc.Detect(context.Background(), "  1.5 MB ")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Base.Base != 10 || det.Base.Text != "1.5 MB" {
		t.Errorf("base detection = %+v", det.Base)
	}
	if det.Bytes.Unit != "MB" || det.Bytes.Exponent != byteconv.MB || det.Bytes.Text != "1.5" {
		t.Errorf("bytes detection = %+v", det.Bytes)
	}

	det, err = svc.Detect(context.Background(), "0x1F")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Base.Base != 16 || det.Base.Prefix != "0x" {
		t.Errorf("base detection = %+v", det.Base)
	}
	if det.Bytes.Unit != "Bytes" || det.Bytes.Text != "0x1F" {
		t.Errorf("bytes detection = %+v", det.Bytes)
	}
}

func TestUnits(t *testing.T) {
	t.Parallel()
	ladder := byteconv.Ladder{{Name: "Bytes", Exponent: byteconv.Bytes}, {Name: "MB", Exponent: byteconv.MB}}
	svc := newTestService(t, WithLadder(ladder))

	units := svc.Units()
	if len(units) != 2 || units[0].Name != "Bytes" || units[1].Exponent != byteconv.MB {
		t.Errorf("Units() = %+v", units)
	}

	resp, err := svc.ConvertBytes(context.Background(), models.ByteRequest{Value: "2048", Unit: "KB"})
	if err != nil {
		t.Fatalf("ConvertBytes: %v", err)
	}
	if len(resp.Fields) != 2 || resp.Best != "2 MB" {
		t.Errorf("custom ladder response = %+v", resp)
	}
}

// TestCacheReturnsIndependentCopies runs serially so the cache hit counter
// only sees its own requests.
func TestCacheReturnsIndependentCopies(t *testing.T) {
	svc := newTestService(t, WithCacheSize(4))
	req := models.BaseRequest{Value: "255", Base: 10}
	hits := cacheHitsTotal.WithLabelValues(kindBase)
	before := counterValue(t, hits)

	first, err := svc.ConvertBase(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	first.Fields[0].Text = "mutated"

	second, err := svc.ConvertBase(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if got := counterValue(t, hits) - before; got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if second.Fields[0].Text != "11111111" {
		t.Errorf("cached response was mutated through a returned copy: %q", second.Fields[0].Text)
	}

	third, _ := svc.ConvertBase(context.Background(), req)
	if third.Fields[0].Text != "11111111" {
		t.Errorf("cached response was mutated: %q", third.Fields[0].Text)
	}
}

func TestConcurrentConversions(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, WithCacheSize(8))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value := []string{"ff", "10", "zz", "7"}[i%4]
			resp, err := svc.ConvertBase(context.Background(), models.BaseRequest{Value: value, Base: 36})
			if err != nil || !resp.Valid {
				t.Errorf("ConvertBase(%q) = %+v, %v", value, resp, err)
			}
		}(i)
	}
	wg.Wait()
}
