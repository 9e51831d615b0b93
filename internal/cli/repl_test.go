package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/byteconv"
	"github.com/agbru/convkit/internal/cli/mocks"
	"github.com/agbru/convkit/internal/config"
	"github.com/agbru/convkit/internal/testutil"
)

func newTestREPL(cfg REPLConfig) (*REPL, *bytes.Buffer) {
	r := NewREPL(cfg)
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

// row returns the cells of the row labelled label, without the edited marker.
func row(t *testing.T, output, label string) []string {
	t.Helper()
	for _, f := range rows(output) {
		if f[0] == editedMarker {
			f = f[1:]
		}
		if f[0] == label {
			return f
		}
	}
	t.Fatalf("no row %q in:\n%s", label, output)
	return nil
}

// baseCell returns the text of a base row: name, base, text.
func baseCell(t *testing.T, output, name string) string {
	t.Helper()
	if f := row(t, output, name); len(f) > 2 {
		return f[2]
	}
	return ""
}

// unitCell returns the text of a unit row: unit, text.
func unitCell(t *testing.T, output, unit string) string {
	t.Helper()
	if f := row(t, output, unit); len(f) > 1 {
		return f[1]
	}
	return ""
}

func TestNewREPL(t *testing.T) {
	t.Parallel()
	r := NewREPL(REPLConfig{})
	if r.mode != config.ModeBase || r.view != baseconv.SimpleView {
		t.Errorf("defaults: mode=%s view=%d", r.mode, r.view)
	}

	r = NewREPL(REPLConfig{Mode: config.ModeBytes, Advanced: true, Ladder: byteconv.Ladder{{Name: "Bytes", Exponent: 3}}})
	if r.mode != config.ModeBytes || r.view != baseconv.AdvancedView {
		t.Errorf("configured: mode=%s view=%d", r.mode, r.view)
	}
	if len(r.bytes.Ladder()) != 1 {
		t.Errorf("ladder has %d units, want 1", len(r.bytes.Ladder()))
	}
}

func TestProcessCommand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r, out := newTestREPL(REPLConfig{})

	t.Run("edit by base number", func(t *testing.T) {
		r.processCommand(ctx, "16 ff")
		got := out.String()
		if v := baseCell(t, got, "Decimal"); v != "255" {
			t.Errorf("Decimal = %q, want 255", v)
		}
		if v := baseCell(t, got, "Binary"); v != "11111111" {
			t.Errorf("Binary = %q, want 11111111", v)
		}
		out.Reset()
	})

	t.Run("edit by name keeps prefix verbatim", func(t *testing.T) {
		r.processCommand(ctx, "hex 0xFF")
		got := out.String()
		if v := baseCell(t, got, "Hexadecimal"); v != "0xFF" {
			t.Errorf("Hexadecimal = %q, want override text 0xFF", v)
		}
		if v := baseCell(t, got, "Octal"); v != "377" {
			t.Errorf("Octal = %q, want 377", v)
		}
		out.Reset()
	})

	t.Run("invalid edit unsets the value", func(t *testing.T) {
		r.processCommand(ctx, "8 789")
		got := testutil.StripANSI(out.String())
		if v := baseCell(t, got, "Octal"); v != "789" {
			t.Errorf("Octal = %q, want 789", v)
		}
		if v := baseCell(t, got, "Decimal"); v != "" {
			t.Errorf("Decimal = %q, want empty", v)
		}
		if !strings.Contains(got, "Invalid input:") {
			t.Errorf("missing invalid notice:\n%s", got)
		}
		out.Reset()
	})

	t.Run("reset", func(t *testing.T) {
		r.processCommand(ctx, "reset")
		if r.base.Value().IsSet() {
			t.Error("value still set after reset")
		}
		if _, _, ok := r.base.Override(); ok {
			t.Error("override still present after reset")
		}
		out.Reset()
	})

	t.Run("paste detects base", func(t *testing.T) {
		r.processCommand(ctx, "paste 0b101")
		got := testutil.StripANSI(out.String())
		if !strings.Contains(got, "Detected base: Binary") {
			t.Errorf("missing detection:\n%s", got)
		}
		if v := baseCell(t, got, "Decimal"); v != "5" {
			t.Errorf("Decimal = %q, want 5", v)
		}
		out.Reset()
	})

	t.Run("bytes mode", func(t *testing.T) {
		r.processCommand(ctx, "mode bytes")
		out.Reset()
		r.processCommand(ctx, "KB 1.5")
		got := out.String()
		if v := unitCell(t, got, "Bytes"); v != "1536" {
			t.Errorf("Bytes = %q, want 1536", v)
		}
		if v := unitCell(t, got, "bits"); v != "12288" {
			t.Errorf("bits = %q, want 12288", v)
		}
		out.Reset()

		r.processCommand(ctx, "best")
		if got := strings.TrimSpace(testutil.StripANSI(out.String())); got != "1.5 KB" {
			t.Errorf("best = %q, want 1.5 KB", got)
		}
		out.Reset()
	})

	t.Run("single letter units are fields", func(t *testing.T) {
		r.processCommand(ctx, "M 2")
		if r.mode != config.ModeBytes {
			t.Fatal("M must edit the MB field, not switch mode")
		}
		if v := unitCell(t, out.String(), "KB"); v != "2048" {
			t.Errorf("KB = %q, want 2048", v)
		}
		out.Reset()
	})

	t.Run("modes keep their state", func(t *testing.T) {
		r.processCommand(ctx, "mode base")
		if v := baseCell(t, out.String(), "Decimal"); v != "5" {
			t.Errorf("Decimal = %q, want 5 from the earlier paste", v)
		}
		out.Reset()
	})

	t.Run("best outside bytes mode", func(t *testing.T) {
		r.processCommand(ctx, "best")
		if !strings.Contains(out.String(), "only available in bytes mode") {
			t.Errorf("got %q", out.String())
		}
		out.Reset()
	})

	t.Run("unknown command", func(t *testing.T) {
		r.processCommand(ctx, "frobnicate 1")
		if !strings.Contains(out.String(), "Unknown command: frobnicate") {
			t.Errorf("got %q", out.String())
		}
		out.Reset()
	})

	t.Run("usage errors", func(t *testing.T) {
		r.processCommand(ctx, "mode octal")
		r.processCommand(ctx, "view wide")
		got := out.String()
		if !strings.Contains(got, "Usage: mode base|bytes") || !strings.Contains(got, "Usage: view simple|advanced") {
			t.Errorf("got %q", got)
		}
		out.Reset()
	})

	t.Run("exit", func(t *testing.T) {
		for _, cmd := range []string{"exit", "quit", "q", "EXIT"} {
			if r.processCommand(ctx, cmd) {
				t.Errorf("%s should stop the REPL", cmd)
			}
		}
		out.Reset()
	})
}

func TestREPL_ViewsDoNotShareOverrides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r, out := newTestREPL(REPLConfig{})

	r.processCommand(ctx, "10 12z")
	out.Reset()
	r.processCommand(ctx, "view advanced")
	got := out.String()
	if v := baseCell(t, got, "Decimal"); v != "" {
		t.Errorf("advanced Decimal = %q, want empty: the override belongs to the simple view", v)
	}
	if strings.Contains(testutil.StripANSI(got), editedMarker) {
		t.Errorf("advanced view should highlight nothing:\n%s", got)
	}
	if n := len(rows(got)); n < 35 {
		t.Errorf("advanced view has %d rows, want 35", n)
	}

	out.Reset()
	r.processCommand(ctx, "view simple")
	if v := baseCell(t, out.String(), "Decimal"); v != "12z" {
		t.Errorf("simple Decimal = %q, want override 12z", v)
	}
}

func TestREPLStart(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL(REPLConfig{})
	r.SetInput(strings.NewReader("16 ff\n\nexit\n"))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	got := testutil.StripANSI(out.String())
	if !strings.Contains(got, "255") {
		t.Errorf("expected conversion output, got %s", got)
	}
	if !strings.Contains(got, "Goodbye!") {
		t.Error("expected goodbye message")
	}
}

func TestREPLStart_EOF(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL(REPLConfig{Mode: config.ModeBytes, Initial: "8 bits"})
	r.SetInput(strings.NewReader("best\n"))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	got := testutil.StripANSI(out.String())
	if !strings.Contains(got, "Detected unit: bits") {
		t.Errorf("initial value was not pasted:\n%s", got)
	}
	if !strings.Contains(got, "8 bits") || !strings.Contains(got, "Goodbye!") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestREPLStart_PasteFromClipboard(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	cb := mocks.NewMockClipboard(ctrl)
	cb.EXPECT().ReadAll().Return("  0x1F \n", nil)

	r, out := newTestREPL(REPLConfig{Paste: true})
	r.SetClipboard(cb)
	r.SetInput(strings.NewReader("exit\n"))

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if v := baseCell(t, out.String(), "Decimal"); v != "31" {
		t.Errorf("Decimal = %q, want 31", v)
	}
}

func TestREPLStart_ClipboardFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	cb := mocks.NewMockClipboard(ctrl)
	cb.EXPECT().ReadAll().Return("", ErrClipboardUnsupported)

	r, _ := newTestREPL(REPLConfig{Paste: true})
	r.SetClipboard(cb)
	r.SetInput(strings.NewReader("exit\n"))

	if err := r.Start(context.Background()); !errors.Is(err, ErrClipboardUnsupported) {
		t.Fatalf("Start() error = %v, want ErrClipboardUnsupported", err)
	}
}

func TestREPLStart_Canceled(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	defer close(release)

	r, _ := newTestREPL(REPLConfig{})
	// The reader never delivers a line, so only the context can end the loop.
	r.SetInput(blockingReader{release})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start() error = %v, want context.Canceled", err)
	}
}

type blockingReader struct{ release chan struct{} }

func (b blockingReader) Read([]byte) (int, error) {
	<-b.release
	return 0, errors.New("closed")
}
