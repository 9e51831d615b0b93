package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/convkit/internal/cli/mocks"
)

// MockSpinner records how the clipboard wait drove it.
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("suffix = %q, want %q", s.Suffix, " test")
	}
}

func TestReadClipboard(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	cb := mocks.NewMockClipboard(ctrl)
	cb.EXPECT().ReadAll().Return("0xff", nil)

	got, err := ReadClipboard(context.Background(), cb, io.Discard)
	if err != nil {
		t.Fatalf("ReadClipboard() error = %v", err)
	}
	if got != "0xff" {
		t.Errorf("ReadClipboard() = %q, want %q", got, "0xff")
	}
}

func TestReadClipboard_Error(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	cb := mocks.NewMockClipboard(ctrl)
	cb.EXPECT().ReadAll().Return("", ErrClipboardUnsupported)

	_, err := ReadClipboard(context.Background(), cb, io.Discard)
	if !errors.Is(err, ErrClipboardUnsupported) {
		t.Fatalf("error = %v, want wrapped ErrClipboardUnsupported", err)
	}
	if !strings.Contains(err.Error(), "reading clipboard") {
		t.Errorf("error %q lacks context", err)
	}
}

// blockingClipboard never answers until released.
type blockingClipboard struct{ release chan struct{} }

func (b blockingClipboard) ReadAll() (string, error) {
	<-b.release
	return "late", nil
}

func TestReadClipboard_Canceled(t *testing.T) {
	t.Parallel()
	cb := blockingClipboard{release: make(chan struct{})}
	defer close(cb.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadClipboard(ctx, cb, io.Discard); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

// Not parallel: swaps the package-level spinner and terminal hooks.
func TestReadClipboard_ShowsSpinnerOnTerminal(t *testing.T) {
	origSpinner, origTerminal := newSpinner, isTerminal
	defer func() { newSpinner, isTerminal = origSpinner, origTerminal }()

	mock := &MockSpinner{}
	newSpinner = func(...spinner.Option) Spinner { return mock }
	isTerminal = func(io.Writer) bool { return true }

	ctrl := gomock.NewController(t)
	cb := mocks.NewMockClipboard(ctrl)
	cb.EXPECT().ReadAll().Return("1.5 MB", nil)

	if _, err := ReadClipboard(context.Background(), cb, &bytes.Buffer{}); err != nil {
		t.Fatalf("ReadClipboard() error = %v", err)
	}
	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
	}
	if !strings.Contains(mock.suffix, "clipboard") {
		t.Errorf("spinner suffix = %q", mock.suffix)
	}
}
