package cli

//go:generate mockgen -source=clipboard.go -destination=mocks/mock_clipboard.go -package=mocks

import (
	"context"
	"errors"
	"io"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/ui"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available
// on this system.
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// Clipboard reads the text held by the system clipboard.
type Clipboard interface {
	// ReadAll returns the clipboard contents.
	ReadAll() (string, error)
}

// SystemClipboard is the Clipboard of the host, backed by the platform's
// clipboard utilities (pbpaste, xclip, xsel, wl-paste or the Windows API).
type SystemClipboard struct{}

// ReadAll returns the clipboard contents.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}

// isTerminal decides whether the wait spinner is drawn.
var isTerminal = ui.IsTerminal

type clipboardResult struct {
	text string
	err  error
}

// ReadClipboard performs the one-time clipboard read that seeds a session.
// The read runs in its own goroutine while a spinner is shown on out, when
// out is a terminal.
//
// Parameters:
//   - ctx: Cancels the wait. The underlying read cannot be interrupted and is
//     abandoned.
//   - cb: The clipboard to read.
//   - out: Where the spinner is drawn.
//
// Returns:
//   - string: The clipboard contents.
//   - error: The read error wrapped with context, or ctx.Err().
func ReadClipboard(ctx context.Context, cb Clipboard, out io.Writer) (string, error) {
	done := make(chan clipboardResult, 1)
	go func() {
		text, err := cb.ReadAll()
		done <- clipboardResult{text: text, err: err}
	}()

	if isTerminal(out) {
		s := newSpinner(spinner.WithWriter(out))
		s.UpdateSuffix(" Reading clipboard...")
		s.Start()
		defer s.Stop()
	}

	select {
	case res := <-done:
		if res.err != nil {
			return "", apperrors.WrapError(res.err, "reading clipboard")
		}
		return res.text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
