package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/agbru/convkit/internal/ui"
)

// LineSource yields one REPL command per prompt. io.EOF ends the session.
type LineSource interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// prompter is implemented by sources whose prompt is printed by the REPL
// loop itself, which keeps every write to the output on one goroutine.
type prompter interface {
	Prompt(prompt string)
}

// streamSource reads commands from a plain stream, such as a pipe or a
// test buffer.
type streamSource struct {
	r   *bufio.Reader
	out io.Writer
}

func newStreamSource(in io.Reader, out io.Writer) *streamSource {
	return &streamSource{r: bufio.NewReader(in), out: out}
}

// Prompt writes prompt to out in the theme colour.
func (s *streamSource) Prompt(prompt string) {
	fmt.Fprintf(s.out, "%s%s%s", ui.ColorGreen(), prompt, ui.ColorReset())
}

func (s *streamSource) ReadLine(string) (string, error) {
	line, err := s.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		// Last line without a trailing newline.
		return line, nil
	}
	return line, err
}

func (s *streamSource) Close() error { return nil }

// terminalSource edits commands with liner: arrow-key history, cursor
// movement and a history file that survives the session.
type terminalSource struct {
	state   *liner.State
	history string
}

func newTerminalSource(historyFile string) *terminalSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	t := &terminalSource{state: state, history: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
	}
	return t
}

// ReadLine prompts without colour codes, since liner measures the prompt
// width itself. Ctrl+C ends the session like Ctrl+D.
func (t *terminalSource) ReadLine(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves the history with owner-only permissions and restores the
// terminal mode.
func (t *terminalSource) Close() error {
	if t.history != "" {
		if err := os.MkdirAll(filepath.Dir(t.history), 0o700); err == nil {
			if f, err := os.OpenFile(t.history, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				_, _ = t.state.WriteHistory(f)
				f.Close()
			}
		}
	}
	return t.state.Close()
}

// DefaultHistoryFile returns the REPL history path under the user's config
// directory, or "" when there is none.
func DefaultHistoryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "convkit", "history")
}

// newLineSource picks liner when the REPL talks to an interactive terminal
// on both ends and a plain stream reader otherwise.
func newLineSource(in io.Reader, out io.Writer, historyFile string) LineSource {
	if f, ok := in.(*os.File); ok && f == os.Stdin && ui.IsTerminal(f) && ui.IsTerminal(out) {
		return newTerminalSource(historyFile)
	}
	return newStreamSource(in, out)
}
