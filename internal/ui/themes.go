// Package ui holds the terminal palette of convkit's front ends: field
// tables, batch reports, REPL banners and usage text. Colors are off when
// -no-color is given, when NO_COLOR is set, or when the output is not a
// terminal, so piped output is always plain text.
package ui

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Theme maps each role of convkit's output to an ANSI escape code. An
// empty string disables the role.
type Theme struct {
	Name string
	// Label colors field names, flags and table headers.
	Label string
	// Value colors converted representations.
	Value string
	// Muted colors hints and defaults.
	Muted string
	// Valid marks resolved values and successful batch lines.
	Valid string
	// Invalid marks text that did not resolve and error prefixes.
	Invalid string
	// Warning marks notices: detection results, cancellation, section titles.
	Warning string
	// Edited highlights the field holding the override text.
	Edited string
	Bold   string
	Reset  string
}

var (
	// DarkTheme is the 256-color palette used on terminals.
	DarkTheme = Theme{
		Name:    "dark",
		Label:   "\033[38;5;39m",  // blue
		Value:   "\033[38;5;51m",  // cyan
		Muted:   "\033[38;5;245m", // grey
		Valid:   "\033[38;5;82m",  // green
		Invalid: "\033[38;5;196m", // red
		Warning: "\033[38;5;220m", // yellow
		Edited:  "\033[7m",        // reverse video
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// NoColorTheme leaves every role empty.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorsDisabled reports whether output to out must be plain: noColor is
// set, NO_COLOR is present in the environment (https://no-color.org/), or out
// is not a terminal.
func ColorsDisabled(noColor bool, out io.Writer) bool {
	_, env := os.LookupEnv("NO_COLOR")
	return noColor || env || !IsTerminal(out)
}

// InitTheme selects DarkTheme, or NoColorTheme when ColorsDisabled.
//
// Parameters:
//   - noColor: The -no-color flag.
//   - out: The writer the application renders to.
func InitTheme(noColor bool, out io.Writer) {
	t := DarkTheme
	if ColorsDisabled(noColor, out) {
		t = NoColorTheme
	}
	SetCurrentTheme(t)
}
