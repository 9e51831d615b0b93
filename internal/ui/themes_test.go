package ui

import (
	"bytes"
	"os"
	"testing"
)

// Not parallel: the tests swap the package-level theme.

func TestInitTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name    string
		noColor bool
		noEnv   bool
		out     func(t *testing.T) *os.File
	}{
		{name: "no-color flag", noColor: true},
		{name: "NO_COLOR environment", noEnv: true},
		{name: "regular file", out: func(t *testing.T) *os.File {
			f, err := os.CreateTemp(t.TempDir(), "out")
			if err != nil {
				t.Fatal(err)
			}
			t.Cleanup(func() { f.Close() })
			return f
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.noEnv {
				t.Setenv("NO_COLOR", "")
			}
			out := os.Stdout
			if tt.out != nil {
				out = tt.out(t)
			}
			SetCurrentTheme(DarkTheme)
			InitTheme(tt.noColor, out)
			if got := GetCurrentTheme().Name; got != NoColorTheme.Name {
				t.Errorf("theme = %q, want %q", got, NoColorTheme.Name)
			}
		})
	}
}

func TestColorsDisabled(t *testing.T) {
	if !ColorsDisabled(false, &bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true")
	}
}

func TestThemeRoles(t *testing.T) {
	roles := []string{
		DarkTheme.Label, DarkTheme.Value, DarkTheme.Muted, DarkTheme.Valid,
		DarkTheme.Invalid, DarkTheme.Warning, DarkTheme.Edited, DarkTheme.Bold, DarkTheme.Reset,
	}
	for i, r := range roles {
		if r == "" {
			t.Errorf("dark role %d is empty", i)
		}
	}
	if NoColorTheme != (Theme{Name: "none"}) {
		t.Error("NoColorTheme should have only empty roles")
	}
}

func TestColorFunctions(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Invalid || ColorGreen() != DarkTheme.Valid || ColorCyan() != DarkTheme.Value {
		t.Error("color functions do not follow the dark theme roles")
	}
	if ColorEdited() != DarkTheme.Edited || ColorBold() != DarkTheme.Bold {
		t.Error("edited/bold do not follow the dark theme")
	}
	var c Colors
	if c.Red() != DarkTheme.Invalid || c.Yellow() != DarkTheme.Warning || c.Reset() != DarkTheme.Reset {
		t.Error("Colors does not follow the dark theme")
	}

	SetCurrentTheme(NoColorTheme)
	if ColorReset()+ColorRed()+ColorYellow()+ColorBold()+ColorCyan() != "" {
		t.Error("color functions should be empty with the none theme")
	}
}
