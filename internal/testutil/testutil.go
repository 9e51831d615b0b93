// Package testutil provides helpers shared by the package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// ansiRegex matches CSI escape sequences such as colour codes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes so rendered output can be compared as
// plain text.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// LoadGolden decodes testdata/<name> from the calling package's directory.
// The test fails if the file is missing, malformed or holds a zero value.
func LoadGolden[T any](t testing.TB, name string) T {
	t.Helper()
	var v T
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading golden file %s: %v (run 'go run ./cmd/generate-golden')", name, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decoding golden file %s: %v", name, err)
	}
	return v
}
