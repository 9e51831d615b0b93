// Package app wires the convkit binary together: it parses the
// configuration, builds the conversion service and dispatches to the
// one-shot, batch, REPL, server or completion mode.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build metadata, stamped with -ldflags:
//
//	go build -ldflags="-X github.com/agbru/convkit/internal/app.Version=v1.2.3 -X github.com/agbru/convkit/internal/app.Commit=abc123 -X github.com/agbru/convkit/internal/app.BuildDate=2025-01-01T00:00:00Z" ./cmd/convkit
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionFlags = []string{"--version", "-version", "-V"}

// HasVersionFlag reports whether args ask for the version. The flag is
// honoured in any position before a "--" terminator, so that
// "convkit -mode bytes --version" works but "convkit -- -V" converts "-V".
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if slices.Contains(versionFlags, arg) {
			return true
		}
	}
	return false
}

// HasJSONFlag reports whether args carry -json before a "--" terminator.
// It lets --version honour -json without a full flag parse.
func HasJSONFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-json", "--json", "-json=true", "--json=true":
			return true
		}
	}
	return false
}

// VersionData is the build and runtime information printed by --version.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo collects the build metadata and the runtime platform.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes GetVersionInfo to out, as an indented JSON object
// when asJSON is set and as a short block of text otherwise.
//
// Parameters:
//   - out: The destination writer.
//   - asJSON: Emit JSON instead of text.
//
// Returns:
//   - error: A write or encoding error.
func PrintVersion(out io.Writer, asJSON bool) error {
	info := GetVersionInfo()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err := fmt.Fprintf(out, "convkit %s\n  Commit:     %s\n  Built:      %s\n  Go version: %s\n  OS/Arch:    %s/%s\n",
		info.Version, info.Commit, info.BuildDate, info.GoVersion, info.OS, info.Arch)
	return err
}
