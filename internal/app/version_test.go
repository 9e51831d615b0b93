package app

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-mode", "bytes", "1.5", "MB"}, false},
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-mode", "bytes", "-version"}, true},
		{[]string{"-base", "16", "--", "-V"}, false},
		{[]string{"--verbose"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()
			if got := HasVersionFlag(tt.args); got != tt.want {
				t.Errorf("HasVersionFlag(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestHasJSONFlag(t *testing.T) {
	t.Parallel()
	if !HasJSONFlag([]string{"--version", "-json"}) {
		t.Error("-json should be found")
	}
	if HasJSONFlag([]string{"--version", "--", "-json"}) {
		t.Error("-json after -- is a value")
	}
	if HasJSONFlag([]string{"-json=false", "--version"}) {
		t.Error("-json=false asks for text")
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := PrintVersion(&buf, false); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"convkit " + Version, "Commit:", "Built:", runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH} {
			if !strings.Contains(out, want) {
				t.Errorf("output lacks %q:\n%s", want, out)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := PrintVersion(&buf, true); err != nil {
			t.Fatal(err)
		}
		var got VersionData
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("not JSON: %v\n%s", err, buf.String())
		}
		if got != GetVersionInfo() {
			t.Errorf("got %+v, want %+v", got, GetVersionInfo())
		}
	})
}
