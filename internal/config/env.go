package config

import (
	"flag"
	"os"
	"strings"
)

// envBound lists the flags that CONVKIT_ variables can set. Mode selectors
// that start a long-running front end (-interactive, -batch) and one-shot
// inputs (-value, -completion) are command-line only.
var envBound = []string{
	"mode", "base", "unit",
	"port", "log-level", "timeout",
	"concurrency", "cache-size", "max-input",
	"server", "json", "quiet", "advanced", "paste", "no-color",
	"config",
}

// flagAliases names the shorthands that count as setting a flag.
var flagAliases = map[string]string{"quiet": "q"}

// envKey returns the environment variable bound to a flag:
// "cache-size" is read from CONVKIT_CACHE_SIZE.
func envKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name || f.Name == flagAliases[name] {
			found = true
		}
	})
	return found
}

// fieldPinned reports whether the edited field was chosen explicitly.
func fieldPinned(fs *flag.FlagSet) bool {
	for _, name := range []string{"base", "unit"} {
		if isFlagSet(fs, name) || os.Getenv(envKey(name)) != "" {
			return true
		}
	}
	return false
}

// isBoolFlag reports whether f is a boolean flag.
func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// normalizeBool maps the yes/no spellings that flag.BoolVar rejects.
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "yes", "y", "on":
		return "true"
	case "no", "n", "off":
		return "false"
	}
	return val
}

// applyEnvOverrides sets every env-bound flag that the command line left
// alone from its CONVKIT_ variable, through the flag's own parser.
//
// An invalid CONVKIT_BASE is returned as the base parser's
// ValidationError, since the edited field would otherwise be silently
// wrong. Other malformed values leave the flag at its default.
func applyEnvOverrides(fs *flag.FlagSet) error {
	for _, name := range envBound {
		if isFlagSet(fs, name) {
			continue
		}
		val := os.Getenv(envKey(name))
		if val == "" {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if isBoolFlag(f) {
			val = normalizeBool(val)
		}
		if err := fs.Set(name, val); err != nil && name == "base" {
			return err
		}
	}
	return nil
}
