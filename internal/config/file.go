package config

import (
	"flag"
	"fmt"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/convkit/internal/errors"
)

// applyFileDefaults reads a TOML file whose keys are flag names, e.g.
//
//	mode = "bytes"
//	unit = "KB"
//	timeout = "10s"
//	concurrency = 4
//
// and sets every flag that neither the command line nor the environment set.
// Unlike the environment, the file is explicit input: an unknown key or a
// malformed value is a ConfigError.
func applyFileDefaults(fs *flag.FlagSet, path string) error {
	var values map[string]any
	if _, err := toml.DecodeFile(path, &values); err != nil {
		return apperrors.NewConfigError("reading config file %s: %v", path, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if name == "config" || !slices.Contains(envBound, name) {
			return apperrors.NewConfigError("config file %s: unknown key %q", path, name)
		}
		if isFlagSet(fs, name) {
			continue
		}
		if err := fs.Set(name, fmt.Sprint(values[name])); err != nil {
			return apperrors.NewConfigError("config file %s: %s: %v", path, name, err)
		}
	}
	return nil
}
