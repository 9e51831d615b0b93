// Package config provides the configuration management for the convkit
// application. It defines the configuration structure, parses command-line
// flags with environment and TOML file overrides, and validates the result.
// The priority is CLI flags, then CONVKIT_ variables, then the -config file,
// then defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/byteconv"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/logging"
)

const (
	// EnvPrefix is the prefix for all environment variables used by convkit.
	EnvPrefix = "CONVKIT_"
)

// Conversion modes.
const (
	ModeBase  = "base"
	ModeBytes = "bytes"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultMode is the converter used when none is chosen.
	DefaultMode = ModeBase
	// DefaultBase is the base of the edited field in base mode.
	DefaultBase = 10
	// DefaultUnit is the unit of the edited field in bytes mode.
	DefaultUnit = "Bytes"
	// DefaultTimeout bounds one-shot and batch runs.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultCacheSize is the number of memoised conversion responses.
	DefaultCacheSize = 1024
	// DefaultMaxInput is the longest accepted input, in bytes.
	DefaultMaxInput = 1 << 20
	// DefaultLogLevel is the level of the structured logger.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags and CONVKIT_ environment variables.
type AppConfig struct {
	// Mode selects the converter: "base" or "bytes".
	Mode string
	// Value is the text of the edited field for a one-shot conversion.
	Value string
	// AutoDetect routes Value through the input classifier instead of Base
	// or Unit. It is set when the value comes from a positional argument.
	AutoDetect bool
	// FieldPinned reports that -base or -unit was given on the command line,
	// through the environment or in the config file. Batch lines are
	// auto-detected otherwise.
	FieldPinned bool
	// Base is the base of the edited field in base mode.
	Base int
	// Unit is the unit name or alias of the edited field in bytes mode.
	Unit string
	// Paste reads the initial value from the system clipboard.
	Paste bool
	// Advanced shows every base from 2 to 36 instead of the simple view.
	Advanced bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Quiet prints only the best representation, for scripts.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// BatchFile is a file of values to convert, one per line ("-" for stdin).
	BatchFile string
	// Concurrency bounds the number of conversions running at once in batch
	// mode.
	Concurrency int
	// Timeout sets the maximum duration of a one-shot or batch run.
	Timeout time.Duration
	// CacheSize is the capacity of the service's response cache (0 disables it).
	CacheSize int
	// MaxInput is the longest accepted input, in bytes.
	MaxInput int
	// LogLevel is the level of the structured logger.
	LogLevel string
	// ConfigFile is the TOML file read after the flags and the environment.
	ConfigFile string
	// Completion, if set, generates shell completion script for the specified shell.
	// Valid values are: "bash", "zsh", "fish", "powershell".
	Completion string
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Mode != ModeBase && c.Mode != ModeBytes {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: '%s' or '%s'", c.Mode, ModeBase, ModeBytes)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Concurrency < 1 {
		return apperrors.NewConfigError("concurrency must be at least 1: %d", c.Concurrency)
	}
	if c.CacheSize < 0 {
		return apperrors.NewConfigError("cache size cannot be negative: %d", c.CacheSize)
	}
	if c.MaxInput <= 0 {
		return apperrors.NewConfigError("max input length must be strictly positive: %d", c.MaxInput)
	}
	if _, err := byteconv.ParseUnit(c.Unit); err != nil {
		return apperrors.NewConfigError("unrecognized unit: '%s'", c.Unit)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Completion != "" && !isSupportedShell(c.Completion) {
		return apperrors.NewConfigError("unsupported shell for completion: '%s'", c.Completion)
	}
	return nil
}

func isSupportedShell(shell string) bool {
	switch shell {
	case "bash", "zsh", "fish", "powershell":
		return true
	}
	return false
}

// baseFlag accepts a base as a number or a name ("16", "hex").
type baseFlag struct{ base *int }

func (f baseFlag) String() string {
	if f.base == nil {
		return ""
	}
	return strconv.Itoa(*f.base)
}

func (f baseFlag) Set(s string) error {
	b, err := baseconv.ParseBase(s)
	if err != nil {
		return err
	}
	*f.base = b
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. Positional arguments are joined into Value and routed through the
// input classifier.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a flag parsing error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{Base: DefaultBase}
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Converter to use: 'base' or 'bytes'.")
	fs.StringVar(&config.Value, "value", "", "Text of the edited field.")
	fs.Var(baseFlag{&config.Base}, "base", "Base of the edited field, 2 to 36 or a name (bin, oct, dec, hex).")
	fs.StringVar(&config.Unit, "unit", DefaultUnit, "Unit of the edited field (bits, Bytes, KB, MB, GB, TB, PB, EB).")
	fs.BoolVar(&config.Paste, "paste", false, "Read the initial value from the clipboard and detect its base or unit.")
	fs.BoolVar(&config.Advanced, "advanced", false, "Show every base from 2 to 36.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.BatchFile, "batch", "", "Convert every line of a file ('-' for stdin).")
	fs.IntVar(&config.Concurrency, "concurrency", runtime.NumCPU(), "Maximum concurrent conversions in batch mode.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for a one-shot or batch run.")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Number of conversion responses to cache (0 to disable).")
	fs.IntVar(&config.MaxInput, "max-input", DefaultMaxInput, "Longest accepted input, in bytes.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or off.")
	fs.StringVar(&config.ConfigFile, "config", "", "TOML file of flag defaults (keys are flag names).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if err := applyEnvOverrides(fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	if config.ConfigFile != "" {
		if err := applyFileDefaults(fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
	}

	config.FieldPinned = fieldPinned(fs)
	if config.Value == "" && fs.NArg() > 0 {
		config.Value = strings.Join(fs.Args(), " ")
		config.AutoDetect = true
	}
	config.Mode = strings.ToLower(config.Mode)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
