package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/byteconv"
	"github.com/agbru/convkit/internal/cli"
	"github.com/agbru/convkit/internal/config"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/logging"
	"github.com/agbru/convkit/internal/orchestration"
	"github.com/agbru/convkit/internal/server"
	"github.com/agbru/convkit/internal/service"
	"github.com/agbru/convkit/internal/ui"
	"github.com/agbru/convkit/pkg/models"
)

// Application represents the convkit application instance.
// It encapsulates the configuration and its collaborators and provides
// methods to run the application in its various modes (one-shot, batch,
// REPL, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service performs the conversions of the one-shot, batch and server
	// modes. The REPL edits sessions directly.
	Service service.Service
	// Clipboard seeds a conversion when -paste is set.
	Clipboard cli.Clipboard
	// Logger receives structured diagnostics.
	Logger logging.Logger
	// In is the source of batch lines for "-batch -" and of REPL commands.
	In io.Reader
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output and logs.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "convkit"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(errWriter, "convkit", level)

	svc, err := service.NewConversionService(
		service.WithCacheSize(cfg.CacheSize),
		service.WithMaxInput(cfg.MaxInput),
		service.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Service:   svc,
		Clipboard: cli.SystemClipboard{},
		Logger:    logger,
		In:        os.Stdin,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, REPL, batch
// or one-shot conversion).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Handle completion script generation
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor, out)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	case a.Config.BatchFile != "":
		return a.runBatch(ctx, out)
	}
	return a.runConvert(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	units := make([]string, 0, len(a.Service.Units()))
	for _, u := range a.Service.Units() {
		units = append(units, u.Name)
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, units); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until a termination signal. It is not
// bounded by -timeout.
func (a *Application) runServer(ctx context.Context) int {
	ctx, lifecycle := SetupLifecycle(ctx, 0)
	defer lifecycle.Cleanup()

	srv, err := server.NewServer(a.Config, server.WithService(a.Service), server.WithLogger(a.Logger))
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	if err := srv.Start(ctx); err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode. It is not bounded by -timeout.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, 0)
	defer lifecycle.Cleanup()

	repl := cli.NewREPL(cli.REPLConfig{
		Mode:        a.Config.Mode,
		Advanced:    a.Config.Advanced,
		Initial:     a.Config.Value,
		Paste:       a.Config.Paste,
		HistoryFile: cli.DefaultHistoryFile(),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.SetClipboard(a.Clipboard)
	repl.SetLogger(a.Logger)

	if err := repl.Start(ctx); err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	return apperrors.ExitSuccess
}

// runBatch converts every line of the batch file, or of In for "-".
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	src := a.In
	if a.Config.BatchFile != "-" {
		f, err := os.Open(a.Config.BatchFile)
		if err != nil {
			return apperrors.HandleError(apperrors.WrapError(err, "opening batch file"), a.ErrWriter, ui.Colors{})
		}
		defer f.Close()
		src = f
	}

	jobs, err := orchestration.ReadJobs(src, a.Config.MaxInput)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	a.Logger.Debug("batch loaded",
		logging.String("source", a.Config.BatchFile),
		logging.Int("lines", len(jobs)),
		logging.Int("concurrency", a.Config.Concurrency))

	opts := orchestration.OptionsFromConfig(a.Config, !a.Config.FieldPinned)
	lines, err := orchestration.ExecuteBatch(ctx, a.Service, jobs, opts)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	return orchestration.AnalyzeBatchResults(lines, a.Config.JSONOutput, out)
}

// runConvert performs a one-shot conversion of -value, the positional
// argument, or the clipboard.
func (a *Application) runConvert(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	text, autoDetect := a.Config.Value, a.Config.AutoDetect
	if a.Config.Paste {
		spinnerOut := out
		if a.Config.Quiet || a.Config.JSONOutput {
			spinnerOut = io.Discard
		}
		t, err := cli.ReadClipboard(ctx, a.Clipboard, spinnerOut)
		if err != nil {
			return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
		}
		text, autoDetect = t, true
	}
	if text == "" {
		err := apperrors.NewConfigError("nothing to convert: pass a value, -paste, -batch, -interactive or -server")
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}

	outputCfg := cli.OutputConfig{JSON: a.Config.JSONOutput, Quiet: a.Config.Quiet}
	if a.Config.Mode == config.ModeBytes {
		return a.convertBytes(ctx, text, autoDetect, outputCfg, out)
	}
	return a.convertBase(ctx, text, autoDetect, outputCfg, out)
}

func (a *Application) convertBase(ctx context.Context, text string, autoDetect bool, outputCfg cli.OutputConfig, out io.Writer) int {
	req := models.BaseRequest{Value: text, Base: a.Config.Base}
	if autoDetect {
		det, err := a.Service.Detect(ctx, text)
		if err != nil {
			return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
		}
		req = models.BaseRequest{Value: det.Base.Text, Base: det.Base.Base, Prefix: det.Base.Prefix}
	}
	if a.Config.Advanced {
		req.Bases = baseconv.AdvancedBases()
	}

	resp, err := a.Service.ConvertBase(ctx, req)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	if err := cli.DisplayBase(out, resp, outputCfg); err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	if !resp.Valid {
		return a.unresolved(text, resp.Error)
	}
	return apperrors.ExitSuccess
}

func (a *Application) convertBytes(ctx context.Context, text string, autoDetect bool, outputCfg cli.OutputConfig, out io.Writer) int {
	req := models.ByteRequest{Value: text, Unit: a.Config.Unit}
	if autoDetect {
		det, err := a.Service.Detect(ctx, text)
		if err != nil {
			return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
		}
		req = models.ByteRequest{Value: det.Bytes.Text, Unit: det.Bytes.Unit}
	}
	if req.Unit == "" {
		u, _ := byteconv.DefaultLadder().ByExponent(byteconv.Bytes)
		req.Unit = u.Name
	}

	resp, err := a.Service.ConvertBytes(ctx, req)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	if err := cli.DisplayBytes(out, resp, outputCfg); err != nil {
		return apperrors.HandleError(err, a.ErrWriter, ui.Colors{})
	}
	if !resp.Valid {
		return a.unresolved(text, resp.Error)
	}
	return apperrors.ExitSuccess
}

// unresolved logs text that did not resolve and returns its exit status.
// The reason was already rendered on out.
func (a *Application) unresolved(text, reason string) int {
	var cause error
	if reason != "" {
		cause = errors.New(reason)
	}
	err := apperrors.NewConversionError(text, cause)
	a.Logger.Debug("conversion did not resolve", logging.Err(err))
	return apperrors.ExitCode(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
