package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/byteconv"
	"github.com/agbru/convkit/internal/config"
	"github.com/agbru/convkit/internal/logging"
	"github.com/agbru/convkit/internal/ui"
	"github.com/agbru/convkit/pkg/models"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Mode is the converter shown first: config.ModeBase or config.ModeBytes.
	Mode string
	// Advanced starts the base converter in the advanced view.
	Advanced bool
	// Ladder replaces the default unit ladder when non-empty.
	Ladder byteconv.Ladder
	// Initial is pasted into the first converter before the prompt appears.
	Initial string
	// Paste reads the initial text from the clipboard instead.
	Paste bool
	// HistoryFile keeps the command history of terminal sessions. Empty
	// disables persistence.
	HistoryFile string
}

// REPL is an interactive editing session over one base converter and one
// magnitude converter. Both keep their state while the user switches modes.
type REPL struct {
	config    REPLConfig
	mode      string
	view      int
	base      *baseconv.Session
	bytes     *byteconv.Session
	clipboard Clipboard
	logger    logging.Logger
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - cfg: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance reading stdin, writing stdout and using the
//     system clipboard.
func NewREPL(cfg REPLConfig) *REPL {
	r := &REPL{
		config:    cfg,
		mode:      config.ModeBase,
		view:      baseconv.SimpleView,
		base:      baseconv.NewSession(),
		clipboard: SystemClipboard{},
		logger:    logging.NewNopLogger(),
		in:        os.Stdin,
		out:       os.Stdout,
	}
	if cfg.Mode == config.ModeBytes {
		r.mode = config.ModeBytes
	}
	if cfg.Advanced {
		r.view = baseconv.AdvancedView
	}
	if len(cfg.Ladder) > 0 {
		r.bytes = byteconv.NewSession(byteconv.WithLadder(cfg.Ladder))
	} else {
		r.bytes = byteconv.NewSession()
	}
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// SetClipboard replaces the system clipboard.
func (r *REPL) SetClipboard(cb Clipboard) {
	r.clipboard = cb
}

// SetLogger sets the logger that records edits at debug level.
func (r *REPL) SetLogger(l logging.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Start begins the interactive REPL session. The initial value, from the
// clipboard or from the configuration, is pasted before the first prompt.
// The loop ends on exit, at EOF, or when ctx is done.
//
// Returns:
//   - error: The clipboard error when the initial read fails, or ctx.Err()
//     when the session was interrupted.
func (r *REPL) Start(ctx context.Context) error {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	if err := r.seed(ctx); err != nil {
		return err
	}

	src := newLineSource(r.in, r.out, r.config.HistoryFile)
	defer src.Close()

	type readResult struct {
		line string
		err  error
	}
	prompts := make(chan string)
	results := make(chan readResult, 1)
	defer close(prompts)
	go func() {
		for prompt := range prompts {
			line, err := src.ReadLine(prompt)
			results <- readResult{line, err}
		}
	}()

	for {
		prompt := fmt.Sprintf("convkit[%s]> ", r.mode)
		if p, ok := src.(prompter); ok {
			p.Prompt(prompt)
		}
		prompts <- prompt

		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case res := <-results:
			if res.err != nil {
				if !errors.Is(res.err, io.EOF) {
					fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), res.err, ui.ColorReset())
				}
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			input := strings.TrimSpace(res.line)
			if input == "" {
				continue
			}
			if !r.processCommand(ctx, input) {
				return nil
			}
		}
	}
}

// seed performs the one-time paste that precedes any edit.
func (r *REPL) seed(ctx context.Context) error {
	text := r.config.Initial
	if r.config.Paste {
		t, err := ReadClipboard(ctx, r.clipboard, r.out)
		if err != nil {
			return err
		}
		text = t
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	r.paste(text)
	return nil
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sconvkit - Interactive Mode%s                           %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<field> <text>%s  - Edit a field: a base (16, hex) or a unit (KB, MiB)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spaste [text]%s    - Detect the base or unit of text (clipboard if omitted)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smode <m>%s        - Switch converter (base, bytes)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sview <v>%s        - Switch base view (simple, advanced)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sshow%s            - Display every field\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbest%s            - Display the value in its best unit\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreset%s           - Clear the current converter\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	token, rest := input, ""
	if i := strings.IndexFunc(input, unicode.IsSpace); i >= 0 {
		token, rest = input[:i], strings.TrimSpace(input[i:])
	}

	switch strings.ToLower(token) {
	case "paste":
		r.cmdPaste(ctx, rest)
	case "mode":
		r.cmdMode(rest)
	case "view":
		r.cmdView(rest)
	case "show", "ls":
		r.show()
	case "best":
		r.cmdBest()
	case "reset":
		r.cmdReset()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if !r.edit(token, rest) {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), token, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

// edit sets the field named by token to text in the current converter.
// It returns false when token names no field.
func (r *REPL) edit(token, text string) bool {
	if r.mode == config.ModeBytes {
		exp, ok := byteconv.LookupExponent(token)
		if !ok {
			return false
		}
		if _, ok := r.bytes.Ladder().ByExponent(exp); !ok {
			return false
		}
		r.bytes.Set(exp, text)
		r.logger.Debug("unit field edited", logging.Int("exponent", int(exp)), logging.Bool("valid", r.bytes.Value().IsSet()))
		r.show()
		return true
	}

	base, err := baseconv.ParseBase(token)
	if err != nil {
		return false
	}
	r.base.Set(baseconv.Field{Base: base, ID: r.view}, text, baseconv.Prefix(base))
	r.logger.Debug("base field edited", logging.Int("base", base), logging.Bool("valid", r.base.Value().IsSet()))
	r.show()
	return true
}

// cmdPaste handles the "paste" command.
func (r *REPL) cmdPaste(ctx context.Context, text string) {
	if text == "" {
		t, err := ReadClipboard(ctx, r.clipboard, r.out)
		if err != nil {
			fmt.Fprintf(r.out, "%sPaste failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		text = t
	}
	r.paste(text)
}

// paste routes text through the classifier of the current converter.
func (r *REPL) paste(text string) {
	if r.mode == config.ModeBytes {
		d := r.bytes.Paste(text)
		name := strconv.FormatUint(uint64(d.Exponent), 10)
		if u, ok := r.bytes.Ladder().ByExponent(d.Exponent); ok {
			name = u.Name
		}
		fmt.Fprintf(r.out, "Detected unit: %s%s%s\n", ui.ColorCyan(), name, ui.ColorReset())
	} else {
		d := r.base.Paste(text, r.view)
		fmt.Fprintf(r.out, "Detected base: %s%s%s\n", ui.ColorCyan(), baseconv.Name(d.Base), ui.ColorReset())
	}
	r.show()
}

// cmdMode handles the "mode" command.
func (r *REPL) cmdMode(arg string) {
	switch strings.ToLower(arg) {
	case config.ModeBase:
		r.mode = config.ModeBase
	case config.ModeBytes:
		r.mode = config.ModeBytes
	default:
		fmt.Fprintf(r.out, "%sUsage: mode base|bytes%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	r.show()
}

// cmdView handles the "view" command.
func (r *REPL) cmdView(arg string) {
	switch strings.ToLower(arg) {
	case "simple":
		r.view = baseconv.SimpleView
	case "advanced":
		r.view = baseconv.AdvancedView
	default:
		fmt.Fprintf(r.out, "%sUsage: view simple|advanced%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if r.mode == config.ModeBase {
		r.show()
	}
}

// cmdBest handles the "best" command.
func (r *REPL) cmdBest() {
	if r.mode != config.ModeBytes {
		fmt.Fprintf(r.out, "%sbest is only available in bytes mode%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	expr, ok := r.bytes.BestUnitExpression()
	if !ok {
		renderInvalid(r.out, errText(r.bytes.Err()))
		return
	}
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorCyan(), expr, ui.ColorReset())
}

// cmdReset handles the "reset" command.
func (r *REPL) cmdReset() {
	if r.mode == config.ModeBytes {
		r.bytes.Reset()
	} else {
		r.base.Reset()
	}
	fmt.Fprintf(r.out, "%sCleared.%s\n", ui.ColorGreen(), ui.ColorReset())
}

// show displays every field of the current converter.
func (r *REPL) show() {
	if r.mode == config.ModeBytes {
		r.showBytes()
		return
	}

	bases := baseconv.SimpleBases
	if r.view == baseconv.AdvancedView {
		bases = baseconv.AdvancedBases()
	}
	fields := make([]models.BaseField, len(bases))
	for i, b := range bases {
		fields[i] = models.BaseField{Base: b, Name: baseconv.Name(b), Text: r.base.Get(baseconv.Field{Base: b, ID: r.view})}
	}
	edited := NoEdit
	field, _, ok := r.base.Override()
	if ok && field.ID == r.view {
		edited = field.Base
	}
	RenderBaseFields(r.out, fields, edited)
	if ok && !r.base.Value().IsSet() {
		renderInvalid(r.out, errText(r.base.Err()))
	}
}

func (r *REPL) showBytes() {
	ladder := r.bytes.Ladder()
	fields := make([]models.UnitField, len(ladder))
	for i, u := range ladder {
		fields[i] = models.UnitField{Unit: u.Name, Exponent: u.Exponent, Text: r.bytes.Get(u.Exponent)}
	}
	edited := NoEdit
	exp, _, ok := r.bytes.Override()
	if ok {
		edited = int(exp)
	}
	best, _ := r.bytes.BestUnitExpression()
	RenderUnitFields(r.out, fields, edited, best)
	if ok && !r.bytes.Value().IsSet() {
		renderInvalid(r.out, errText(r.bytes.Err()))
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
