// Package orchestration runs batch conversions: many input lines converted
// concurrently through the service layer, reported in input order.
package orchestration

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/config"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/service"
	"github.com/agbru/convkit/internal/ui"
	"github.com/agbru/convkit/pkg/models"
)

// Job is one input line of a batch.
type Job struct {
	// Line is the 1-based line number in the source.
	Line int
	// Input is the line with surrounding whitespace removed.
	Input string
}

// BatchOptions selects how every line of a batch is converted.
type BatchOptions struct {
	// Mode is config.ModeBase or config.ModeBytes.
	Mode string
	// Base is the base of every line in base mode, unless AutoDetect is set.
	Base int
	// Unit is the unit of every line in bytes mode, unless AutoDetect is set.
	Unit string
	// AutoDetect routes each line through the input classifier.
	AutoDetect bool
	// Advanced renders every base from 2 to 36 instead of the simple view.
	Advanced bool
	// Concurrency bounds the number of conversions in flight.
	Concurrency int
}

// OptionsFromConfig derives batch options from the application configuration.
// Batch lines are auto-detected unless -base or -unit pinned them.
func OptionsFromConfig(cfg config.AppConfig, autoDetect bool) BatchOptions {
	return BatchOptions{
		Mode:        cfg.Mode,
		Base:        cfg.Base,
		Unit:        cfg.Unit,
		AutoDetect:  autoDetect,
		Advanced:    cfg.Advanced,
		Concurrency: cfg.Concurrency,
	}
}

// ReadJobs reads one job per line. Blank lines and lines starting with '#'
// are skipped but still counted, so Job.Line matches the source.
//
// Parameters:
//   - r: The source of the lines.
//   - maxLine: The longest accepted line, in bytes.
//
// Returns:
//   - []Job: The jobs in source order.
//   - error: An I/O error, or bufio.ErrTooLong wrapped in a ValidationError.
func ReadJobs(r io.Reader, maxLine int) ([]Job, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine+1)), maxLine+1)

	var jobs []Job
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		jobs = append(jobs, Job{Line: line, Input: text})
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, apperrors.NewValidationError("batch", fmt.Sprintf("line %d exceeds %d bytes", line+1, maxLine), nil)
		}
		return nil, apperrors.WrapError(err, "reading batch input")
	}
	return jobs, nil
}

// ExecuteBatch converts every job concurrently, bounded by
// opts.Concurrency.
//
// A line that does not resolve, or that the service rejects as invalid, is
// reported in its BatchLine and does not stop the batch. Cancellation and
// unexpected service errors stop the batch.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - svc: The conversion service.
//   - jobs: The lines to convert.
//   - opts: How to convert them.
//
// Returns:
//   - []models.BatchLine: One result per job, in job order.
//   - error: The first error that stopped the batch.
func ExecuteBatch(ctx context.Context, svc service.Service, jobs []Job, opts BatchOptions) ([]models.BatchLine, error) {
	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	results := make([]models.BatchLine, len(jobs))
	for i, job := range jobs {
		g.Go(func() error {
			line, err := convertLine(ctx, svc, job, opts)
			if err != nil {
				return fmt.Errorf("line %d: %w", job.Line, err)
			}
			results[i] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// convertLine converts a single job. Invalid-input errors are folded into
// the returned BatchLine.
func convertLine(ctx context.Context, svc service.Service, job Job, opts BatchOptions) (models.BatchLine, error) {
	line := models.BatchLine{Line: job.Line, Input: job.Input, Mode: opts.Mode}

	var det models.Detection
	if opts.AutoDetect {
		d, err := svc.Detect(ctx, job.Input)
		if err != nil {
			return lineError(line, err)
		}
		det = d
	}

	switch opts.Mode {
	case config.ModeBytes:
		req := models.ByteRequest{Value: job.Input, Unit: opts.Unit}
		if opts.AutoDetect {
			req = models.ByteRequest{Value: det.Bytes.Text, Unit: det.Bytes.Unit}
		}
		resp, err := svc.ConvertBytes(ctx, req)
		if err != nil {
			return lineError(line, err)
		}
		line.Bytes = &resp
	default:
		req := models.BaseRequest{Value: job.Input, Base: opts.Base}
		if opts.AutoDetect {
			req = models.BaseRequest{Value: det.Base.Text, Base: det.Base.Base, Prefix: det.Base.Prefix}
		}
		if opts.Advanced {
			req.Bases = baseconv.AdvancedBases()
		}
		resp, err := svc.ConvertBase(ctx, req)
		if err != nil {
			return lineError(line, err)
		}
		line.Base = &resp
	}
	return line, nil
}

// lineError records err in line when it is an input problem, and returns it
// otherwise.
func lineError(line models.BatchLine, err error) (models.BatchLine, error) {
	var valErr apperrors.ValidationError
	if errors.As(err, &valErr) || errors.Is(err, service.ErrInputTooLong) {
		line.Error = err.Error()
		return line, nil
	}
	return line, err
}

// lineValid reports whether a batch line resolved to a value.
func lineValid(l models.BatchLine) bool {
	switch {
	case l.Error != "":
		return false
	case l.Base != nil:
		return l.Base.Valid
	case l.Bytes != nil:
		return l.Bytes.Valid
	}
	return false
}

// AnalyzeBatchResults prints the batch report and computes the exit code.
//
// Parameters:
//   - lines: The results of ExecuteBatch.
//   - jsonOutput: Print a JSON array instead of a table.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: ExitSuccess when every line resolved, ExitErrorInvalidInput
//     otherwise.
func AnalyzeBatchResults(lines []models.BatchLine, jsonOutput bool, out io.Writer) int {
	invalid := 0
	for _, l := range lines {
		if !lineValid(l) {
			invalid++
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if lines == nil {
			lines = []models.BatchLine{}
		}
		if err := enc.Encode(lines); err != nil {
			return apperrors.HandleError(err, out, nil)
		}
	} else {
		writeTable(lines, out)
		fmt.Fprintf(out, "\n%d line(s): %s%d valid%s, ", len(lines), ui.ColorGreen(), len(lines)-invalid, ui.ColorReset())
		if invalid > 0 {
			fmt.Fprintf(out, "%s%d invalid%s\n", ui.ColorRed(), invalid, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "0 invalid\n")
		}
	}

	if invalid > 0 {
		return apperrors.ExitErrorInvalidInput
	}
	return apperrors.ExitSuccess
}

// writeTable renders one row per line. Base lines show their decimal value
// and bytes lines their best unit.
func writeTable(lines []models.BatchLine, out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sLine\tInput\tFrom\tResult\tStatus%s\n", ui.ColorBold(), ui.ColorReset())
	for _, l := range lines {
		from, result, status := "", "", ""
		switch {
		case l.Error != "":
			status = ui.ColorRed() + l.Error + ui.ColorReset()
		case l.Base != nil:
			from = baseconv.Name(l.Base.Base)
			result = l.Base.Decimal
			status = statusText(l.Base.Valid, l.Base.Error)
		case l.Bytes != nil:
			from = l.Bytes.Unit
			result = l.Bytes.Best
			status = statusText(l.Bytes.Valid, l.Bytes.Error)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s%s%s\t%s\n", l.Line, l.Input, from, ui.ColorCyan(), result, ui.ColorReset(), status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

func statusText(valid bool, reason string) string {
	if valid {
		return ui.ColorGreen() + "ok" + ui.ColorReset()
	}
	if reason == "" {
		reason = "invalid"
	}
	return ui.ColorRed() + reason + ui.ColorReset()
}
