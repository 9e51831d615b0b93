package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/convkit/pkg/models"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// JSON prints the wire model instead of a table.
	JSON bool
	// Quiet prints only the converted text, for scripts. It has no effect
	// when JSON is set.
	Quiet bool
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatQuietBase formats a base conversion for quiet mode: the text of each
// field, one per line. An invalid conversion formats as "".
func FormatQuietBase(resp models.BaseResponse) string {
	if !resp.Valid {
		return ""
	}
	lines := make([]string, len(resp.Fields))
	for i, f := range resp.Fields {
		lines[i] = f.Text
	}
	return strings.Join(lines, "\n")
}

// FormatQuietBytes formats a magnitude conversion for quiet mode: its best
// unit expression, or "" when it is invalid.
func FormatQuietBytes(resp models.ByteResponse) string {
	return resp.Best
}

// DisplayBase prints a base conversion.
//
// Parameters:
//   - out: The destination writer.
//   - resp: The conversion result.
//   - cfg: The output format.
//
// Returns:
//   - error: An error if the JSON encoding fails.
func DisplayBase(out io.Writer, resp models.BaseResponse, cfg OutputConfig) error {
	switch {
	case cfg.JSON:
		return WriteJSON(out, resp)
	case cfg.Quiet:
		if s := FormatQuietBase(resp); s != "" {
			fmt.Fprintln(out, s)
		}
		return nil
	}
	RenderBaseFields(out, resp.Fields, resp.Base)
	if !resp.Valid {
		fmt.Fprintln(out)
		renderInvalid(out, resp.Error)
	}
	return nil
}

// DisplayBytes prints a magnitude conversion. The edited unit is looked up
// among the response fields by name.
func DisplayBytes(out io.Writer, resp models.ByteResponse, cfg OutputConfig) error {
	switch {
	case cfg.JSON:
		return WriteJSON(out, resp)
	case cfg.Quiet:
		if s := FormatQuietBytes(resp); s != "" {
			fmt.Fprintln(out, s)
		}
		return nil
	}
	edited := NoEdit
	for _, f := range resp.Fields {
		if f.Unit == resp.Unit {
			edited = int(f.Exponent)
		}
	}
	RenderUnitFields(out, resp.Fields, edited, resp.Best)
	if !resp.Valid {
		fmt.Fprintln(out)
		renderInvalid(out, resp.Error)
	}
	return nil
}
