package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/agbru/convkit/internal/ui"
	"github.com/agbru/convkit/pkg/models"
)

// NoEdit marks a table with no highlighted row.
const NoEdit = -1

// editedMarker prefixes the row holding the override text.
const editedMarker = "›"

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func flush(out io.Writer, tw *tabwriter.Writer) {
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

// RenderBaseFields writes one row per base field. The row whose base equals
// edited is marked and highlighted; pass NoEdit to highlight nothing. Unset
// fields render as an empty cell.
//
// Parameters:
//   - out: The destination writer.
//   - fields: The fields, in display order.
//   - edited: The base of the edited field, or NoEdit.
func RenderBaseFields(out io.Writer, fields []models.BaseField, edited int) {
	tw := newTable(out)
	for _, f := range fields {
		marker, text := " ", f.Text
		if f.Base == edited {
			marker = editedMarker
			text = ui.ColorEdited() + text + ui.ColorReset()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, f.Name, strconv.Itoa(f.Base), text)
	}
	flush(out, tw)
}

// RenderUnitFields writes one row per unit followed by the best unit
// expression, when there is one.
//
// Parameters:
//   - out: The destination writer.
//   - fields: The unit fields, smallest unit first.
//   - edited: The exponent of the edited unit, or NoEdit.
//   - best: The best unit expression, or "".
func RenderUnitFields(out io.Writer, fields []models.UnitField, edited int, best string) {
	tw := newTable(out)
	for _, f := range fields {
		marker, text := " ", f.Text
		if int(f.Exponent) == edited {
			marker = editedMarker
			text = ui.ColorEdited() + text + ui.ColorReset()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, f.Unit, text)
	}
	flush(out, tw)
	if best != "" {
		fmt.Fprintf(out, "\n%sBest:%s %s%s%s\n", ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), best, ui.ColorReset())
	}
}

// RenderDetection shows where both converters would route a pasted string.
func RenderDetection(out io.Writer, det models.Detection) {
	tw := newTable(out)
	fmt.Fprintf(tw, "%sConverter\tField\tText%s\n", ui.ColorBold(), ui.ColorReset())
	base := strconv.Itoa(det.Base.Base)
	if det.Base.Prefix != "" {
		base += " (prefix " + det.Base.Prefix + ")"
	}
	fmt.Fprintf(tw, "base\t%s\t%s\n", base, det.Base.Text)
	fmt.Fprintf(tw, "bytes\t%s\t%s\n", det.Bytes.Unit, det.Bytes.Text)
	flush(out, tw)
}

// renderInvalid reports why a conversion left the value unset.
func renderInvalid(out io.Writer, reason string) {
	if reason == "" {
		reason = "value is unset"
	}
	fmt.Fprintf(out, "%sInvalid input:%s %s\n", ui.ColorRed(), ui.ColorReset(), reason)
}
