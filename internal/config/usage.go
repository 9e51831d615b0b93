package config

import (
	"flag"
	"fmt"

	"github.com/agbru/convkit/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		t := ui.GetCurrentTheme()
		if ui.ColorsDisabled(false, out) {
			t = ui.NoColorTheme
		}

		fmt.Fprintf(out, "\n%sconvkit%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Exact base and byte-size conversions.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [value]\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s 0x1A                 %s# detect the base, show bin/oct/dec/hex%s\n", fs.Name(), t.Muted, t.Reset)
		fmt.Fprintf(out, "  %s -mode bytes 1.5 MB   %s# show every unit and the best one%s\n", fs.Name(), t.Muted, t.Reset)
		fmt.Fprintf(out, "  %s -base 36 -value zz   %s# read the value in base 36%s\n\n", fs.Name(), t.Muted, t.Reset)
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-25s%s %s", t.Label, flagSig, t.Reset, usage)

			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Muted, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
