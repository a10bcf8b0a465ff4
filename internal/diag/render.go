package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/workingjubilee/kani/internal/source"
)

// RenderOpts configures human-readable diagnostic output.
type RenderOpts struct {
	Color     bool
	ShowNotes bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	pathColor = color.New(color.Bold)
)

// Render writes every diagnostic in the bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by indented notes. Call bag.Sort() first for stable output.
func Render(w io.Writer, bag *Bag, fs *source.FileSet, opts RenderOpts) {
	for _, d := range bag.Items() {
		writeLine(w, fs, d.Severity, d.Code, d.Primary, d.Message, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "    note: %s\n", n.Msg)
			}
		}
	}
}

func writeLine(w io.Writer, fs *source.FileSet, sev Severity, code Code, sp source.Span, msg string, opts RenderOpts) {
	loc := source.LocationOf(fs, sp)
	prefix := loc.String()
	sevText := sev.String()
	if opts.Color {
		prefix = pathColor.Sprint(prefix)
		switch sev {
		case SevError:
			sevText = errColor.Sprint(sevText)
		case SevWarning:
			sevText = warnColor.Sprint(sevText)
		default:
			sevText = infoColor.Sprint(sevText)
		}
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", prefix, sevText, code.String(), msg)
}
