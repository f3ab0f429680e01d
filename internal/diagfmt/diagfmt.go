// Package diagfmt renders a diag.Bag as human-readable, captioned,
// colourised terminal output against a source.FileSet — the "print
// diagnostics for a person" counterpart to diag.FormatGolden's stable
// machine-readable form.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"soulcore/internal/diag"
	"soulcore/internal/source"
)

// Options controls how Render draws a diagnostic.
type Options struct {
	// Color enables ANSI severity colouring. Disable for piped output or
	// golden-style tests that must not depend on a terminal.
	Color bool
	// Context is how many lines of source to show above the caret line.
	// Zero shows only the caret line itself.
	Context int
}

var severityColor = map[diag.Severity]*color.Color{
	diag.SevInfo:    color.New(color.FgCyan),
	diag.SevWarning: color.New(color.FgYellow, color.Bold),
	diag.SevError:   color.New(color.FgRed, color.Bold),
}

// Render writes every diagnostic in diags to w, sorted the same way
// diag.Bag.Sort orders them, each followed by the offending source line
// and a caret run under the offending span.
func Render(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts Options) error {
	sorted := make([]diag.Diagnostic, len(diags))
	copy(sorted, diags)
	bag := diag.NewBag(len(sorted))
	for _, d := range sorted {
		bag.Add(d)
	}
	bag.Sort()

	for i, d := range bag.Items() {
		if err := renderOne(w, d, fs, opts); err != nil {
			return err
		}
		if i < len(sorted)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts Options) error {
	label := strings.ToUpper(d.Severity.String())
	if opts.Color {
		if c, ok := severityColor[d.Severity]; ok {
			label = c.Sprint(label)
		}
	}

	if fs == nil {
		_, err := fmt.Fprintf(w, "%s [%s] %s\n", label, d.Code.ID(), d.Message)
		return err
	}

	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	if _, err := fmt.Fprintf(w, "%s [%s] %s:%d:%d: %s\n", label, d.Code.ID(), pathOf(file), start.Line, start.Col, d.Message); err != nil {
		return err
	}

	if err := renderSourceContext(w, file, start, end, opts); err != nil {
		return err
	}
	for _, n := range d.Notes {
		nStart, _ := fs.Resolve(n.Span)
		if _, err := fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", pathOf(fs.Get(n.Span.File)), nStart.Line, nStart.Col, n.Msg); err != nil {
			return err
		}
	}
	return nil
}

func pathOf(f *source.File) string {
	if f == nil {
		return "<unknown>"
	}
	return f.Path
}

// renderSourceContext prints up to opts.Context preceding lines, the
// offending line and a caret run beneath it. Caret alignment uses go-runewidth rather than counting bytes or
// runes: identifiers in this language may contain wide or combining
// characters, and a byte-count caret would land in the wrong column.
func renderSourceContext(w io.Writer, file *source.File, start, end source.LineCol, opts Options) error {
	if file == nil {
		return nil
	}
	for n := int(start.Line) - opts.Context; n < int(start.Line); n++ {
		if n < 1 {
			continue
		}
		if _, err := fmt.Fprintf(w, "    %s\n", file.Line(uint32(n))); err != nil {
			return err
		}
	}
	line := file.Line(start.Line)
	if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
		return err
	}

	prefixRunes := []rune(line)
	col := int(start.Col) - 1
	if col > len(prefixRunes) {
		col = len(prefixRunes)
	}
	if col < 0 {
		col = 0
	}
	leadWidth := runewidth.StringWidth(string(prefixRunes[:col]))

	spanRunes := 1
	if end.Line == start.Line && end.Col > start.Col {
		spanRunes = int(end.Col - start.Col)
	}
	spanEnd := col + spanRunes
	if spanEnd > len(prefixRunes) {
		spanEnd = len(prefixRunes)
	}
	if spanEnd <= col {
		spanEnd = col + 1
	}
	caretWidth := runewidth.StringWidth(string(prefixRunes[col:min(spanEnd, len(prefixRunes))]))
	if caretWidth < 1 {
		caretWidth = 1
	}

	caret := "    " + strings.Repeat(" ", leadWidth) + strings.Repeat("^", caretWidth)
	if opts.Color {
		caret = "    " + strings.Repeat(" ", leadWidth) + color.RedString(strings.Repeat("^", caretWidth))
	}
	_, err := fmt.Fprintln(w, caret)
	return err
}
