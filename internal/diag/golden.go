package diag

import (
	"fmt"
	"sort"
	"strings"

	"soulcore/internal/source"
)

type renderedDiag struct {
	severity string
	code     string
	path     string
	line     uint32
	col      uint32
	message  string
}

// FormatGolden renders diagnostics into a stable, single-line-per-entry
// form suitable for golden test files: `SEVERITY code path:line:col message`,
// sorted by (path, line, col, severity, code, message).
func FormatGolden(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]renderedDiag, 0, len(diags))
	for _, d := range diags {
		start, _ := fs.Resolve(d.Primary)
		rendered = append(rendered, renderedDiag{
			severity: strings.ToUpper(d.Severity.String()),
			code:     d.Code.ID(),
			path:     fs.Get(d.Primary.File).Path,
			line:     start.Line,
			col:      start.Col,
			message:  d.Message,
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.line != b.line {
			return a.line < b.line
		}
		if a.col != b.col {
			return a.col < b.col
		}
		if a.severity != b.severity {
			return a.severity < b.severity
		}
		if a.code != b.code {
			return a.code < b.code
		}
		return a.message < b.message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.severity, d.code, d.path, d.line, d.col, d.message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
