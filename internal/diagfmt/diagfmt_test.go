package diagfmt

import (
	"strings"
	"testing"

	"soulcore/internal/diag"
	"soulcore/internal/source"
)

func newFileSet(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("fixture.soul", []byte(content))
	return fs, id
}

func TestRenderIncludesSeverityCodeAndMessage(t *testing.T) {
	fs, file := newFileSet(t, "let x = wide\n")
	span := source.Span{File: file, Start: 8, End: 12}
	d := diag.NewError(diag.TypeVoidVariable, span, "a variable may not have type void")

	var b strings.Builder
	if err := Render(&b, []diag.Diagnostic{d}, fs, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "ERROR") {
		t.Fatalf("expected severity label in output, got %q", out)
	}
	if !strings.Contains(out, d.Code.ID()) {
		t.Fatalf("expected code %q in output, got %q", d.Code.ID(), out)
	}
	if !strings.Contains(out, "a variable may not have type void") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret line under the offending span, got %q", out)
	}
}

func TestRenderSortsByLocationBeforeSeverity(t *testing.T) {
	fs, file := newFileSet(t, "line one\nline two\n")
	early := diag.NewWarning(diag.BoundsComparisonAlwaysTrue, source.Span{File: file, Start: 0, End: 4}, "early")
	late := diag.NewError(diag.TypeVoidVariable, source.Span{File: file, Start: 9, End: 13}, "late")

	var b strings.Builder
	if err := Render(&b, []diag.Diagnostic{late, early}, fs, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()
	if strings.Index(out, "early") > strings.Index(out, "late") {
		t.Fatalf("expected the earlier-positioned diagnostic first, got %q", out)
	}
}

func TestRenderWithoutFileSetFallsBackToBareMessage(t *testing.T) {
	d := diag.NewError(diag.TypeVoidVariable, source.Span{}, "no file set available")

	var b strings.Builder
	if err := Render(&b, []diag.Diagnostic{d}, nil, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(b.String(), "no file set available") {
		t.Fatalf("expected the message even without a FileSet, got %q", b.String())
	}
}
