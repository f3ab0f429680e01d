package testkit

import (
	"testing"

	"soulcore/internal/diag"
	"soulcore/internal/source"
)

func TestRequireCleanPassesOnEmptyBag(t *testing.T) {
	_, bag := NewBag()
	RequireClean(t, nil, bag)
}

func TestRequireDiagnosticMatchesCode(t *testing.T) {
	r, bag := NewBag()
	r.Report(diag.NewError(diag.TypeVoidVariable, source.Span{}, "boom"))
	RequireDiagnostic(t, diag.Stop{}, bag, diag.TypeVoidVariable)
}

func TestRequireDiagnosticContainsMatchesSubstring(t *testing.T) {
	r, bag := NewBag()
	r.Report(diag.NewError(diag.RecursionGraphCycle, source.Span{}, "cycle a -> b -> a"))
	RequireDiagnosticContains(t, diag.Stop{}, bag, diag.RecursionGraphCycle, "a -> b -> a")
}
