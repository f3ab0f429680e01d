// Package testkit collects small assertion helpers shared by this
// module's package-level _test.go files, in the same plain-testing style
// the rest of the module tests with (no testify or other third-party
// assertion library).
package testkit

import (
	"strings"
	"testing"

	"soulcore/internal/diag"
)

// RequireClean fails t unless a check ran with no error and left the bag
// empty. Use for the "sanity checks pass clean" half of a test.
func RequireClean(t *testing.T, err error, bag *diag.Bag) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got %v (diagnostics: %v)", err, bag.Items())
	}
	if bag != nil && bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", bag.Items())
	}
}

// RequireDiagnostic fails t unless a check reported an error and the bag
// holds exactly one diagnostic carrying the given code.
func RequireDiagnostic(t *testing.T, err error, bag *diag.Bag, want diag.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error carrying code %s, got none (bag: %v)", want.ID(), bag.Items())
	}
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(items), items)
	}
	if items[0].Code != want {
		t.Fatalf("expected code %s, got %s (%v)", want.ID(), items[0].Code.ID(), items[0])
	}
}

// RequireDiagnosticContains is RequireDiagnostic plus a substring check
// against the diagnostic's message, for tests that also need to pin down
// rendered content like an ordered cycle trace.
func RequireDiagnosticContains(t *testing.T, err error, bag *diag.Bag, want diag.Code, substr string) {
	t.Helper()
	RequireDiagnostic(t, err, bag, want)
	msg := bag.Items()[0].Message
	if !strings.Contains(msg, substr) {
		t.Fatalf("expected message to contain %q, got %q", substr, msg)
	}
}

// NewBag returns a Bag/Reporter pair sized generously for a single
// check's worth of diagnostics, mirroring the bag construction every
// sanity-check test in this module repeats.
func NewBag() (diag.Reporter, *diag.Bag) {
	b := diag.NewBag(8)
	return diag.BagReporter{Bag: b}, b
}
