package diag

import "soulcore/internal/source"

// Reporter is the minimal contract a pass uses to hand diagnostics to its
// caller. BagReporter collects into a Bag; DedupReporter wraps another
// Reporter and filters repeats.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter discards every diagnostic. Useful for exploratory calls
// (e.g. checking whether a cast would succeed) that must not surface
// user-visible errors.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Stop is the pass-scoped escape signal. The source language's checker
// throws an exception to unwind from deep inside a visitor to the top of
// the active pass on the first error (spec.md §5, §7); Go has no
// exceptions, so per spec.md §9's re-architecture guidance the escape is
// modelled as an explicit sentinel error returned up through the visitor
// call chain. Stop carries no payload: the actual diagnostic was already
// handed to the Reporter before Stop was returned.
type Stop struct{}

func (Stop) Error() string { return "sanity check aborted after first error" }

// Halt reports d to r and returns Stop so the caller can `return err` to
// unwind the current pass. Passes that need to keep going after a
// diagnostic (rare — most spec.md checks are single-shot) should call
// r.Report directly instead.
func Halt(r Reporter, d Diagnostic) error {
	r.Report(d)
	return Stop{}
}

// InstantiationNote formats an "instantiated from" frame (spec.md §7).
func InstantiationNote(callSite source.Span) Note {
	return Note{Span: callSite, Msg: "instantiated from this call site"}
}
