// Package diag is the "error reporting sink" external interface named in
// spec.md §6: a list of (severity, code, message, source location)
// diagnostics that C5's sanity-check passes populate. The package does
// not write to stdout; rendering to a terminal is internal/diagfmt's job.
//
// A pass that detects a violation reports one Diagnostic and returns the
// Stop sentinel to unwind out of the current pass (spec.md §5, §7): this
// stands in for the source language's exception-based abort, per the
// re-architecture note in spec.md §9 ("exceptions as pass-scoped escape").
// A failed pass surfaces every diagnostic collected so far; it does not
// attempt partial recovery, and a subsequent re-invocation starts over.
package diag
