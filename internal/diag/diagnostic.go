package diag

import "soulcore/internal/source"

// Note is a secondary source location attached to a Diagnostic, e.g. the
// other member of a duplicate-name pair, or an "instantiated from" frame.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the unit exposed by the compile-message list external
// interface (spec.md §6): a severity, a stable code, a message and a
// primary source location, plus any supporting notes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns a copy of d with an additional note appended.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: span, Msg: msg})
	return d
}

// New builds a Diagnostic with no notes attached.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError is a shortcut for New(SevError, ...).
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is a shortcut for New(SevWarning, ...).
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}
