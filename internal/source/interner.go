package source

import "slices"

// StringID is an opaque handle into an Interner. It backs both identifier
// names in the AST and the string dictionary referenced by string-literal
// values (spec.md's "string dictionary" external interface).
type StringID uint32

// NoStringID marks the absence of an interned string.
const NoStringID StringID = 0

// Interner hands out stable, dense StringIDs for a compilation unit.
// Handles remain valid for the interner's whole lifetime.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner returns an interner whose handle 0 is reserved for
// NoStringID and maps to the empty string.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the handle for s, allocating a new one if s has not been
// seen before by this interner.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	// Copy so the interner never aliases a caller-owned buffer.
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// InternBytes is a convenience wrapper around Intern for byte slices.
func (in *Interner) InternBytes(b []byte) StringID {
	return in.Intern(string(b))
}

// Lookup returns the string for handle, or ("", false) if handle is not
// known to this interner.
func (in *Interner) Lookup(handle StringID) (string, bool) {
	if !in.Has(handle) {
		return "", false
	}
	return in.byID[handle], true
}

// MustLookup is Lookup but panics on an unknown handle; used where the
// caller already established the handle came from this interner.
func (in *Interner) MustLookup(handle StringID) string {
	s, ok := in.Lookup(handle)
	if !ok {
		panic("source: unknown StringID")
	}
	return s
}

// Has reports whether handle was issued by this interner.
func (in *Interner) Has(handle StringID) bool {
	return int(handle) < len(in.byID)
}

// Len returns the number of distinct strings held, including NoStringID.
func (in *Interner) Len() int { return len(in.byID) }

// Snapshot returns a defensive copy of every interned string, indexed by
// StringID.
func (in *Interner) Snapshot() []string { return slices.Clone(in.byID) }
