package diag

import (
	"fmt"
	"sort"
)

// MaxInstantiationFrames is the number of "instantiated from" notes a
// diagnostic raised inside a generic specialization may carry (spec.md §7).
// No function in this module reads it: nothing builds or truncates an
// instantiation note chain.
const MaxInstantiationFrames = 10

// Bag collects diagnostics raised during a pass. A pass that hits the
// bag's capacity silently stops accepting further diagnostics rather than
// growing without bound; callers size the bag generously up front.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns a Bag that accepts up to max diagnostics. A non-positive
// max is treated as unbounded.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 {
		capacity = 0
	}
	return &Bag{items: make([]Diagnostic, 0, capacity), max: max}
}

// Add appends d, returning false if the bag's capacity was reached.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any collected diagnostic is SevError or above.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any collected diagnostic is SevWarning or above.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the collected diagnostics. The caller must not mutate the
// returned slice; it aliases the bag's storage.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends other's diagnostics, growing the capacity if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics deterministically by file, start, end, severity
// (descending) and code (ascending) — required for reproducible output
// (spec.md §8 property 5, printer determinism, applies equally here).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// PromoteToErrors upgrades any SevWarning diagnostic whose Code is in codes
// to SevError. The code set it takes has the shape that
// project.Manifest.PromotedCodes returns; no package in this module calls
// it.
func (b *Bag) PromoteToErrors(codes map[Code]bool) {
	for i := range b.items {
		if b.items[i].Severity == SevWarning && codes[b.items[i].Code] {
			b.items[i].Severity = SevError
		}
	}
}

// Dedup drops diagnostics that repeat an earlier (code, primary span) pair.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s", d.Code, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
