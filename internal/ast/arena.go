package ast

// Arena is a bump/pool allocator owned by a compilation Unit (spec.md §9,
// "Arena ownership"): every node lives here until the Unit is discarded,
// and inter-node links are 1-based indices into the arena rather than
// pointers. Grounded on the teacher's internal/ast Arena[T].
type Arena[T any] struct {
	data []T
}

// NewArena returns an Arena whose backing slice is pre-sized to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer to the element at index, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice returns the arena's backing storage, read-only by convention.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len returns the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
