package typesys

import "soulcore/internal/source"

// ArraySize is the element count of a fixed-size array or vector, or the
// declared limit of a bounded integer. Zero denotes an unsized array.
type ArraySize = int64

// Unsized marks an array whose element count is unknown to the type
// system (spec.md's "Unsized array").
const Unsized ArraySize = 0

// Type is a tagged, value-like type descriptor (spec.md §3, "Type
// descriptors are value-like and cheaply copyable"). Nested element
// types are held by pointer so a Type remains a small, copyable struct
// while still supporting arbitrarily nested arrays-of-vectors etc; the
// pointed-to Type is never mutated after construction.
type Type struct {
	kind Kind

	// Vector / array / bounded-int payload.
	elem       *Type          // vector/array element type
	size       ArraySize      // vector lane count, fixed array size (Unsized for unsized arrays), or bounded-int limit
	overflow   OverflowPolicy // bounded-int wrap/clamp policy

	// Struct payload: a reference to a named record. Two struct Types are
	// the "same" record iff structRef is the same StructID (spec.md:
	// "struct (reference to a named record with ordered members)").
	structRef StructID
	structs   *Registry

	isConst bool
	isRef   bool
}

// invalid is the zero Type; every constructor below is the only way to
// reach a valid one.
var invalid = Type{}

// Invalid returns the zero, "no type" Type.
func Invalid() Type { return invalid }

// Void returns the void primitive.
func Void() Type { return Type{kind: KindVoid} }

// Bool, Int32, Int64, Float32, Float64 return the primitive scalar types.
func Bool() Type    { return Type{kind: KindBool} }
func Int32() Type   { return Type{kind: KindInt32} }
func Int64() Type   { return Type{kind: KindInt64} }
func Float32() Type { return Type{kind: KindFloat32} }
func Float64() Type { return Type{kind: KindFloat64} }

// StringLiteral returns the string-literal handle type.
func StringLiteral() Type { return Type{kind: KindStringLiteral} }

// CreateBoundedInt returns a bounded integer type with range [0, limit)
// and the given overflow policy. limit must be positive.
func CreateBoundedInt(limit int64, policy OverflowPolicy) Type {
	return Type{kind: KindBoundedInt, size: limit, overflow: policy}
}

// CreateVector returns a vector of n lanes of a primitive, non-void
// element type (spec.md: "Vector element types must be primitive and
// non-void"). The caller is expected to have validated elem via
// CanBeVectorElement first; CreateVector itself does not error, matching
// the source's constructor-time SOUL_ASSERT-only validation — callers in
// internal/sema are responsible for the reported diagnostic.
func CreateVector(elem Type, n int64) Type {
	e := elem
	return Type{kind: KindVector, elem: &e, size: n}
}

// CreateArray returns a fixed-size array of n elements. Arrays of arrays
// are rejected by the sema layer (spec.md: "Arrays may not nest
// directly"), not by this constructor.
func CreateArray(elem Type, n int64) Type {
	e := elem
	return Type{kind: KindArray, elem: &e, size: n}
}

// CreateUnsizedArray returns an array whose size is not yet known.
func CreateUnsizedArray(elem Type) Type {
	return CreateArray(elem, Unsized)
}

// CreateStruct returns a Type referencing the named record id within reg.
func CreateStruct(reg *Registry, id StructID) Type {
	return Type{kind: KindStruct, structRef: id, structs: reg}
}

// CreateCopyWithNewArraySize returns a copy of an array/vector type with
// a different element count (used once an unsized array's size becomes
// known, or a value's array is resized in place per spec.md's Value
// lifecycle notes).
func (t Type) CreateCopyWithNewArraySize(n int64) Type {
	cp := t
	cp.size = n
	return cp
}

// CreateConst returns a copy of t with the const modifier set.
func (t Type) CreateConst() Type { t.isConst = true; return t }

// CreateReference returns a copy of t with the reference modifier set.
func (t Type) CreateReference() Type { t.isRef = true; return t }

// RemoveReference returns a copy of t with the reference modifier cleared.
func (t Type) RemoveReference() Type { t.isRef = false; return t }

// RemoveConst returns a copy of t with the const modifier cleared.
func (t Type) RemoveConst() Type { t.isConst = false; return t }

// -- queries -----------------------------------------------------------

func (t Type) IsValid() bool  { return t.kind != KindInvalid }
func (t Type) Kind() Kind     { return t.kind }
func (t Type) IsVoid() bool   { return t.kind == KindVoid }
func (t Type) IsBool() bool   { return t.kind == KindBool }
func (t Type) IsInt32() bool  { return t.kind == KindInt32 }
func (t Type) IsInt64() bool  { return t.kind == KindInt64 }
func (t Type) IsFloat32() bool { return t.kind == KindFloat32 }
func (t Type) IsFloat64() bool { return t.kind == KindFloat64 }

func (t Type) IsInteger() bool      { return t.kind == KindInt32 || t.kind == KindInt64 }
func (t Type) IsFloatingPoint() bool { return t.kind == KindFloat32 || t.kind == KindFloat64 }
func (t Type) IsPrimitive() bool {
	switch t.kind {
	case KindVoid, KindBool, KindInt32, KindInt64, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}
func (t Type) IsPrimitiveInteger() bool { return t.IsPrimitive() && t.IsInteger() }
func (t Type) IsPrimitiveFloat() bool   { return t.IsPrimitive() && t.IsFloatingPoint() }
func (t Type) IsScalar() bool {
	return (t.IsPrimitive() || t.IsVector()) && (t.IsInteger() || t.IsFloatingPoint())
}

func (t Type) IsBoundedInt() bool     { return t.kind == KindBoundedInt }
func (t Type) IsWrapped() bool        { return t.kind == KindBoundedInt && t.overflow == OverflowWrap }
func (t Type) IsClamped() bool        { return t.kind == KindBoundedInt && t.overflow == OverflowClamp }
func (t Type) IsStringLiteral() bool  { return t.kind == KindStringLiteral }

func (t Type) IsVector() bool        { return t.kind == KindVector }
func (t Type) IsVectorOfSize1() bool { return t.IsVector() && t.size == 1 }
func (t Type) IsArray() bool         { return t.kind == KindArray }
func (t Type) IsUnsizedArray() bool  { return t.IsArray() && t.size == Unsized }
func (t Type) IsFixedSizeArray() bool { return t.IsArray() && t.size != Unsized }
func (t Type) IsArrayOrVector() bool { return t.IsArray() || t.IsVector() }
func (t Type) IsSizedType() bool     { return t.IsArrayOrVector() || t.IsBoundedInt() }
func (t Type) IsFixedSizeAggregate() bool {
	return t.IsFixedSizeArray() || t.IsVector() || t.IsStruct()
}

func (t Type) IsStruct() bool { return t.kind == KindStruct }
func (t Type) IsConst() bool  { return t.isConst }
func (t Type) IsReference() bool         { return t.isRef }
func (t Type) IsNonConstReference() bool { return t.isRef && !t.isConst }

// CanBeVectorElement reports whether t may be a vector lane type
// (spec.md: "Vector element types must be primitive and non-void").
func (t Type) CanBeVectorElement() bool { return t.IsPrimitive() && !t.IsVoid() }

// CanBeArrayElement reports whether t may be an array element type. Array
// nesting is a non-goal (spec.md: "Arrays may not nest directly"), so
// arrays cannot themselves be array elements.
func (t Type) CanBeArrayElement() bool {
	return t.IsValid() && !t.IsArray() && !t.IsReference() && !t.IsConst() && !t.IsVoid()
}

// GetElementType returns the element type of an array or vector.
func (t Type) GetElementType() Type {
	if t.elem == nil {
		return Invalid()
	}
	return *t.elem
}

// GetArrayOrVectorSize returns the declared element count.
func (t Type) GetArrayOrVectorSize() ArraySize {
	return t.size
}

// GetBoundedIntLimit returns the [0, limit) upper bound of a bounded int.
func (t Type) GetBoundedIntLimit() int64 {
	return t.size
}

// GetStructRef returns the struct id and its owning registry.
func (t Type) GetStructRef() (StructID, *Registry) {
	return t.structRef, t.structs
}

// StructName returns the declared name of a struct type for diagnostics,
// or NoStringID when t carries no struct registry entry.
func (t Type) StructName() source.StringID {
	if t.structs == nil {
		return source.NoStringID
	}
	if info, ok := t.structs.Lookup(t.structRef); ok {
		return info.Name
	}
	return source.NoStringID
}
