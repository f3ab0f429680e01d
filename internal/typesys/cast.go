package typesys

// CastType classifies how a value of one type may become another,
// ported from the source's TypeRules::CastType enum (soul_TypeRules.h).
// The zero value, CastNotPossible, means no cast exists at all.
type CastType uint8

const (
	CastNotPossible CastType = iota
	CastIdentity
	CastPrimitiveNumericLossless
	CastPrimitiveNumericReduction
	CastArrayElementLossless
	CastArrayElementReduction
	CastValueToArray
	CastSingleElementVectorToScalar
	CastFixedSizeArrayToDynamicArray
	CastWrapValue
	CastClampValue
)

// IsSilent reports whether a cast of this kind may happen without an
// explicit cast expression in source (spec.md: casts that never lose
// information, or that are conventionally implicit, are silent; lossy
// narrowing and wrap/clamp casts require an explicit request).
func (c CastType) IsSilent() bool {
	switch c {
	case CastIdentity, CastPrimitiveNumericLossless, CastArrayElementLossless,
		CastValueToArray, CastSingleElementVectorToScalar, CastFixedSizeArrayToDynamicArray:
		return true
	default:
		return false
	}
}

// TypeRules answers castability and binary-operator type-resolution
// questions against a shared struct registry. It carries no other state;
// grounded on the source's stateless free-function TypeRules namespace,
// modeled here as a small value receiver for symmetry with Type.
type TypeRules struct{}

// GetCastType classifies the cast from src to dest, or CastNotPossible if
// none exists. Ported from TypeRules::getCastType's decision tree.
func (TypeRules) GetCastType(dest, src Type) CastType {
	if !dest.IsValid() || !src.IsValid() {
		return CastNotPossible
	}

	if dest.IsIdentical(src) || dest.IsEqual(src, EqualIgnoreConst|EqualIgnoreReferences) {
		return CastIdentity
	}

	// scalar <-> scalar (primitive or bounded int)
	if isNumericScalar(dest) && isNumericScalar(src) {
		return numericCast(dest, src)
	}

	// single-element vector collapses to its element type and vice versa
	if dest.IsPrimitive() && src.IsVectorOfSize1() {
		inner := TypeRules{}.GetCastType(dest, src.GetElementType())
		if inner != CastNotPossible {
			return CastSingleElementVectorToScalar
		}
		return CastNotPossible
	}

	// scalar -> array/vector: broadcast a single value to every element
	if dest.IsArrayOrVector() && !src.IsArrayOrVector() {
		elemCast := TypeRules{}.GetCastType(dest.GetElementType(), src)
		if elemCast != CastNotPossible {
			return CastValueToArray
		}
		return CastNotPossible
	}

	if dest.IsArrayOrVector() && src.IsArrayOrVector() {
		if dest.kind != src.kind {
			return CastNotPossible
		}
		if dest.IsFixedSizeArray() && src.IsUnsizedArray() {
			return CastNotPossible
		}
		if dest.IsUnsizedArray() && src.IsFixedSizeArray() {
			elemCast := TypeRules{}.GetCastType(dest.GetElementType(), src.GetElementType())
			if elemCast == CastIdentity {
				return CastFixedSizeArrayToDynamicArray
			}
			return CastNotPossible
		}
		if dest.size != src.size {
			return CastNotPossible
		}
		switch (TypeRules{}).GetCastType(dest.GetElementType(), src.GetElementType()) {
		case CastIdentity, CastPrimitiveNumericLossless:
			return CastArrayElementLossless
		case CastPrimitiveNumericReduction:
			return CastArrayElementReduction
		default:
			return CastNotPossible
		}
	}

	if dest.IsStruct() && src.IsStruct() {
		if dest.structRef == src.structRef && dest.structs == src.structs {
			return CastIdentity
		}
		return CastNotPossible
	}

	return CastNotPossible
}

func isNumericScalar(t Type) bool {
	return t.IsPrimitiveInteger() || t.IsPrimitiveFloat() || t.IsBoundedInt()
}

// numericCast ranks primitive-numeric and bounded-int conversions by
// whether every source value survives the trip.
func numericCast(dest, src Type) CastType {
	if dest.IsBoundedInt() {
		switch {
		case src.IsBoundedInt() && dest.size >= src.size:
			return CastIdentity
		case dest.IsWrapped():
			return CastWrapValue
		case dest.IsClamped():
			return CastClampValue
		default:
			return CastNotPossible
		}
	}

	if src.IsBoundedInt() {
		// widening a bounded int back into an ordinary integer never loses
		// information, since its range is already known to fit.
		if dest.IsPrimitiveInteger() {
			return CastPrimitiveNumericLossless
		}
		if dest.IsPrimitiveFloat() {
			return CastPrimitiveNumericLossless
		}
		return CastNotPossible
	}

	rank := numericRank(dest, src)
	if rank >= 0 {
		return CastPrimitiveNumericLossless
	}
	return CastPrimitiveNumericReduction
}

// numericRank returns a non-negative value when converting src to dest
// can never lose precision or range (a "widening" conversion), and -1
// when the conversion may lose information (a "narrowing" conversion).
func numericRank(dest, src Type) int {
	widensTo := map[Kind][]Kind{
		KindInt32:   {KindInt32, KindInt64, KindFloat64},
		KindInt64:   {KindInt64},
		KindFloat32: {KindFloat32, KindFloat64},
		KindFloat64: {KindFloat64},
		KindBool:    {KindBool, KindInt32, KindInt64, KindFloat32, KindFloat64},
	}
	for _, allowed := range widensTo[src.kind] {
		if allowed == dest.kind {
			return 1
		}
	}
	return -1
}

// CanSilentlyCastTo reports whether a value of type src may convert to
// dest without an explicit cast expression.
func (r TypeRules) CanSilentlyCastTo(dest, src Type) bool {
	return r.GetCastType(dest, src).IsSilent()
}

// CastCandidateResult classifies the outcome of matching a source type
// against a list of candidate target types.
type CastCandidateResult uint8

const (
	CandidateNoMatch CastCandidateResult = iota
	CandidateUnique
	CandidateAmbiguous
)

// ResolveCastCandidate implements spec.md §4.1's tie-break rule for
// matching src against a list of candidate target types: if any
// candidate is exactly equal to src under EqualIgnoreVectorSize1, that
// candidate wins outright regardless of how many others could silently
// accept it; otherwise exactly one candidate must silently accept src
// (CandidateUnique), two or more is CandidateAmbiguous, and zero is
// CandidateNoMatch. The returned Type is only meaningful when the result
// is CandidateUnique.
func (r TypeRules) ResolveCastCandidate(src Type, candidates []Type) (Type, CastCandidateResult) {
	for _, c := range candidates {
		if c.IsEqual(src, EqualIgnoreVectorSize1) {
			return c, CandidateUnique
		}
	}

	match := Invalid()
	matches := 0
	for _, c := range candidates {
		if r.CanSilentlyCastTo(c, src) {
			match = c
			matches++
		}
	}
	switch matches {
	case 0:
		return Invalid(), CandidateNoMatch
	case 1:
		return match, CandidateUnique
	default:
		return Invalid(), CandidateAmbiguous
	}
}

// CanCastTo reports whether any cast, implicit or explicit, exists from
// src to dest.
func (r TypeRules) CanCastTo(dest, src Type) bool {
	return r.GetCastType(dest, src) != CastNotPossible
}

// BinaryOpCategory groups the source's five getTypesFor*Op families by
// what kind of result they produce.
type BinaryOpCategory uint8

const (
	OpArithmetic BinaryOpCategory = iota
	OpLogical
	OpEquality
	OpComparison
	OpBitwise
)

// ResolveBinaryOperandType returns the common operand type that lhs and
// rhs should both be cast to before evaluating a binary operator of the
// given category, or Invalid if no such common type exists. Ported from
// the source's getTypesForArithmeticOp / getTypesForLogicalOp /
// getTypesForEqualityOp / getTypesForComparisonOp / getTypesForBitwiseOp,
// which all share the same "widen to whichever side is not lossy"
// structure.
func (r TypeRules) ResolveBinaryOperandType(cat BinaryOpCategory, lhs, rhs Type) Type {
	switch cat {
	case OpLogical:
		if lhs.IsBool() && rhs.IsBool() {
			return Bool()
		}
		return Invalid()

	case OpBitwise:
		if lhs.IsPrimitiveInteger() && rhs.IsPrimitiveInteger() {
			return r.widerInteger(lhs, rhs)
		}
		return Invalid()

	case OpEquality, OpComparison:
		if lhs.IsIdentical(rhs) {
			return lhs
		}
		if isNumericScalar(lhs) && isNumericScalar(rhs) {
			return r.widerNumeric(lhs, rhs)
		}
		return Invalid()

	default: // OpArithmetic
		if lhs.IsIdentical(rhs) {
			return lhs
		}
		if isNumericScalar(lhs) && isNumericScalar(rhs) {
			return r.widerNumeric(lhs, rhs)
		}
		if lhs.IsArrayOrVector() && isNumericScalar(rhs) {
			elem := r.widerNumeric(lhs.GetElementType(), rhs)
			if elem.IsValid() {
				return lhs.CreateCopyWithNewArraySize(lhs.size)
			}
		}
		return Invalid()
	}
}

func (TypeRules) widerInteger(a, b Type) Type {
	if a.kind == KindInt64 || b.kind == KindInt64 {
		return Int64()
	}
	return Int32()
}

func (r TypeRules) widerNumeric(a, b Type) Type {
	pa, pb := a, b
	if pa.IsBoundedInt() {
		pa = Int32()
	}
	if pb.IsBoundedInt() {
		pb = Int32()
	}
	if pa.IsFloatingPoint() || pb.IsFloatingPoint() {
		if pa.kind == KindFloat64 || pb.kind == KindFloat64 {
			return Float64()
		}
		return Float32()
	}
	return r.widerInteger(pa, pb)
}
