package typesys

// IsIdentical reports whether two types are indistinguishable in every
// respect, including const and reference modifiers. It is IsEqual with
// EqualStrict.
func (t Type) IsIdentical(other Type) bool {
	return t.IsEqual(other, EqualStrict)
}

// IsEqual compares t against other, relaxing the distinctions named by
// flags. Ported from the source's Type::isEqual decision tree
// (soul_Type.cpp): primitive-vs-primitive first, then category, then a
// per-category comparison of size/element/struct identity. Const and
// reference modifiers are checked first unless the caller asks to ignore
// them.
func (t Type) IsEqual(other Type, flags EqualFlags) bool {
	if !t.IsValid() || !other.IsValid() {
		return t.kind == other.kind
	}

	if !flags.has(EqualIgnoreConst) && t.isConst != other.isConst {
		return false
	}
	if !flags.has(EqualIgnoreReferences) && t.isRef != other.isRef {
		return false
	}

	if t.IsPrimitive() && other.IsPrimitive() {
		if t.kind == other.kind {
			return true
		}
		if flags.has(EqualTreatStringAsInt32) {
			if (t.IsStringLiteral() && other.IsInt32()) || (t.IsInt32() && other.IsStringLiteral()) {
				return true
			}
		}
		return false
	}

	if (t.IsStringLiteral() && other.IsInt32()) || (t.IsInt32() && other.IsStringLiteral()) {
		return flags.has(EqualTreatStringAsInt32)
	}

	if t.kind != other.kind {
		if flags.has(EqualIgnoreVectorSize1) {
			if t.IsVectorOfSize1() && other.IsPrimitive() {
				return t.GetElementType().IsEqual(other, flags)
			}
			if other.IsVectorOfSize1() && t.IsPrimitive() {
				return t.IsEqual(other.GetElementType(), flags)
			}
		}
		return false
	}

	switch {
	case t.IsBoundedInt():
		return t.size == other.size

	case t.IsArrayOrVector():
		if t.size != other.size {
			if flags.has(EqualIgnoreVectorSize1) && t.IsVector() && (t.size == 1 || other.size == 1) {
				// a size-1 vector may still equal a differently-sized one only
				// via the primitive-collapse branch above; a genuine size
				// mismatch between two multi-lane vectors is never equal.
				return false
			}
			return false
		}
		return t.GetElementType().IsEqual(other.GetElementType(), flags)

	case t.IsStruct():
		if flags.has(EqualDuckTypeStructures) {
			return structsMatchByShape(t, other, flags)
		}
		return t.structRef == other.structRef && t.structs == other.structs

	default:
		return true
	}
}

func structsMatchByShape(a, b Type, flags EqualFlags) bool {
	aID, aReg := a.GetStructRef()
	bID, bReg := b.GetStructRef()
	if aReg == nil || bReg == nil {
		return false
	}
	aInfo, ok := aReg.Lookup(aID)
	if !ok {
		return false
	}
	bInfo, ok := bReg.Lookup(bID)
	if !ok {
		return false
	}
	if len(aInfo.Members) != len(bInfo.Members) {
		return false
	}
	for i := range aInfo.Members {
		if aInfo.Members[i].Name != bInfo.Members[i].Name {
			return false
		}
		if !aInfo.Members[i].Type.IsEqual(bInfo.Members[i].Type, flags) {
			return false
		}
	}
	return true
}
