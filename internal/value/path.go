package value

import (
	"fmt"

	"soulcore/internal/typesys"
)

// PathStepKind selects whether a PathStep indexes an array/vector element
// or a struct member.
type PathStepKind uint8

const (
	PathElement PathStepKind = iota
	PathMember
)

// PathStep is one hop of a sub-element access path (spec.md §4.2's
// getSubElement/modifySubElementInPlace).
type PathStep struct {
	Kind  PathStepKind
	Index int64 // element index, when Kind == PathElement
	Name  int   // member index within the struct's ordered member list, when Kind == PathMember
}

// GetSubElement walks path, returning the value found at the end of the
// chain of struct-member and array-index steps.
func (v Value) GetSubElement(path []PathStep) (Value, error) {
	cur := v
	for _, step := range path {
		next, _, err := cur.stepInto(step)
		if err != nil {
			return Value{}, err
		}
		cur = next
	}
	return cur, nil
}

// ModifySubElementInPlace writes newVal into the sub-object addressed by
// path, in place.
func (v *Value) ModifySubElementInPlace(path []PathStep, newVal Value) error {
	if len(path) == 0 {
		if v.typ.GetPackedSizeInBytes() != newVal.typ.GetPackedSizeInBytes() {
			return fmt.Errorf("value: cannot write a %v into a %v in place", newVal.typ.Kind(), v.typ.Kind())
		}
		copy(v.buf, newVal.buf)
		return nil
	}

	_, span, err := v.stepInto(path[0])
	if err != nil {
		return err
	}
	sub, err := CreateFromRawData(span.typ, v.buf[span.offset:span.offset+span.size])
	if err != nil {
		return err
	}
	if err := sub.ModifySubElementInPlace(path[1:], newVal); err != nil {
		return err
	}
	copy(v.buf[span.offset:span.offset+span.size], sub.buf)
	return nil
}

// subSpan locates one field or element within a value's packed buffer.
type subSpan struct {
	typ    typesys.Type
	offset uint64
	size   uint64
}

func (v Value) stepInto(step PathStep) (Value, subSpan, error) {
	switch step.Kind {
	case PathElement:
		if !v.typ.IsArrayOrVector() {
			return Value{}, subSpan{}, fmt.Errorf("value: element step on non-aggregate type %v", v.typ.Kind())
		}
		n := v.typ.GetArrayOrVectorSize()
		if step.Index < 0 || step.Index >= n {
			return Value{}, subSpan{}, fmt.Errorf("value: element index %d out of range [0,%d)", step.Index, n)
		}
		elemType := v.typ.GetElementType()
		elemSize := elemType.GetPackedSizeInBytes()
		offset := uint64(step.Index) * elemSize
		elem, err := CreateFromRawData(elemType, v.buf[offset:offset+elemSize])
		return elem, subSpan{typ: elemType, offset: offset, size: elemSize}, err

	case PathMember:
		if !v.typ.IsStruct() {
			return Value{}, subSpan{}, fmt.Errorf("value: member step on non-struct type %v", v.typ.Kind())
		}
		id, reg := v.typ.GetStructRef()
		info, ok := reg.Lookup(id)
		if !ok || step.Name < 0 || step.Name >= len(info.Members) {
			return Value{}, subSpan{}, fmt.Errorf("value: member index %d out of range", step.Name)
		}
		var offset uint64
		for i := 0; i < step.Name; i++ {
			offset += info.Members[i].Type.GetPackedSizeInBytes()
		}
		memberType := info.Members[step.Name].Type
		size := memberType.GetPackedSizeInBytes()
		member, err := CreateFromRawData(memberType, v.buf[offset:offset+size])
		return member, subSpan{typ: memberType, offset: offset, size: size}, err

	default:
		return Value{}, subSpan{}, fmt.Errorf("value: unknown path step kind %d", step.Kind)
	}
}
