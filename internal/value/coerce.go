package value

import (
	"encoding/binary"
	"fmt"

	"soulcore/internal/typesys"
)

// SetFrom performs target-type-driven coercion of src into a freshly
// constructed value of type dest (spec.md §4.2). Scalars convert via
// GetAsInt64/GetAsDouble/GetAsBool; bounded-int destinations apply their
// wrap/clamp policy; string-literal and unsized-array destinations copy
// the handle; array/vector destinations broadcast a scalar source or
// recurse element-wise against an array/vector source; struct
// destinations recurse member-wise.
func SetFrom(dest typesys.Type, src Value) (Value, error) {
	switch {
	case dest.IsBool():
		b, err := src.GetAsBool()
		if err != nil {
			return Value{}, err
		}
		return FromBool(b), nil

	case dest.IsInt32():
		n, err := src.GetAsInt64()
		if err != nil {
			return Value{}, err
		}
		return FromInt32(int32(n)), nil

	case dest.IsInt64():
		n, err := src.GetAsInt64()
		if err != nil {
			return Value{}, err
		}
		return FromInt64(n), nil

	case dest.IsFloat32():
		f, err := src.GetAsDouble()
		if err != nil {
			return Value{}, err
		}
		return FromFloat32(float32(f)), nil

	case dest.IsFloat64():
		f, err := src.GetAsDouble()
		if err != nil {
			return Value{}, err
		}
		return FromFloat64(f), nil

	case dest.IsBoundedInt():
		n, err := src.GetAsInt64()
		if err != nil {
			return Value{}, err
		}
		return FromBoundedInt(dest, dest.ApplyOverflow(n)), nil

	case dest.IsStringLiteral():
		if !src.typ.IsStringLiteral() {
			return Value{}, fmt.Errorf("value: cannot coerce %v into a string-literal handle", src.typ.Kind())
		}
		return src.Clone(), nil

	case dest.IsUnsizedArray():
		if !src.typ.IsUnsizedArray() {
			return Value{}, fmt.Errorf("value: %v can only be assigned from another unsized array handle", dest.Kind())
		}
		return src.Clone(), nil

	case dest.IsArrayOrVector():
		return setFromAggregate(dest, src)

	case dest.IsStruct():
		return setFromStruct(dest, src)

	default:
		return Value{}, fmt.Errorf("value: unsupported coercion target %v", dest.Kind())
	}
}

func setFromAggregate(dest typesys.Type, src Value) (Value, error) {
	n := dest.GetArrayOrVectorSize()
	elemType := dest.GetElementType()
	out := Zero(dest)
	elemSize := elemType.GetPackedSizeInBytes()

	if src.typ.IsArrayOrVector() {
		if src.typ.GetArrayOrVectorSize() != n {
			return Value{}, fmt.Errorf("value: size mismatch coercing %v (%d elements) into %v (%d elements)",
				src.typ.Kind(), src.typ.GetArrayOrVectorSize(), dest.Kind(), n)
		}
		srcElemSize := src.typ.GetElementType().GetPackedSizeInBytes()
		for i := int64(0); i < n; i++ {
			srcElem, err := CreateFromRawData(src.typ.GetElementType(), src.buf[uint64(i)*srcElemSize:uint64(i+1)*srcElemSize])
			if err != nil {
				return Value{}, err
			}
			converted, err := SetFrom(elemType, srcElem)
			if err != nil {
				return Value{}, err
			}
			copy(out.buf[uint64(i)*elemSize:uint64(i+1)*elemSize], converted.buf)
		}
		return out, nil
	}

	// broadcast a scalar source into every element
	converted, err := SetFrom(elemType, src)
	if err != nil {
		return Value{}, err
	}
	for i := int64(0); i < n; i++ {
		copy(out.buf[uint64(i)*elemSize:uint64(i+1)*elemSize], converted.buf)
	}
	return out, nil
}

func setFromStruct(dest typesys.Type, src Value) (Value, error) {
	if !src.typ.IsStruct() {
		return Value{}, fmt.Errorf("value: cannot coerce %v into a struct", src.typ.Kind())
	}
	destID, destReg := dest.GetStructRef()
	srcID, srcReg := src.typ.GetStructRef()
	destInfo, ok := destReg.Lookup(destID)
	if !ok {
		return Value{}, fmt.Errorf("value: destination struct is not registered")
	}
	srcInfo, ok := srcReg.Lookup(srcID)
	if !ok {
		return Value{}, fmt.Errorf("value: source struct is not registered")
	}
	if len(destInfo.Members) != len(srcInfo.Members) {
		return Value{}, fmt.Errorf("value: struct member count mismatch (%d vs %d)", len(destInfo.Members), len(srcInfo.Members))
	}

	out := Zero(dest)
	var destOffset, srcOffset uint64
	for i := range destInfo.Members {
		dm := destInfo.Members[i].Type
		sm := srcInfo.Members[i].Type
		dSize := dm.GetPackedSizeInBytes()
		sSize := sm.GetPackedSizeInBytes()
		srcElem, err := CreateFromRawData(sm, src.buf[srcOffset:srcOffset+sSize])
		if err != nil {
			return Value{}, err
		}
		converted, err := SetFrom(dm, srcElem)
		if err != nil {
			return Value{}, err
		}
		copy(out.buf[destOffset:destOffset+dSize], converted.buf)
		destOffset += dSize
		srcOffset += sSize
	}
	return out, nil
}

// SetFromList performs aggregate initialization from a comma-separated
// sequence of values (spec.md §4.2). A single-element sequence broadcasts
// to fill dest; otherwise the sequence length must exactly match the
// target aggregate's element count, and every element must coerce.
func SetFromList(dest typesys.Type, items []Value) (Value, error) {
	if len(items) == 1 {
		return SetFrom(dest, items[0])
	}

	switch {
	case dest.IsArrayOrVector():
		n := dest.GetArrayOrVectorSize()
		if int64(len(items)) != n {
			return Value{}, fmt.Errorf("value: initializer list has %d elements, %v needs %d", len(items), dest.Kind(), n)
		}
		out := Zero(dest)
		elemType := dest.GetElementType()
		elemSize := elemType.GetPackedSizeInBytes()
		for i, item := range items {
			converted, err := SetFrom(elemType, item)
			if err != nil {
				return Value{}, err
			}
			copy(out.buf[uint64(i)*elemSize:uint64(i+1)*elemSize], converted.buf)
		}
		return out, nil

	case dest.IsStruct():
		id, reg := dest.GetStructRef()
		info, ok := reg.Lookup(id)
		if !ok {
			return Value{}, fmt.Errorf("value: destination struct is not registered")
		}
		if len(items) != len(info.Members) {
			return Value{}, fmt.Errorf("value: initializer list has %d elements, struct needs %d", len(items), len(info.Members))
		}
		out := Zero(dest)
		var offset uint64
		for i, m := range info.Members {
			converted, err := SetFrom(m.Type, items[i])
			if err != nil {
				return Value{}, err
			}
			size := m.Type.GetPackedSizeInBytes()
			copy(out.buf[offset:offset+size], converted.buf)
			offset += size
		}
		return out, nil

	default:
		return Value{}, fmt.Errorf("value: %v cannot be initialized from a list", dest.Kind())
	}
}

// Negate performs in-place element-wise negation on integer/floating
// primitives and arrays/vectors thereof.
func (v *Value) Negate() error {
	switch {
	case v.typ.IsInt32():
		n := int32(binary.LittleEndian.Uint32(v.buf))
		binary.LittleEndian.PutUint32(v.buf, uint32(-n))
		return nil
	case v.typ.IsInt64():
		n := int64(binary.LittleEndian.Uint64(v.buf))
		binary.LittleEndian.PutUint64(v.buf, uint64(-n))
		return nil
	case v.typ.IsFloat32():
		f, err := v.GetAsDouble()
		if err != nil {
			return err
		}
		*v = FromFloat32(float32(-f))
		return nil
	case v.typ.IsFloat64():
		f, err := v.GetAsDouble()
		if err != nil {
			return err
		}
		*v = FromFloat64(-f)
		return nil
	case v.typ.IsArrayOrVector():
		n := v.typ.GetArrayOrVectorSize()
		elemSize := v.typ.GetElementType().GetPackedSizeInBytes()
		for i := int64(0); i < n; i++ {
			elem, err := CreateFromRawData(v.typ.GetElementType(), v.buf[uint64(i)*elemSize:uint64(i+1)*elemSize])
			if err != nil {
				return err
			}
			if err := elem.Negate(); err != nil {
				return err
			}
			copy(v.buf[uint64(i)*elemSize:uint64(i+1)*elemSize], elem.buf)
		}
		return nil
	default:
		return fmt.Errorf("value: cannot negate %v", v.typ.Kind())
	}
}

// Slice returns a new value covering the half-open element range
// [start, end) of an array or vector.
func (v Value) Slice(start, end int64) (Value, error) {
	if !v.typ.IsArrayOrVector() {
		return Value{}, fmt.Errorf("value: cannot slice %v", v.typ.Kind())
	}
	n := v.typ.GetArrayOrVectorSize()
	if start < 0 || end > n || start > end {
		return Value{}, fmt.Errorf("value: slice [%d:%d] out of range for length %d", start, end, n)
	}
	elemSize := v.typ.GetElementType().GetPackedSizeInBytes()
	sliced := v.typ.CreateCopyWithNewArraySize(end - start)
	return CreateFromRawData(sliced, v.buf[uint64(start)*elemSize:uint64(end)*elemSize])
}
