// Package value implements the boxed runtime value (spec.md §3, §4.2,
// C2): a pair of (type, packed byte buffer) with structured read/write,
// coercion, negation, slicing, and equality. Grounded on original_source's
// soul_Value.cpp/.h and, for the arena/handle idioms it shares with the
// rest of this module, on the teacher's value-object conventions.
package value

import (
	"encoding/binary"
	"fmt"
	"math"

	"soulcore/internal/typesys"
)

// Value pairs a type with its packed byte buffer. Assigning a Value
// shares the buffer with the original, so in-place mutations such as
// Negate are visible through both; Clone makes an independent copy.
type Value struct {
	typ typesys.Type
	buf []byte
}

// Type returns the value's type.
func (v Value) Type() typesys.Type { return v.typ }

// Bytes returns the packed byte buffer. Callers must not retain it across
// a mutation of v; use Clone to detach a stable copy.
func (v Value) Bytes() []byte { return v.buf }

// Clone returns a Value with its own copy of the packed buffer.
func (v Value) Clone() Value {
	cp := make([]byte, len(v.buf))
	copy(cp, v.buf)
	return Value{typ: v.typ, buf: cp}
}

// Zero constructs a value of type t with all bytes zero.
func Zero(t typesys.Type) Value {
	return Value{typ: t, buf: make([]byte, t.GetPackedSizeInBytes())}
}

// CreateFromRawData wraps an existing packed buffer for type t without
// copying validation beyond a length check; the buffer must already be
// exactly t's packed size. This is the counterpart the round-trip
// property in spec.md §8.1 exercises directly.
func CreateFromRawData(t typesys.Type, raw []byte) (Value, error) {
	want := t.GetPackedSizeInBytes()
	if uint64(len(raw)) != want {
		return Value{}, fmt.Errorf("value: raw buffer is %d bytes, type %v needs %d", len(raw), t.Kind(), want)
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Value{typ: t, buf: cp}, nil
}

// -- primitive scalar constructors --------------------------------------

func FromBool(b bool) Value {
	v := Zero(typesys.Bool())
	if b {
		v.buf[0] = 1
	}
	return v
}

func FromInt32(n int32) Value {
	v := Zero(typesys.Int32())
	binary.LittleEndian.PutUint32(v.buf, uint32(n))
	return v
}

func FromInt64(n int64) Value {
	v := Zero(typesys.Int64())
	binary.LittleEndian.PutUint64(v.buf, uint64(n))
	return v
}

func FromFloat32(f float32) Value {
	v := Zero(typesys.Float32())
	binary.LittleEndian.PutUint32(v.buf, math.Float32bits(f))
	return v
}

func FromFloat64(f float64) Value {
	v := Zero(typesys.Float64())
	binary.LittleEndian.PutUint64(v.buf, math.Float64bits(f))
	return v
}

// FromBoundedInt packs n (already reduced into t's range by the caller,
// see ApplyOverflow) as a bounded integer, which is stored as a plain
// int32 per soul_Value.cpp.
func FromBoundedInt(t typesys.Type, n int64) Value {
	v := Zero(t)
	binary.LittleEndian.PutUint32(v.buf, uint32(int32(n)))
	return v
}

// FromStringHandle packs an opaque string-dictionary handle.
func FromStringHandle(handle uint32) Value {
	v := Zero(typesys.StringLiteral())
	binary.LittleEndian.PutUint32(v.buf, handle)
	return v
}

// -- scalar readers -------------------------------------------------------

// GetAsInt64 reads v as an integral value, converting from bool/float as
// needed (spec.md §4.2: "convert source via getAsInt64/getAsDouble/getAsBool").
func (v Value) GetAsInt64() (int64, error) {
	switch {
	case v.typ.IsBool():
		if v.buf[0] != 0 {
			return 1, nil
		}
		return 0, nil
	case v.typ.IsInt32():
		return int64(int32(binary.LittleEndian.Uint32(v.buf))), nil
	case v.typ.IsInt64():
		return int64(binary.LittleEndian.Uint64(v.buf)), nil
	case v.typ.IsFloat32():
		return int64(math.Float32frombits(binary.LittleEndian.Uint32(v.buf))), nil
	case v.typ.IsFloat64():
		return int64(math.Float64frombits(binary.LittleEndian.Uint64(v.buf))), nil
	case v.typ.IsBoundedInt():
		return int64(int32(binary.LittleEndian.Uint32(v.buf))), nil
	default:
		return 0, fmt.Errorf("value: %v has no integer representation", v.typ.Kind())
	}
}

// GetAsDouble reads v as a floating-point value.
func (v Value) GetAsDouble() (float64, error) {
	switch {
	case v.typ.IsFloat32():
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(v.buf))), nil
	case v.typ.IsFloat64():
		return math.Float64frombits(binary.LittleEndian.Uint64(v.buf)), nil
	default:
		n, err := v.GetAsInt64()
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
}

// GetAsBool reads v as a boolean: zero is false, anything else is true.
func (v Value) GetAsBool() (bool, error) {
	switch {
	case v.typ.IsBool():
		return v.buf[0] != 0, nil
	case v.typ.IsInteger(), v.typ.IsBoundedInt():
		n, err := v.GetAsInt64()
		return n != 0, err
	default:
		return false, fmt.Errorf("value: %v has no boolean representation", v.typ.Kind())
	}
}

// Equals reports whether v and other have identical types and
// byte-for-byte equal packed buffers (spec.md §9: "Value equality...
// bytewise equality of packed buffers conditional on identical types").
func (v Value) Equals(other Value) bool {
	if !v.typ.IsIdentical(other.typ) {
		return false
	}
	if len(v.buf) != len(other.buf) {
		return false
	}
	for i := range v.buf {
		if v.buf[i] != other.buf[i] {
			return false
		}
	}
	return true
}

// CloneWithEquivalentType reinterprets v's buffer under t, which must
// have the same packed size as v's own type.
func (v Value) CloneWithEquivalentType(t typesys.Type) (Value, error) {
	if t.GetPackedSizeInBytes() != v.typ.GetPackedSizeInBytes() {
		return Value{}, fmt.Errorf("value: cannot reinterpret %v as %v with a different packed size", v.typ.Kind(), t.Kind())
	}
	return CreateFromRawData(t, v.buf)
}
