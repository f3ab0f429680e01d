package value

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"soulcore/internal/source"
)

// Printer is the visitor protocol driven by Describe when walking a
// value's structure (spec.md §4.2 "printer protocol"). Implementers can
// substitute alternative formats (JSON, pretty-print) for the default
// literal printer without duplicating the walker.
type Printer interface {
	BeginStruct()
	EndStruct()
	BeginArray()
	EndArray()
	BeginVector()
	EndVector()
	Separator()

	PrintInt32(int32)
	PrintInt64(int64)
	PrintFloat32(float32)
	PrintFloat64(float64)
	PrintBool(bool)
	PrintStringLiteral(handle uint32, decoded string, hasDecoded bool)
	PrintZeroInitialiser()
	PrintUnsizedArrayContent(v Value)
}

// Describe renders v using p, resolving string-literal handles through
// dict when non-nil (spec.md: "as the decoded string in double quotes if
// a dictionary is supplied, otherwise as the numeric handle").
func Describe(v Value, p Printer, dict *source.Interner) {
	if isAllZero(v.buf) && v.typ.IsFixedSizeAggregate() {
		p.PrintZeroInitialiser()
		return
	}

	switch {
	case v.typ.IsBool():
		b, _ := v.GetAsBool()
		p.PrintBool(b)

	case v.typ.IsInt32(), v.typ.IsBoundedInt():
		n, _ := v.GetAsInt64()
		p.PrintInt32(int32(n))

	case v.typ.IsInt64():
		n, _ := v.GetAsInt64()
		p.PrintInt64(n)

	case v.typ.IsFloat32():
		f, _ := v.GetAsDouble()
		p.PrintFloat32(float32(f))

	case v.typ.IsFloat64():
		f, _ := v.GetAsDouble()
		p.PrintFloat64(f)

	case v.typ.IsStringLiteral():
		handle := readHandle(v.buf)
		if dict != nil {
			if s, ok := dict.Lookup(source.StringID(handle)); ok {
				p.PrintStringLiteral(handle, s, true)
				return
			}
		}
		p.PrintStringLiteral(handle, "", false)

	case v.typ.IsUnsizedArray():
		p.PrintUnsizedArrayContent(v)

	case v.typ.IsVector():
		describeAggregate(v, p, dict, p.BeginVector, p.EndVector)

	case v.typ.IsArray():
		describeAggregate(v, p, dict, p.BeginArray, p.EndArray)

	case v.typ.IsStruct():
		describeStruct(v, p, dict)

	default:
		// void and other non-value kinds have no literal representation.
	}
}

func describeAggregate(v Value, p Printer, dict *source.Interner, begin, end func()) {
	n := v.typ.GetArrayOrVectorSize()
	elemType := v.typ.GetElementType()
	elemSize := elemType.GetPackedSizeInBytes()
	begin()
	for i := int64(0); i < n; i++ {
		if i > 0 {
			p.Separator()
		}
		elem, _ := CreateFromRawData(elemType, v.buf[uint64(i)*elemSize:uint64(i+1)*elemSize])
		Describe(elem, p, dict)
	}
	end()
}

func describeStruct(v Value, p Printer, dict *source.Interner) {
	id, reg := v.typ.GetStructRef()
	info, ok := reg.Lookup(id)
	if !ok {
		return
	}
	p.BeginStruct()
	var offset uint64
	for i, m := range info.Members {
		if i > 0 {
			p.Separator()
		}
		size := m.Type.GetPackedSizeInBytes()
		field, _ := CreateFromRawData(m.Type, v.buf[offset:offset+size])
		Describe(field, p, dict)
		offset += size
	}
	p.EndStruct()
}

func isAllZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

func readHandle(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}

// LiteralPrinter is the default printer producing round-trippable literal
// syntax (spec.md §4.2, §8.5): NaN/infinity as reserved tokens, an `f`
// suffix on float32, an `L` suffix on int64, `{}` for zero aggregates,
// `{ ... }` otherwise.
type LiteralPrinter struct {
	b strings.Builder
}

// String returns the accumulated literal text.
func (p *LiteralPrinter) String() string { return p.b.String() }

func (p *LiteralPrinter) BeginStruct()  { p.b.WriteString("{ ") }
func (p *LiteralPrinter) EndStruct()    { p.b.WriteString(" }") }
func (p *LiteralPrinter) BeginArray()   { p.b.WriteString("{ ") }
func (p *LiteralPrinter) EndArray()     { p.b.WriteString(" }") }
func (p *LiteralPrinter) BeginVector()  { p.b.WriteString("{ ") }
func (p *LiteralPrinter) EndVector()    { p.b.WriteString(" }") }
func (p *LiteralPrinter) Separator()    { p.b.WriteString(", ") }
func (p *LiteralPrinter) PrintZeroInitialiser() { p.b.WriteString("{}") }

func (p *LiteralPrinter) PrintBool(b bool) {
	if b {
		p.b.WriteString("true")
	} else {
		p.b.WriteString("false")
	}
}

func (p *LiteralPrinter) PrintInt32(n int32) {
	p.b.WriteString(strconv.FormatInt(int64(n), 10))
}

func (p *LiteralPrinter) PrintInt64(n int64) {
	p.b.WriteString(strconv.FormatInt(n, 10))
	p.b.WriteByte('L')
}

func (p *LiteralPrinter) PrintFloat32(f float32) {
	switch {
	case math.IsNaN(float64(f)):
		p.b.WriteString("_nan32")
	case math.IsInf(float64(f), 1):
		p.b.WriteString("_inf32")
	case math.IsInf(float64(f), -1):
		p.b.WriteString("_ninf32")
	case f == 0:
		p.b.WriteString("0")
	default:
		p.b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
		p.b.WriteByte('f')
	}
}

func (p *LiteralPrinter) PrintFloat64(f float64) {
	switch {
	case math.IsNaN(f):
		p.b.WriteString("_nan64")
	case math.IsInf(f, 1):
		p.b.WriteString("_inf64")
	case math.IsInf(f, -1):
		p.b.WriteString("_ninf64")
	case f == 0:
		p.b.WriteString("0")
	default:
		p.b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

func (p *LiteralPrinter) PrintStringLiteral(handle uint32, decoded string, hasDecoded bool) {
	if hasDecoded {
		fmt.Fprintf(&p.b, "%q", decoded)
		return
	}
	p.b.WriteString(strconv.FormatUint(uint64(handle), 10))
}

func (p *LiteralPrinter) PrintUnsizedArrayContent(v Value) {
	p.b.WriteString(strconv.FormatUint(uint64(readHandle(v.buf)), 10))
}

// GetDescription renders v with the default literal printer.
func (v Value) GetDescription(dict *source.Interner) string {
	p := &LiteralPrinter{}
	Describe(v, p, dict)
	return p.String()
}
