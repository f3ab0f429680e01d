package value

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"soulcore/internal/typesys"
)

// ConstantHandle is an opaque handle into a ConstantTable, stable for the
// lifetime of the owning compilation unit (spec.md §6: "Constant table").
type ConstantHandle uint32

// NoConstantHandle is the sentinel meaning "no constant".
const NoConstantHandle ConstantHandle = 0

// ConstantTable backs unsized-array literal values (spec.md §3): each
// entry is a fully-typed Value reachable by a dense integer handle.
// Grounded on the teacher's string-interner idiom (dense handle, append-
// only backing slice); serialization uses msgpack, mirroring the
// snapshot format the wider example pack builds its persistence layers
// on top of.
type ConstantTable struct {
	items []Value
}

// NewConstantTable returns an empty table.
func NewConstantTable() *ConstantTable {
	return &ConstantTable{items: make([]Value, 1)} // index 0 reserved for NoConstantHandle
}

// AddItem stores v and returns a stable handle for it.
func (t *ConstantTable) AddItem(v Value) ConstantHandle {
	t.items = append(t.items, v.Clone())
	return ConstantHandle(len(t.items) - 1)
}

// GetValueForHandle returns the value stored at handle, if any.
func (t *ConstantTable) GetValueForHandle(h ConstantHandle) (Value, bool) {
	if h == NoConstantHandle || int(h) >= len(t.items) {
		return Value{}, false
	}
	return t.items[h], true
}

// Len returns the number of live entries, excluding the reserved slot.
func (t *ConstantTable) Len() int { return len(t.items) - 1 }

// snapshotEntry is the wire shape of one ConstantTable row: the type is
// captured structurally (kind, element kind, size) rather than via the
// in-memory Registry pointer, which does not survive a round-trip through
// bytes. Snapshot leaves Overflow and StructName unset.
type snapshotEntry struct {
	Kind        uint8  `msgpack:"kind"`
	ElemKind    uint8  `msgpack:"elem_kind,omitempty"`
	Size        int64  `msgpack:"size,omitempty"`
	Overflow    uint8  `msgpack:"overflow,omitempty"`
	StructName  uint32 `msgpack:"struct_name,omitempty"`
	PackedBytes []byte `msgpack:"bytes"`
}

// Snapshot serializes the table to msgpack bytes. Entries round-trip
// through RestoreConstantTable only when their type is void, bool, a
// primitive number, a string literal, or a vector/array of primitives;
// a bounded-int entry is written but RestoreConstantTable rejects it.
// Struct-typed constants are rejected here rather than silently
// corrupted, since their Type carries a Registry pointer this format
// cannot address.
func (t *ConstantTable) Snapshot() ([]byte, error) {
	entries := make([]snapshotEntry, 0, len(t.items)-1)
	for _, v := range t.items[1:] {
		if v.typ.IsStruct() {
			return nil, fmt.Errorf("value: cannot snapshot a struct-typed constant without a registry mapping")
		}
		e := snapshotEntry{
			Kind:        uint8(v.typ.Kind()),
			Size:        v.typ.GetArrayOrVectorSize(),
			PackedBytes: v.buf,
		}
		if v.typ.IsArrayOrVector() {
			e.ElemKind = uint8(v.typ.GetElementType().Kind())
		}
		entries = append(entries, e)
	}
	return msgpack.Marshal(entries)
}

// RestoreConstantTable rebuilds a table from Snapshot output.
func RestoreConstantTable(data []byte) (*ConstantTable, error) {
	var entries []snapshotEntry
	if err := msgpack.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("value: restoring constant table: %w", err)
	}
	t := NewConstantTable()
	for _, e := range entries {
		typ, err := rebuildFlatType(typesys.Kind(e.Kind), typesys.Kind(e.ElemKind), e.Size)
		if err != nil {
			return nil, err
		}
		v, err := CreateFromRawData(typ, e.PackedBytes)
		if err != nil {
			return nil, err
		}
		t.AddItem(v)
	}
	return t, nil
}

func rebuildFlatType(kind, elemKind typesys.Kind, size int64) (typesys.Type, error) {
	elem, err := primitiveByKind(elemKind)
	switch kind {
	case typesys.KindVoid:
		return typesys.Void(), nil
	case typesys.KindBool:
		return typesys.Bool(), nil
	case typesys.KindInt32:
		return typesys.Int32(), nil
	case typesys.KindInt64:
		return typesys.Int64(), nil
	case typesys.KindFloat32:
		return typesys.Float32(), nil
	case typesys.KindFloat64:
		return typesys.Float64(), nil
	case typesys.KindStringLiteral:
		return typesys.StringLiteral(), nil
	case typesys.KindVector:
		if err != nil {
			return typesys.Invalid(), err
		}
		return typesys.CreateVector(elem, size), nil
	case typesys.KindArray:
		if err != nil {
			return typesys.Invalid(), err
		}
		if size == 0 {
			return typesys.CreateUnsizedArray(elem), nil
		}
		return typesys.CreateArray(elem, size), nil
	default:
		return typesys.Invalid(), fmt.Errorf("value: cannot restore constant of kind %v", kind)
	}
}

func primitiveByKind(k typesys.Kind) (typesys.Type, error) {
	switch k {
	case typesys.KindBool:
		return typesys.Bool(), nil
	case typesys.KindInt32:
		return typesys.Int32(), nil
	case typesys.KindInt64:
		return typesys.Int64(), nil
	case typesys.KindFloat32:
		return typesys.Float32(), nil
	case typesys.KindFloat64:
		return typesys.Float64(), nil
	default:
		return typesys.Invalid(), nil
	}
}
