package value

import (
	"soulcore/internal/typesys"
)

// TryCastToType converts v to t if TypeRules says the cast is possible
// (silent or explicit); the conversion mirrors SetFrom's semantics
// (spec.md §4.2). Per spec.md §9's open question on unsized-to-fixed
// array casts: an unsized array Value holds only a constant-table handle
// (spec.md §3), so materializing its elements requires the
// handle-to-pointer pass named in §3, which lives outside this package.
// TryCastToType therefore returns false whenever exactly one of v's type
// and t is an unsized array, in either direction, including the
// fixed-to-unsized cast TypeRules allows; a resolver with access to the constant table performs the
// dereference before calling SetFrom on the borrowed elements.
func (v Value) TryCastToType(t typesys.Type) (Value, bool) {
	if v.typ.IsUnsizedArray() != t.IsUnsizedArray() && (v.typ.IsUnsizedArray() || t.IsUnsizedArray()) {
		return Value{}, false
	}

	if !(typesys.TypeRules{}).CanCastTo(t, v.typ) {
		return Value{}, false
	}
	out, err := SetFrom(t, v)
	if err != nil {
		return Value{}, false
	}
	return out, true
}
