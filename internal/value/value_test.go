package value

import (
	"math"
	"testing"

	"soulcore/internal/typesys"
)

func TestValueRoundTrip(t *testing.T) {
	v := FromInt64(-42)
	rt, err := CreateFromRawData(v.Type(), v.Bytes())
	if err != nil {
		t.Fatalf("CreateFromRawData: %v", err)
	}
	if !rt.Equals(v) {
		t.Fatalf("round-tripped value does not equal original")
	}
}

func TestCastIdentity(t *testing.T) {
	v := FromInt32(7)
	rt, ok := v.TryCastToType(v.Type())
	if !ok || !rt.Equals(v) {
		t.Fatalf("casting a value to its own type should be identity")
	}
}

func TestCastRoundTripThroughWiderType(t *testing.T) {
	v := FromInt32(7)
	widened, ok := v.TryCastToType(typesys.Int64())
	if !ok {
		t.Fatalf("int32->int64 cast should succeed")
	}
	back, ok := widened.TryCastToType(typesys.Int32())
	if !ok || !back.Equals(v) {
		t.Fatalf("round trip through a wider type should recover the original value")
	}
}

func TestBroadcastFillsEveryLane(t *testing.T) {
	vecType := typesys.CreateVector(typesys.Int32(), 4)
	out, err := SetFrom(vecType, FromInt32(9))
	if err != nil {
		t.Fatalf("SetFrom: %v", err)
	}
	for i := int64(0); i < 4; i++ {
		lane, err := out.GetSubElement([]PathStep{{Kind: PathElement, Index: i}})
		if err != nil {
			t.Fatalf("GetSubElement(%d): %v", i, err)
		}
		n, _ := lane.GetAsInt64()
		if n != 9 {
			t.Fatalf("lane %d = %d, want 9", i, n)
		}
	}
}

func TestWrapClampBoundaryValues(t *testing.T) {
	wrapped := typesys.CreateBoundedInt(10, typesys.OverflowWrap)
	clamped := typesys.CreateBoundedInt(10, typesys.OverflowClamp)

	cases := []struct {
		dest typesys.Type
		in   int64
		want int64
	}{
		{wrapped, -1, 9},
		{clamped, -1, 0},
		{wrapped, 15, 5},
		{clamped, 15, 9},
	}
	for _, c := range cases {
		out, err := SetFrom(c.dest, FromInt64(c.in))
		if err != nil {
			t.Fatalf("SetFrom(%d): %v", c.in, err)
		}
		got, _ := out.GetAsInt64()
		if got != c.want {
			t.Fatalf("coercing %d = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPrinterIsDeterministic(t *testing.T) {
	v := FromFloat64(3.5)
	a := v.GetDescription(nil)
	b := v.GetDescription(nil)
	if a != b {
		t.Fatalf("printer output differs across runs: %q vs %q", a, b)
	}
}

func TestPrinterRendersReservedTokensForNonFiniteFloats(t *testing.T) {
	nan32 := FromFloat32(float32(math.NaN()))
	if got := nan32.GetDescription(nil); got != "_nan32" {
		t.Fatalf("NaN32 rendered as %q, want _nan32", got)
	}
	posInf := FromFloat32(float32(math.Inf(1)))
	if got := posInf.GetDescription(nil); got != "_inf32" {
		t.Fatalf("+Inf32 rendered as %q, want _inf32", got)
	}
	negInf64 := FromFloat64(math.Inf(-1))
	if got := negInf64.GetDescription(nil); got != "_ninf64" {
		t.Fatalf("-Inf64 rendered as %q, want _ninf64", got)
	}
}

func TestPrinterRendersZeroAggregateAsEmptyBraces(t *testing.T) {
	arr := Zero(typesys.CreateArray(typesys.Int32(), 3))
	if got := arr.GetDescription(nil); got != "{}" {
		t.Fatalf("zero array rendered as %q, want {}", got)
	}
}

func TestPrinterRendersNonZeroArrayElementwise(t *testing.T) {
	out, err := SetFromList(typesys.CreateArray(typesys.Int32(), 2), []Value{FromInt32(1), FromInt32(2)})
	if err != nil {
		t.Fatalf("SetFromList: %v", err)
	}
	if got := out.GetDescription(nil); got != "{ 1, 2 }" {
		t.Fatalf("array rendered as %q, want { 1, 2 }", got)
	}
}

func TestSliceRejectsOutOfRange(t *testing.T) {
	out, _ := SetFromList(typesys.CreateArray(typesys.Int32(), 3), []Value{FromInt32(1), FromInt32(2), FromInt32(3)})
	if _, err := out.Slice(1, 5); err == nil {
		t.Fatalf("slicing past the end should fail")
	}
	sliced, err := out.Slice(1, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if got := sliced.GetDescription(nil); got != "{ 2, 3 }" {
		t.Fatalf("sliced array rendered as %q, want { 2, 3 }", got)
	}
}

func TestModifySubElementInPlace(t *testing.T) {
	out, _ := SetFromList(typesys.CreateArray(typesys.Int32(), 2), []Value{FromInt32(1), FromInt32(2)})
	if err := out.ModifySubElementInPlace([]PathStep{{Kind: PathElement, Index: 0}}, FromInt32(42)); err != nil {
		t.Fatalf("ModifySubElementInPlace: %v", err)
	}
	if got := out.GetDescription(nil); got != "{ 42, 2 }" {
		t.Fatalf("after modification, got %q, want { 42, 2 }", got)
	}
}

func TestConstantTableSnapshotRestore(t *testing.T) {
	table := NewConstantTable()
	h := table.AddItem(FromInt32(123))

	data, err := table.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	restored, err := RestoreConstantTable(data)
	if err != nil {
		t.Fatalf("RestoreConstantTable: %v", err)
	}
	v, ok := restored.GetValueForHandle(h)
	if !ok {
		t.Fatalf("restored table missing handle %d", h)
	}
	got, _ := v.GetAsInt64()
	if got != 123 {
		t.Fatalf("restored value = %d, want 123", got)
	}
}

func TestNegateFlipsSign(t *testing.T) {
	v := FromInt32(5)
	if err := v.Negate(); err != nil {
		t.Fatalf("Negate: %v", err)
	}
	n, _ := v.GetAsInt64()
	if n != -5 {
		t.Fatalf("negated value = %d, want -5", n)
	}
}
