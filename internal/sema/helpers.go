package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/typesys"
)

// expectSilentCastPossible is the shared arity/castability helper named
// in spec.md §4.5. If expr is a comma-list, it recurses element-wise
// against target's element type (array/vector) or declared members
// (struct); if target is a scalar and expr is a single-element list, it
// reduces and recurses; otherwise it falls back to the castability
// oracle and distinguishes "value does not fit" from "types are
// incompatible" in the diagnostic it emits on failure.
func expectSilentCastPossible(u *ast.Unit, target typesys.Type, expr *ast.Expr, limits Limits, r diag.Reporter) error {
	if expr == nil {
		return nil
	}

	if expr.Kind == ast.ExprCommaList {
		items := expr.Operands
		if len(items) == 1 && !target.IsArrayOrVector() && !target.IsStruct() {
			single := u.Exprs.Get(uint32(items[0]))
			return expectSilentCastPossible(u, target, single, limits, r)
		}
		if len(items) > limits.MaxInitializerList {
			return diag.Halt(r, diag.NewError(diag.BoundsInitializerListTooLong, expr.Ctx.Span,
				"initializer list exceeds the maximum number of elements"))
		}
		if err := throwErrorIfWrongNumberOfElements(target, len(items), expr.Ctx, r); err != nil {
			return err
		}
		if target.IsArrayOrVector() {
			elemType := target.GetElementType()
			for _, itemID := range items {
				item := u.Exprs.Get(uint32(itemID))
				if err := expectSilentCastPossible(u, elemType, item, limits, r); err != nil {
					return err
				}
			}
			return nil
		}
		if target.IsStruct() {
			id, reg := target.GetStructRef()
			info, ok := reg.Lookup(id)
			if !ok {
				return nil
			}
			for i, itemID := range items {
				if i >= len(info.Members) {
					break
				}
				item := u.Exprs.Get(uint32(itemID))
				if err := expectSilentCastPossible(u, info.Members[i].Type, item, limits, r); err != nil {
					return err
				}
			}
			return nil
		}
		return nil
	}

	srcType, ok := expr.GetResultType(u)
	if !ok {
		return nil
	}
	if (typesys.TypeRules{}).CanSilentlyCastTo(target, srcType) {
		return nil
	}

	code := diag.TypeCannotCastBetween
	msg := "value's type cannot be cast to the destination type"
	if target.Kind() == srcType.Kind() || (target.IsScalar() && srcType.IsScalar()) {
		code = diag.TypeValueDoesNotFit
		msg = "value does not fit in the destination type without an explicit cast"
	}
	return diag.Halt(r, diag.NewError(code, expr.Ctx.Span, msg))
}

// throwErrorIfWrongNumberOfElements is the shared arity helper named in
// spec.md §4.5: a fixed-size aggregate destination requires exactly n
// elements in an initializer list.
func throwErrorIfWrongNumberOfElements(target typesys.Type, n int, ctx ast.Context, r diag.Reporter) error {
	if !target.IsFixedSizeAggregate() {
		return nil
	}
	var want int
	if target.IsStruct() {
		id, reg := target.GetStructRef()
		info, ok := reg.Lookup(id)
		if !ok {
			return nil
		}
		want = len(info.Members)
	} else {
		want = int(target.GetArrayOrVectorSize())
	}
	if n != want {
		return diag.Halt(r, diag.NewError(diag.TypeWrongNumberOfElements, ctx.Span,
			"initializer list has the wrong number of elements for this destination"))
	}
	return nil
}
