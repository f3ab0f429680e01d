package sema

import (
	"fmt"

	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/typesys"
)

// CheckSemantics is post-resolution pass 3 (spec.md §4.5): variable
// shape and name-length rules, struct recursion, endpoint/instance
// array bounds, delay bounds, unary operand compatibility, and
// provably-constant comparisons.
func CheckSemantics(u *ast.Unit, mod *ast.Module, limits Limits, r diag.Reporter) error {
	for _, id := range mod.Variables {
		if err := checkVariable(u, id, limits, r); err != nil {
			return err
		}
		if err := checkVariableNameLength(u, id, limits, r); err != nil {
			return err
		}
	}
	for _, id := range mod.StructDecls {
		if err := checkStructMembers(u, id, r); err != nil {
			return err
		}
		if err := checkStructRecursion(u, id, r); err != nil {
			return err
		}
	}
	for _, id := range mod.Endpoints {
		if err := checkEndpointArraySize(u, id, limits, r); err != nil {
			return err
		}
	}
	for _, id := range mod.Instances {
		if err := checkInstanceArraySize(u, id, limits, r); err != nil {
			return err
		}
	}
	for _, id := range mod.Connections {
		if err := checkConnectionDelay(u, id, limits, r); err != nil {
			return err
		}
	}
	for _, id := range collectModuleExprIDs(u, mod) {
		e := u.Exprs.Get(uint32(id))
		if e == nil {
			continue
		}
		if e.Kind == ast.ExprUnary {
			if err := checkUnaryOperand(u, e, r); err != nil {
				return err
			}
		}
		if e.Kind == ast.ExprBinary {
			if err := checkProvableComparison(u, e, r); err != nil {
				return err
			}
		}
		if e.Kind == ast.ExprAssign {
			if err := checkAssignmentCast(u, e, limits, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkAssignmentCast verifies the right-hand side of an assignment can
// silently convert to the left-hand side's type, using the same
// helper spec.md §4.5 names for initializer-list arity/castability.
func checkAssignmentCast(u *ast.Unit, e *ast.Expr, limits Limits, r diag.Reporter) error {
	lhs := u.Exprs.Get(uint32(e.Operand))
	rhs := u.Exprs.Get(uint32(e.Operand2))
	if lhs == nil || rhs == nil {
		return nil
	}
	target, ok := lhs.GetResultType(u)
	if !ok {
		return nil
	}
	return expectSilentCastPossible(u, target, rhs, limits, r)
}

func checkVariable(u *ast.Unit, id ast.VariableID, limits Limits, r diag.Reporter) error {
	v := u.Variables.Get(uint32(id))
	if v == nil {
		return nil
	}
	t := v.DeclaredType

	if t.IsVoid() {
		return diag.Halt(r, diag.NewError(diag.TypeVoidVariable, v.Ctx.Span,
			"a variable may not have type void"))
	}
	if t.IsTooBig(limits.PackedSizeCeiling) {
		return diag.Halt(r, diag.NewError(diag.TypeTooBig, v.Ctx.Span,
			"variable's type exceeds the maximum packed object size"))
	}
	if isMultiDimensionalArray(t) {
		return diag.Halt(r, diag.NewError(diag.TypeMultiDimensionalArray, v.Ctx.Span,
			"multi-dimensional arrays are not yet implemented"))
	}
	if v.IsCompileTimeConstantRequired() && v.Initializer.IsValid() {
		init := u.Exprs.Get(uint32(v.Initializer))
		if init != nil && !init.IsCompileTimeConstant() {
			code := diag.TypeStateVarNotConstInit
			if v.Kind == ast.VarConstant {
				code = diag.TypeNamespaceVarNotConst
			}
			return diag.Halt(r, diag.NewError(code, v.Ctx.Span,
				"this variable's initializer must be a compile-time constant"))
		}
	}
	if v.Initializer.IsValid() {
		init := u.Exprs.Get(uint32(v.Initializer))
		if err := expectSilentCastPossible(u, t, init, limits, r); err != nil {
			return err
		}
	}
	return nil
}

// checkVariableNameLength enforces spec.md §6's identifier-length
// ceiling on a variable's declared name.
func checkVariableNameLength(u *ast.Unit, id ast.VariableID, limits Limits, r diag.Reporter) error {
	v := u.Variables.Get(uint32(id))
	if v == nil {
		return nil
	}
	name := u.Strings.MustLookup(v.Name)
	if len(name) > limits.MaxIdentifierLength {
		return diag.Halt(r, diag.NewError(diag.NameIdentifierTooLong, v.Ctx.Span,
			"identifier exceeds the maximum identifier length"))
	}
	return nil
}

// isMultiDimensionalArray reports whether t is an array whose element
// type is itself (directly or through a struct) an array.
func isMultiDimensionalArray(t typesys.Type) bool {
	if t.IsArray() && t.GetElementType().IsArray() {
		return true
	}
	if t.IsStruct() {
		id, reg := t.GetStructRef()
		if reg == nil {
			return false
		}
		info, ok := reg.Lookup(id)
		if !ok {
			return false
		}
		for _, m := range info.Members {
			if isMultiDimensionalArray(m.Type) {
				return true
			}
		}
	}
	return false
}

// checkStructMembers rejects a const-qualified struct field: a struct's
// value is always the aggregate, so per-member const has no meaning.
func checkStructMembers(u *ast.Unit, id ast.StructDeclID, r diag.Reporter) error {
	decl := u.StructDecls.Get(uint32(id))
	if decl == nil {
		return nil
	}
	for _, f := range decl.Fields {
		if f.IsConst {
			return diag.Halt(r, diag.NewError(diag.TypeConstStructMember, decl.Ctx.Span,
				"a struct member may not be declared const"))
		}
	}
	return nil
}

func checkStructRecursion(u *ast.Unit, id ast.StructDeclID, r diag.Reporter) error {
	decl := u.StructDecls.Get(uint32(id))
	if decl == nil || decl.StructRef == typesys.NoStructID {
		return nil
	}
	kind, _ := typesys.CheckStructRecursion(u.Structs, decl.StructRef)
	switch kind {
	case typesys.RecursionSelf:
		return diag.Halt(r, diag.NewError(diag.RecursionSelfReferentialType, decl.Ctx.Span,
			"struct "+u.Strings.MustLookup(decl.Name)+" contains itself"))
	case typesys.RecursionMutual:
		return diag.Halt(r, diag.NewError(diag.RecursionMutuallyRecursiveType, decl.Ctx.Span,
			"struct "+u.Strings.MustLookup(decl.Name)+" and another struct refer to each other"))
	}
	return nil
}

func checkEndpointArraySize(u *ast.Unit, id ast.EndpointID, limits Limits, r diag.Reporter) error {
	ep := u.Endpoints.Get(uint32(id))
	if ep == nil || !ep.ArraySizeExpr.IsValid() {
		return nil
	}
	if ep.ArraySize == ast.Unresolved {
		return nil
	}
	if ep.ArraySize < 1 || ep.ArraySize > limits.MaxEndpointArraySize {
		return diag.Halt(r, diag.NewError(diag.BoundsArraySizeOutOfRange, ep.Ctx.Span,
			fmt.Sprintf("endpoint array size must be in [1, %d]", limits.MaxEndpointArraySize)))
	}
	return nil
}

// checkInstanceArraySize applies the same [1, MaxProcessorArraySize]
// bound to a processor instance array that checkEndpointArraySize
// applies to an endpoint array.
func checkInstanceArraySize(u *ast.Unit, id ast.InstanceID, limits Limits, r diag.Reporter) error {
	inst := u.Instances.Get(uint32(id))
	if inst == nil || !inst.ArraySizeExpr.IsValid() {
		return nil
	}
	if inst.ArraySize == ast.Unresolved {
		return nil
	}
	if inst.ArraySize < 1 || inst.ArraySize > limits.MaxProcessorArraySize {
		return diag.Halt(r, diag.NewError(diag.BoundsArraySizeOutOfRange, inst.Ctx.Span,
			fmt.Sprintf("processor instance array size must be in [1, %d]", limits.MaxProcessorArraySize)))
	}
	return nil
}

func checkConnectionDelay(u *ast.Unit, id ast.ConnectionID, limits Limits, r diag.Reporter) error {
	c := u.Connections.Get(uint32(id))
	if c == nil || !c.HasDelay() {
		return nil
	}
	if c.DelayLength == ast.Unresolved {
		return nil
	}
	if c.DelayLength < 1 {
		return diag.Halt(r, diag.NewError(diag.BoundsDelayLineTooShort, c.Ctx.Span,
			"delay line length must be at least 1 sample"))
	}
	if c.DelayLength > limits.MaxDelayLineLength {
		return diag.Halt(r, diag.NewError(diag.BoundsDelayLineTooLong, c.Ctx.Span,
			fmt.Sprintf("delay line length exceeds the maximum of %d samples", limits.MaxDelayLineLength)))
	}
	return nil
}

func checkUnaryOperand(u *ast.Unit, e *ast.Expr, r diag.Reporter) error {
	operand := u.Exprs.Get(uint32(e.Operand))
	if operand == nil {
		return nil
	}
	t, ok := operand.GetResultType(u)
	if !ok {
		return nil
	}
	compatible := true
	switch e.UnOp {
	case ast.OpNegate:
		compatible = t.IsInteger() || t.IsFloatingPoint() || t.IsBoundedInt()
	case ast.OpLogicalNot:
		compatible = t.IsBool()
	case ast.OpBitNot:
		compatible = t.IsInteger()
	}
	if !compatible {
		return diag.Halt(r, diag.NewError(diag.TypeBadUnaryOperand, e.Ctx.Span,
			"operand type is not compatible with this unary operator"))
	}
	return nil
}

// checkProvableComparison flags a comparison between a constant and a
// bounded-range type when the outcome is decidable at compile time
// (spec.md §4.5 pass 3's always-true/always-false warning-as-error).
func checkProvableComparison(u *ast.Unit, e *ast.Expr, r diag.Reporter) error {
	isComparison := map[ast.BinaryOp]bool{
		ast.OpLt: true, ast.OpLte: true, ast.OpGt: true, ast.OpGte: true,
		ast.OpEq: true, ast.OpNeq: true,
	}
	if !isComparison[e.BinOp] {
		return nil
	}
	lhs := u.Exprs.Get(uint32(e.Operand))
	rhs := u.Exprs.Get(uint32(e.Operand2))
	if lhs == nil || rhs == nil {
		return nil
	}

	boundedSide, constSide := lhs, rhs
	boundedType, hasBounded := boundedRangeType(u, boundedSide)
	if !hasBounded {
		boundedSide, constSide = rhs, lhs
		boundedType, hasBounded = boundedRangeType(u, boundedSide)
	}
	if !hasBounded || !constSide.IsCompileTimeConstant() {
		return nil
	}
	constVal, ok := constSide.GetAsConstant()
	if !ok {
		return nil
	}
	n, err := constVal.GetAsInt64()
	if err != nil {
		return nil
	}

	limit := boundedType.GetBoundedIntLimit()
	always, verdict := decidedComparison(e.BinOp, n, limit, boundedSide == lhs)
	if !always {
		return nil
	}
	code := diag.BoundsComparisonAlwaysFalse
	if verdict {
		code = diag.BoundsComparisonAlwaysTrue
	}
	return diag.Halt(r, diag.NewError(code, e.Ctx.Span, "this comparison against a bounded-range operand has a statically known result"))
}

func boundedRangeType(u *ast.Unit, e *ast.Expr) (typesys.Type, bool) {
	t, ok := e.GetResultType(u)
	if !ok || !t.IsBoundedInt() {
		return typesys.Invalid(), false
	}
	return t, true
}

// decidedComparison reports whether comparing a bounded value (range
// [0, limit)) against constant n via op is decidable, and if so what the
// outcome is. boundedIsLHS says whether the bounded operand appears on
// the left of op.
func decidedComparison(op ast.BinaryOp, n, limit int64, boundedIsLHS bool) (decided bool, alwaysTrue bool) {
	// Normalize to "bounded OP n" form.
	normalized := op
	if !boundedIsLHS {
		switch op {
		case ast.OpLt:
			normalized = ast.OpGt
		case ast.OpGt:
			normalized = ast.OpLt
		case ast.OpLte:
			normalized = ast.OpGte
		case ast.OpGte:
			normalized = ast.OpLte
		}
	}
	switch normalized {
	case ast.OpLt:
		if n >= limit {
			return true, true
		}
		if n <= 0 {
			return true, false
		}
	case ast.OpLte:
		if n >= limit-1 {
			return true, true
		}
		if n < 0 {
			return true, false
		}
	case ast.OpGte:
		if n <= 0 {
			return true, true
		}
		if n > limit-1 {
			return true, false
		}
	case ast.OpGt:
		if n < 0 {
			return true, true
		}
		if n >= limit-1 {
			return true, false
		}
	}
	return false, false
}
