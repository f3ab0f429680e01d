package ast

import (
	"soulcore/internal/source"
	"soulcore/internal/typesys"
	"soulcore/internal/value"
)

// ExprKind enumerates every expression variant spec.md §3 names. A
// tagged variant with exhaustive switch dispatch replaces the source's
// virtual-inheritance expression hierarchy (spec.md §9,
// "AST as inheritance hierarchy").
type ExprKind uint8

const (
	ExprConstant ExprKind = iota
	ExprQualifiedIdent
	ExprDot
	ExprBracket
	ExprChevron
	ExprMetaFunction
	ExprBinary
	ExprUnary
	ExprTernary
	ExprAssign
	ExprIncDec
	ExprCallOrCast
	ExprResolvedCall
	ExprCast
	ExprArrayElementRef
	ExprStructMemberRef
	ExprVariableRef
	ExprInputEndpointRef
	ExprOutputEndpointRef
	ExprProcessorRef
	ExprCommaList
	ExprWriteToEndpoint
	ExprAdvanceClock
	ExprProcessorProperty
	ExprStaticAssert
)

// ResultKind is the expression-kind spec.md §3 attaches to every
// expression: what sort of thing it denotes once resolved.
type ResultKind uint8

const (
	ResultUnknown ResultKind = iota
	ResultValue
	ResultType
	ResultEndpoint
	ResultProcessor
)

// ResolutionState is the per-expression state machine named in spec.md
// §4.5 "State machines". Transitions are monotonic: once an expression
// reaches a resolved-* state it never regresses.
type ResolutionState uint8

const (
	StateUnknown ResolutionState = iota
	StateValueUnknown
	StateTypeUnknown
	StateEndpointUnknown
	StateProcessorUnknown
	StateResolvedValue
	StateResolvedType
	StateResolvedEndpoint
	StateResolvedProcessor
)

// IsResolved reports whether s is one of the resolved-* states.
func (s ResolutionState) IsResolved() bool {
	switch s {
	case StateResolvedValue, StateResolvedType, StateResolvedEndpoint, StateResolvedProcessor:
		return true
	default:
		return false
	}
}

// BinaryOp is the operator tag of an ExprBinary node.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpLogicalAnd
	OpLogicalOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

// UnaryOp is the operator tag of an ExprUnary node.
type UnaryOp uint8

const (
	OpNegate UnaryOp = iota
	OpLogicalNot
	OpBitNot
)

// IncDecOp distinguishes the four pre/post increment/decrement forms.
type IncDecOp uint8

const (
	PreIncrement IncDecOp = iota
	PreDecrement
	PostIncrement
	PostDecrement
)

// IsPre reports whether op reads the operand's value before mutating it.
func (op IncDecOp) IsPre() bool { return op == PreIncrement || op == PreDecrement }

// MetaFunctionKind is a type meta-function (spec.md §4.3): `size`,
// `elementType`, `isArray`, and friends.
type MetaFunctionKind uint8

const (
	MetaSize MetaFunctionKind = iota
	MetaElementType
	MetaIsArray
	MetaIsVector
	MetaIsStruct
	MetaMakeConst
	MetaMakeReference
	MetaRemoveReference
	MetaPrimitiveType
)

// ResultKindOf reports the result kind spec.md §4.3 assigns to a
// meta-function application: `type` for the five type-producing forms,
// `value` otherwise.
func (k MetaFunctionKind) ResultKindOf() ResultKind {
	switch k {
	case MetaMakeConst, MetaMakeReference, MetaRemoveReference, MetaElementType, MetaPrimitiveType:
		return ResultType
	default:
		return ResultValue
	}
}

// DeclRefKind selects which arena a resolved DeclRef points into.
type DeclRefKind uint8

const (
	DeclRefNone DeclRefKind = iota
	DeclRefVariable
	DeclRefFunction
	DeclRefStruct
	DeclRefUsing
	DeclRefEndpoint
	DeclRefModule
)

// DeclRef is a resolved binding: which declaration an identifier,
// variable reference, resolved call, or processor reference denotes.
type DeclRef struct {
	Kind DeclRefKind
	ID   uint32
}

// Expr is one AST expression node. Its fields are a union keyed by Kind;
// only the fields relevant to a given Kind are populated. Grounded on
// spec.md §4.3's "Every Expression exposes..." contract and on the
// re-architecture note in spec.md §9 to replace virtual dispatch with a
// single tagged struct plus exhaustive switches.
type Expr struct {
	Ctx    Context
	Kind   ExprKind
	Result ResultKind
	State  ResolutionState

	// Generic operand slots; meaning depends on Kind.
	Operand  ExprID
	Operand2 ExprID
	Operand3 ExprID
	Operands []ExprID

	Name source.StringID

	BinOp   BinaryOp
	UnOp    UnaryOp
	IncDec  IncDecOp
	Meta    MetaFunctionKind

	Literal value.Value

	// TargetType is populated for ExprCast (the cast destination), for a
	// resolved type meta-function/qualified-identifier (ResultType), and
	// for chevron-subscript sized-type construction.
	TargetType typesys.Type

	// CachedResultType memoizes GetResultType on a binary operator once
	// computed (spec.md §5: "caching computed types on binary operators").
	CachedResultType    typesys.Type
	cachedResultTypeSet bool

	Decl DeclRef

	// Endpoint/instance backing for *EndpointRef and ExprProcessorRef.
	Endpoint  EndpointID
	Instance  InstanceID
}

// IsResolved reports false for kind == unknown and for any expression
// whose resolution state has not yet reached a resolved-* state
// (spec.md §4.3: "An expression with kind unknown must return false from
// isResolved").
func (e *Expr) IsResolved() bool {
	return e.Result != ResultUnknown && e.State.IsResolved()
}

// IsResolvedAsType reports whether e denotes a concrete type (C4's
// contract: "Every type-position expression has isResolvedAsType true").
func (e *Expr) IsResolvedAsType() bool {
	return e.Result == ResultType && e.State == StateResolvedType
}

// IsResolvedAsValue reports whether e denotes a concrete, typed value
// (C4's contract).
func (e *Expr) IsResolvedAsValue() bool {
	return e.Result == ResultValue && e.State == StateResolvedValue
}

// IsOutputEndpoint reports whether e must be written to rather than read
// (spec.md §4.3: OutputEndpointRef and write-to-endpoint expressions).
func (e *Expr) IsOutputEndpoint() bool {
	return e.Kind == ExprOutputEndpointRef || e.Kind == ExprWriteToEndpoint
}

// IsAssignable reports whether e may appear on the left of an assignment
// or be the operand of a pre/post increment-decrement.
func (e *Expr) IsAssignable() bool {
	switch e.Kind {
	case ExprVariableRef, ExprArrayElementRef, ExprStructMemberRef, ExprOutputEndpointRef:
		return true
	default:
		return false
	}
}

// IsCompileTimeConstant reports whether e is a literal constant.
func (e *Expr) IsCompileTimeConstant() bool {
	return e.Kind == ExprConstant
}

// GetAsConstant returns e's literal value, if e is a constant literal.
func (e *Expr) GetAsConstant() (value.Value, bool) {
	if e.Kind != ExprConstant {
		return value.Value{}, false
	}
	return e.Literal, true
}

// GetResultType returns e's concrete result type, resolving it from the
// literal, cached, or declaration-backed source appropriate to Kind.
func (e *Expr) GetResultType(u *Unit) (typesys.Type, bool) {
	if e.cachedResultTypeSet {
		return e.CachedResultType, true
	}
	switch e.Kind {
	case ExprConstant:
		return e.Literal.Type(), true
	case ExprCast:
		return e.TargetType, true
	case ExprVariableRef:
		if v := u.Variables.Get(uint32(e.Decl.ID)); v != nil {
			return v.DeclaredType, true
		}
	case ExprInputEndpointRef:
		if ep := u.Endpoints.Get(uint32(e.Endpoint)); ep != nil && len(ep.DataTypes) > 0 {
			return ep.DataTypes[0], true
		}
	}
	if !e.State.IsResolved() {
		return typesys.Invalid(), false
	}
	return typesys.Invalid(), false
}

// CacheResultType memoizes t as e's computed result type, used by binary
// operator nodes so repeated queries do not re-derive the common operand
// type (spec.md §5).
func (e *Expr) CacheResultType(t typesys.Type) {
	e.CachedResultType = t
	e.cachedResultTypeSet = true
}

// ResolveAsType returns e's type-position meaning, valid only when
// Result is ResultType.
func (e *Expr) ResolveAsType() (typesys.Type, bool) {
	if e.Result != ResultType {
		return typesys.Invalid(), false
	}
	return e.TargetType, true
}

// CanSilentlyCastTo reports whether e's result type may silently convert
// to t.
func (e *Expr) CanSilentlyCastTo(u *Unit, t typesys.Type) bool {
	rt, ok := e.GetResultType(u)
	if !ok {
		return false
	}
	return (typesys.TypeRules{}).CanSilentlyCastTo(t, rt)
}
