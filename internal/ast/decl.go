package ast

import (
	"fmt"

	"soulcore/internal/source"
	"soulcore/internal/typesys"
)

// FunctionParam is one parameter of a Function declaration.
type FunctionParam struct {
	Name source.StringID
	Type typesys.Type
}

// Function is a Function declaration (spec.md §3). IsRun and
// IsUserInit mark the two special zero-argument void functions a
// Processor may have; IsEventHandler marks a function meant to be
// matched against an input event endpoint by name (spec.md §4.5's
// event-function checker).
type Function struct {
	Ctx            Context
	Name           source.StringID
	IsRun          bool
	IsUserInit     bool
	IsEventHandler bool
	Params         []FunctionParam
	ReturnType     typesys.Type
	Body           StmtID
	Own            ScopeID
}

// IsVoidAndParameterless reports whether fn has the signature required
// of a run or user-init function (spec.md §3).
func (fn *Function) IsVoidAndParameterless() bool {
	return fn.ReturnType.IsVoid() && len(fn.Params) == 0
}

// CanonicalSignature is the (name, parameter-type shape) key spec.md
// §4.5's duplicate-name checker compares functions in the same scope by,
// with const/reference stripped from each parameter type.
func (fn *Function) CanonicalSignature() string {
	sig := fmt.Sprintf("%d(", fn.Name)
	for i, p := range fn.Params {
		if i > 0 {
			sig += ","
		}
		sig += p.Type.RemoveConst().RemoveReference().Kind().String()
	}
	return sig + ")"
}

// VarKind classifies a Variable by where it is declared (spec.md §3:
// "function-local, function parameter, state, or constant").
type VarKind uint8

const (
	VarLocal VarKind = iota
	VarParameter
	VarState
	VarConstant
)

// Variable is a Variable declaration.
type Variable struct {
	Ctx          Context
	Name         source.StringID
	Kind         VarKind
	DeclaredType typesys.Type
	Initializer  ExprID
}

// IsCompileTimeConstantRequired reports whether spec.md §3 requires this
// variable's initializer to be a compile-time constant.
func (v *Variable) IsCompileTimeConstantRequired() bool {
	return v.Kind == VarConstant || v.Kind == VarState
}

// StructField is one ordered member of a StructDecl, prior to resolution
// its Type may still be an unresolved type expression referenced via
// TypeExpr.
type StructField struct {
	Name     source.StringID
	TypeExpr ExprID
	Type     typesys.Type
	IsConst  bool
}

// StructDecl is a Struct declaration (spec.md §3). StructRef names the
// entry this declaration occupies in the Unit's typesys.Registry, so
// self-reference can be detected while the field list is still being
// resolved (typesys.Registry's declare/complete lifecycle).
type StructDecl struct {
	Ctx       Context
	Name      source.StringID
	StructRef typesys.StructID
	Fields    []StructField
}

// UsingDecl is a `using` type-alias declaration.
type UsingDecl struct {
	Ctx      Context
	Name     source.StringID
	TypeExpr ExprID
	Resolved typesys.Type
}

// EndpointKind classifies the traffic an Endpoint carries.
type EndpointKind uint8

const (
	EndpointValue EndpointKind = iota
	EndpointStream
	EndpointEvent
)

// Direction is an Endpoint's data flow direction.
type Direction uint8

const (
	DirectionInput Direction = iota
	DirectionOutput
)

// EndpointDecl is an Endpoint declaration (spec.md §3). Only an Event
// endpoint may list more than one alternative in DataTypes.
type EndpointDecl struct {
	Ctx           Context
	Name          source.StringID
	Kind          EndpointKind
	Direction     Direction
	DataTypes     []typesys.Type
	ArraySizeExpr ExprID
	ArraySize     int64 // resolved size; Unresolved (-1) until checked
	Annotations   map[source.StringID]ExprID
}

// Unresolved marks an endpoint array size (or connection delay length)
// not yet evaluated to a constant.
const Unresolved int64 = -1

// AcceptsType reports whether t is one of ep's declared alternatives.
func (ep *EndpointDecl) AcceptsType(t typesys.Type) bool {
	for _, dt := range ep.DataTypes {
		if dt.IsIdentical(t) {
			return true
		}
	}
	return false
}

// ProcessorInstance is a named instantiation of a processor or graph
// inside a Graph module (spec.md §3).
type ProcessorInstance struct {
	Ctx               Context
	Name              source.StringID
	TargetExpr        ExprID
	TargetProcessor   ModuleID // resolved per C4's contract; NoModuleID until then
	ArraySizeExpr     ExprID
	ArraySize         int64
}

// ProcessorAlias renames a ProcessorInstance within a Graph.
type ProcessorAlias struct {
	Ctx    Context
	Name   source.StringID
	Target InstanceID
}

// Connection wires one processor instance's output endpoint to another's
// input endpoint, optionally through a delay line (spec.md §3).
type Connection struct {
	Ctx             Context
	SourceExpr      ExprID
	DestExpr        ExprID
	DelayLengthExpr ExprID
	DelayLength     int64 // resolved sample count; Unresolved (-1) when absent/not yet checked
}

// HasDelay reports whether this connection specifies a delay line.
func (c *Connection) HasDelay() bool {
	return c.DelayLengthExpr.IsValid()
}
