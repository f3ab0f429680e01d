package ast

import (
	"soulcore/internal/source"
	"soulcore/internal/typesys"
	"soulcore/internal/value"
)

// Unit is the compilation unit that owns every arena an AST is built
// from (spec.md §3 "Lifecycles": "All AST nodes are allocated from a
// pool owned by a compilation unit; they live until the compilation unit
// is torn down"). A Unit is never shared between compilations in flight
// (spec.md §5).
type Unit struct {
	Files   *source.FileSet
	Strings *source.Interner
	Structs *typesys.Registry
	Consts  *value.ConstantTable

	Scopes      Arena[Scope]
	Modules     Arena[Module]
	Functions   Arena[Function]
	Variables   Arena[Variable]
	StructDecls Arena[StructDecl]
	Usings      Arena[UsingDecl]
	Endpoints   Arena[EndpointDecl]
	Instances   Arena[ProcessorInstance]
	Aliases     Arena[ProcessorAlias]
	Connections Arena[Connection]
	Stmts       Arena[Stmt]
	Exprs       Arena[Expr]
}

// NewUnit returns an empty compilation unit with fresh, empty arenas.
func NewUnit() *Unit {
	return &Unit{
		Files:   source.NewFileSet(),
		Strings: source.NewInterner(),
		Structs: typesys.NewRegistry(),
		Consts:  value.NewConstantTable(),
	}
}

// NewScope allocates a scope of the given kind under parent and returns
// its id.
func (u *Unit) NewScope(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	return ScopeID(u.Scopes.Allocate(newScope(kind, parent, span)))
}

// Scope returns the scope stored at id.
func (u *Unit) Scope(id ScopeID) *Scope { return u.Scopes.Get(uint32(id)) }
