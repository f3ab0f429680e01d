package ast

import "soulcore/internal/source"

// Handles into a Unit's arenas (spec.md §3: "Containers of children use
// stable handles into the arena"). All are 1-based; the zero value is
// the "no node" sentinel for that category.
type (
	ScopeID       uint32
	ModuleID      uint32
	FunctionID    uint32
	VariableID    uint32
	StructDeclID  uint32
	UsingDeclID   uint32
	EndpointID    uint32
	InstanceID    uint32
	AliasID       uint32
	ConnectionID  uint32
	StmtID        uint32
	ExprID        uint32
)

const (
	NoScopeID      ScopeID      = 0
	NoModuleID     ModuleID     = 0
	NoFunctionID   FunctionID   = 0
	NoVariableID   VariableID   = 0
	NoStructDeclID StructDeclID = 0
	NoUsingDeclID  UsingDeclID  = 0
	NoEndpointID   EndpointID   = 0
	NoInstanceID   InstanceID   = 0
	NoAliasID      AliasID      = 0
	NoConnectionID ConnectionID = 0
	NoStmtID       StmtID       = 0
	NoExprID       ExprID       = 0
)

func (id ScopeID) IsValid() bool      { return id != NoScopeID }
func (id ModuleID) IsValid() bool     { return id != NoModuleID }
func (id FunctionID) IsValid() bool   { return id != NoFunctionID }
func (id VariableID) IsValid() bool   { return id != NoVariableID }
func (id StructDeclID) IsValid() bool { return id != NoStructDeclID }
func (id UsingDeclID) IsValid() bool  { return id != NoUsingDeclID }
func (id EndpointID) IsValid() bool   { return id != NoEndpointID }
func (id InstanceID) IsValid() bool   { return id != NoInstanceID }
func (id AliasID) IsValid() bool      { return id != NoAliasID }
func (id ConnectionID) IsValid() bool { return id != NoConnectionID }
func (id StmtID) IsValid() bool       { return id != NoStmtID }
func (id ExprID) IsValid() bool       { return id != NoExprID }

// Context is the common header shared by every AST node (spec.md §3):
// its source location and the scope it was parsed inside of. Parent
// scope is a non-owning handle, never followed during teardown (spec.md
// §9, "Scope back-references").
type Context struct {
	Span         source.Span
	ParentScope  ScopeID
}
