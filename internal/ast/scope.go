package ast

import "soulcore/internal/source"

// ScopeKind classifies the naming region a Scope introduces (spec.md
// §3: "any node that introduces a naming region (Module, Function,
// Block) is a Scope").
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

// NameCategory selects one of the disjoint declaration categories a
// scope exposes (spec.md §3, "Names within a single scope are unique
// across the categories that scope exposes").
type NameCategory uint8

const (
	CategoryVariable NameCategory = iota
	CategoryFunction
	CategoryType // struct or using-alias
	CategoryEndpoint
	CategoryModule // processor instance / alias / nested namespace
)

// NameSearchFilter selects which categories performLocalNameSearch and
// performFullNameSearch should surface (spec.md §4.3).
type NameSearchFilter struct {
	Variables bool
	Types     bool
	Functions bool
	Endpoints bool
	Modules   bool
}

func (f NameSearchFilter) allows(cat NameCategory) bool {
	switch cat {
	case CategoryVariable:
		return f.Variables
	case CategoryFunction:
		return f.Functions
	case CategoryType:
		return f.Types
	case CategoryEndpoint:
		return f.Endpoints
	case CategoryModule:
		return f.Modules
	default:
		return false
	}
}

// NameResult is one match returned by a name search.
type NameResult struct {
	Category NameCategory
	Variable VariableID
	Function FunctionID
	Struct   StructDeclID
	Using    UsingDeclID
	Endpoint EndpointID
	Module   ModuleID
}

// declEntry records one local declaration together with the statement
// index it becomes visible at, so Block scopes can implement the
// "upTo" forward-declaration-order restriction (spec.md §4.3).
type declEntry struct {
	name    source.StringID
	stmtIdx int // -1 for scopes that are not statement-ordered
	result  NameResult
}

// Scope is one node of the name-lookup tree (spec.md §3, §4.3). Its
// parent link is a non-owning back-reference, matching spec.md §9's
// guidance that scope back-references are never followed during
// teardown.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Span   source.Span

	entries []declEntry
}

func newScope(kind ScopeKind, parent ScopeID, span source.Span) Scope {
	return Scope{Kind: kind, Parent: parent, Span: span}
}

// declare records name as a local declaration of scope, visible starting
// at statement index stmtIdx (-1 if this scope is not statement-ordered,
// meaning the declaration is visible throughout).
func (s *Scope) declare(name source.StringID, stmtIdx int, result NameResult) {
	s.entries = append(s.entries, declEntry{name: name, stmtIdx: stmtIdx, result: result})
}

func (s *Scope) DeclareVariable(name source.StringID, id VariableID, stmtIdx int) {
	s.declare(name, stmtIdx, NameResult{Category: CategoryVariable, Variable: id})
}

func (s *Scope) DeclareFunction(name source.StringID, id FunctionID) {
	s.declare(name, -1, NameResult{Category: CategoryFunction, Function: id})
}

func (s *Scope) DeclareStruct(name source.StringID, id StructDeclID) {
	s.declare(name, -1, NameResult{Category: CategoryType, Struct: id})
}

func (s *Scope) DeclareUsing(name source.StringID, id UsingDeclID) {
	s.declare(name, -1, NameResult{Category: CategoryType, Using: id})
}

func (s *Scope) DeclareEndpoint(name source.StringID, id EndpointID) {
	s.declare(name, -1, NameResult{Category: CategoryEndpoint, Endpoint: id})
}

func (s *Scope) DeclareModule(name source.StringID, id ModuleID) {
	s.declare(name, -1, NameResult{Category: CategoryModule, Module: id})
}

// NoUpTo means "no forward-declaration restriction": every local
// declaration is visible regardless of statement order.
const NoUpTo = -1

// PerformLocalNameSearch examines only s's direct declarations (spec.md
// §4.3). In a Block scope, upTo restricts variable results to
// declarations visible strictly before statement index upTo.
func (s *Scope) PerformLocalNameSearch(query source.StringID, filter NameSearchFilter, upTo int) []NameResult {
	var out []NameResult
	for _, e := range s.entries {
		if e.name != query || !filter.allows(e.result.Category) {
			continue
		}
		if s.Kind == ScopeBlock && upTo != NoUpTo && e.stmtIdx >= 0 && e.stmtIdx >= upTo {
			continue
		}
		out = append(out, e.result)
	}
	return out
}

// PerformFullNameSearch walks from scopeID toward the root, calling
// PerformLocalNameSearch at each level (spec.md §4.3). If
// onlyFindLocalVariables is set, the walk stops at the first non-Block
// scope. If stopAtFirstScopeWithResults is set, the walk halts as soon
// as any scope contributes a result.
func PerformFullNameSearch(
	u *Unit,
	scopeID ScopeID,
	query source.StringID,
	filter NameSearchFilter,
	upTo int,
	onlyFindLocalVariables bool,
	stopAtFirstScopeWithResults bool,
) []NameResult {
	var out []NameResult
	cur := scopeID
	firstLevel := true
	for cur.IsValid() {
		scope := u.Scope(cur)
		if scope == nil {
			break
		}
		levelUpTo := NoUpTo
		if firstLevel {
			levelUpTo = upTo
		}
		results := scope.PerformLocalNameSearch(query, filter, levelUpTo)
		out = appendUnique(out, results)
		if len(results) > 0 && stopAtFirstScopeWithResults {
			return out
		}
		if onlyFindLocalVariables && scope.Kind != ScopeBlock {
			return out
		}
		cur = scope.Parent
		firstLevel = false
	}
	return out
}

func appendUnique(out []NameResult, add []NameResult) []NameResult {
	for _, r := range add {
		dup := false
		for _, existing := range out {
			if existing == r {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}
