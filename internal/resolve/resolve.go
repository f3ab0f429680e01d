// Package resolve is the seam between the parser/resolver and the
// sanity-check passes (spec.md §4.4): it does not perform name or type
// resolution itself, it specifies what a resolved AST looks like, and
// offers the scope-traversal API a resolver is expected to drive.
package resolve

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/source"
	"soulcore/internal/typesys"
)

// IsResolvedAsType reports whether e occupies a type position with a
// concrete type attached (spec.md §4.4: "Every type-position expression
// has isResolvedAsType true").
func IsResolvedAsType(e *ast.Expr) bool {
	return e != nil && e.IsResolvedAsType()
}

// IsResolvedAsValue reports whether e occupies a value position with a
// concrete, typed result (spec.md §4.4: "Every value-position expression
// has isResolvedAsValue true and a concrete getResultType").
func IsResolvedAsValue(u *ast.Unit, e *ast.Expr) bool {
	if e == nil || !e.IsResolvedAsValue() {
		return false
	}
	_, ok := e.GetResultType(u)
	return ok
}

// IsResolvedCall reports whether e references a specific function rather
// than the ambiguous pre-resolution CallOrCast form (spec.md §4.4:
// "Every function-call expression references a specific function (no
// more CallOrCast)").
func IsResolvedCall(e *ast.Expr) bool {
	return e != nil && e.Kind == ast.ExprResolvedCall && e.Decl.Kind == ast.DeclRefFunction
}

// HasConcreteTarget reports whether inst has been resolved to a concrete
// processor or graph module (spec.md §4.4: "All processor instances have
// a targetProcessor that is a concrete ProcessorRef").
func HasConcreteTarget(inst *ast.ProcessorInstance) bool {
	return inst != nil && inst.TargetProcessor.IsValid()
}

// Contract reports whether every expression named by exprIDs, and every
// processor instance named by instIDs, satisfies C4's post-resolution
// contract. internal/sema does not call it: sema.Run runs the
// post-resolution passes without checking the contract first.
func Contract(u *ast.Unit, exprIDs []ast.ExprID, instIDs []ast.InstanceID) bool {
	for _, id := range exprIDs {
		e := u.Exprs.Get(uint32(id))
		if e == nil || e.Kind == ast.ExprCallOrCast {
			return false
		}
		switch e.Result {
		case ast.ResultType:
			if !IsResolvedAsType(e) {
				return false
			}
		case ast.ResultValue:
			if !IsResolvedAsValue(u, e) {
				return false
			}
		}
	}
	for _, id := range instIDs {
		if !HasConcreteTarget(u.Instances.Get(uint32(id))) {
			return false
		}
	}
	return true
}

// ResolveCastCandidate is the diagnostic-emitting form of spec.md §4.1's
// candidate tie-break rule, driven by whatever collapses an ambiguous
// CallOrCast form against its candidate target types before C5 runs.
func ResolveCastCandidate(src typesys.Type, candidates []typesys.Type, span source.Span, r diag.Reporter) (typesys.Type, error) {
	result, outcome := (typesys.TypeRules{}).ResolveCastCandidate(src, candidates)
	switch outcome {
	case typesys.CandidateUnique:
		return result, nil
	case typesys.CandidateAmbiguous:
		return typesys.Invalid(), diag.Halt(r, diag.NewError(diag.TypeAmbiguousCast, span,
			"value could silently convert to more than one candidate type"))
	default:
		return typesys.Invalid(), diag.Halt(r, diag.NewError(diag.TypeNoMatchingCast, span,
			"value does not silently convert to any candidate type"))
	}
}

// LookupType resolves a type-position identifier from scope, searching
// only the struct/using category.
func LookupType(u *ast.Unit, scope ast.ScopeID, name source.StringID) []ast.NameResult {
	filter := ast.NameSearchFilter{Types: true}
	return ast.PerformFullNameSearch(u, scope, name, filter, ast.NoUpTo, false, false)
}

// LookupValue resolves a value-position identifier (variable or
// function) from scope, honoring block-scope forward-declaration order
// via upTo (spec.md §4.3's "upTo" cursor).
func LookupValue(u *ast.Unit, scope ast.ScopeID, name source.StringID, upTo int) []ast.NameResult {
	filter := ast.NameSearchFilter{Variables: true, Functions: true}
	return ast.PerformFullNameSearch(u, scope, name, filter, upTo, false, false)
}

// LookupEndpointOrModule resolves an identifier that may denote an
// endpoint, a processor instance/alias, or a nested module.
func LookupEndpointOrModule(u *ast.Unit, scope ast.ScopeID, name source.StringID) []ast.NameResult {
	filter := ast.NameSearchFilter{Endpoints: true, Modules: true}
	return ast.PerformFullNameSearch(u, scope, name, filter, ast.NoUpTo, false, false)
}

// LookupLocalVariable resolves name as a local variable only, stopping
// at the first non-Block scope (spec.md §4.3's onlyFindLocalVariables
// modifier — used to decide whether an identifier can be a plain local
// before falling back to a module-level or state variable).
func LookupLocalVariable(u *ast.Unit, scope ast.ScopeID, name source.StringID, upTo int) []ast.NameResult {
	filter := ast.NameSearchFilter{Variables: true}
	return ast.PerformFullNameSearch(u, scope, name, filter, upTo, true, false)
}
