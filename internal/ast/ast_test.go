package ast

import (
	"testing"

	"soulcore/internal/source"
)

func TestLocalNameSearchRespectsUpTo(t *testing.T) {
	u := NewUnit()
	x := u.Strings.Intern("x")
	y := u.Strings.Intern("y")

	blockID := u.NewScope(ScopeBlock, NoScopeID, source.Span{})
	block := u.Scope(blockID)

	xVar := VariableID(u.Variables.Allocate(Variable{Name: x, Kind: VarLocal}))
	yVar := VariableID(u.Variables.Allocate(Variable{Name: y, Kind: VarLocal}))
	block.DeclareVariable(x, xVar, 0)
	block.DeclareVariable(y, yVar, 2)

	filter := NameSearchFilter{Variables: true}

	// At statement index 1, only x (declared at stmt 0) is visible.
	got := block.PerformLocalNameSearch(x, filter, 1)
	if len(got) != 1 || got[0].Variable != xVar {
		t.Fatalf("expected x visible at upTo=1, got %#v", got)
	}
	got = block.PerformLocalNameSearch(y, filter, 1)
	if len(got) != 0 {
		t.Fatalf("expected y not yet visible at upTo=1, got %#v", got)
	}

	// At statement index 3, both are visible.
	got = block.PerformLocalNameSearch(y, filter, 3)
	if len(got) != 1 || got[0].Variable != yVar {
		t.Fatalf("expected y visible at upTo=3, got %#v", got)
	}

	// NoUpTo ignores declaration order entirely.
	got = block.PerformLocalNameSearch(y, filter, NoUpTo)
	if len(got) != 1 {
		t.Fatalf("expected y visible with NoUpTo, got %#v", got)
	}
}

func TestFullNameSearchStopsAtFirstNonBlockWhenOnlyLocalVariables(t *testing.T) {
	u := NewUnit()
	name := u.Strings.Intern("state")

	moduleScope := u.NewScope(ScopeModule, NoScopeID, source.Span{})
	fnScope := u.NewScope(ScopeFunction, moduleScope, source.Span{})
	blockScope := u.NewScope(ScopeBlock, fnScope, source.Span{})

	stateVar := VariableID(u.Variables.Allocate(Variable{Name: name, Kind: VarState}))
	u.Scope(moduleScope).DeclareVariable(name, stateVar, NoUpTo)

	filter := NameSearchFilter{Variables: true}

	// Function scope is not a Block, so the walk must stop there without
	// reaching the module scope's state variable.
	got := PerformFullNameSearch(u, blockScope, name, filter, NoUpTo, true, false)
	if len(got) != 0 {
		t.Fatalf("expected onlyFindLocalVariables to stop before the module scope, got %#v", got)
	}

	// Without that restriction, the walk reaches the module scope.
	got = PerformFullNameSearch(u, blockScope, name, filter, NoUpTo, false, false)
	if len(got) != 1 || got[0].Variable != stateVar {
		t.Fatalf("expected the module-scope state variable to be found, got %#v", got)
	}
}

func TestFullNameSearchStopsAtFirstScopeWithResults(t *testing.T) {
	u := NewUnit()
	name := u.Strings.Intern("n")

	outer := u.NewScope(ScopeModule, NoScopeID, source.Span{})
	inner := u.NewScope(ScopeBlock, outer, source.Span{})

	outerVar := VariableID(u.Variables.Allocate(Variable{Name: name, Kind: VarState}))
	innerVar := VariableID(u.Variables.Allocate(Variable{Name: name, Kind: VarLocal}))
	u.Scope(outer).DeclareVariable(name, outerVar, NoUpTo)
	u.Scope(inner).DeclareVariable(name, innerVar, NoUpTo)

	filter := NameSearchFilter{Variables: true}
	got := PerformFullNameSearch(u, inner, name, filter, NoUpTo, false, true)
	if len(got) != 1 || got[0].Variable != innerVar {
		t.Fatalf("expected shadowing inner declaration only, got %#v", got)
	}
}

func TestModuleEndpointAndRunFunctionQueries(t *testing.T) {
	u := NewUnit()
	in := u.Strings.Intern("in")
	out := u.Strings.Intern("out")
	runName := u.Strings.Intern("run")

	inEp := EndpointID(u.Endpoints.Allocate(EndpointDecl{Name: in, Kind: EndpointStream, Direction: DirectionInput}))
	outEp := EndpointID(u.Endpoints.Allocate(EndpointDecl{Name: out, Kind: EndpointStream, Direction: DirectionOutput}))
	runFn := FunctionID(u.Functions.Allocate(Function{Name: runName, IsRun: true}))

	mod := &Module{
		Kind:      ModuleProcessor,
		Endpoints: []EndpointID{inEp, outEp},
		Functions: []FunctionID{runFn},
	}

	outs := mod.OutputEndpoints(u)
	if len(outs) != 1 || outs[0] != outEp {
		t.Fatalf("expected exactly the output endpoint, got %#v", outs)
	}
	nonEvent := mod.NonEventEndpoints(u)
	if len(nonEvent) != 2 {
		t.Fatalf("expected both stream endpoints to count as non-event, got %#v", nonEvent)
	}
	runs := mod.RunFunctions(u)
	if len(runs) != 1 || runs[0] != runFn {
		t.Fatalf("expected the run function to be found, got %#v", runs)
	}
}

func TestExprResolutionStateIsMonotonicByConstruction(t *testing.T) {
	e := &Expr{Kind: ExprVariableRef, Result: ResultUnknown, State: StateUnknown}
	if e.IsResolved() {
		t.Fatalf("a freshly built expression must not report resolved")
	}
	e.Result = ResultValue
	e.State = StateResolvedValue
	if !e.IsResolved() || !e.IsResolvedAsValue() {
		t.Fatalf("expected resolved-value expression to report as resolved")
	}
	if e.IsResolvedAsType() {
		t.Fatalf("a resolved-value expression must not also report resolved-as-type")
	}
}

func TestExprIsAssignableAndIsOutputEndpoint(t *testing.T) {
	varRef := &Expr{Kind: ExprVariableRef}
	if !varRef.IsAssignable() {
		t.Fatalf("a variable reference must be assignable")
	}
	lit := &Expr{Kind: ExprConstant}
	if lit.IsAssignable() {
		t.Fatalf("a constant literal must not be assignable")
	}
	outRef := &Expr{Kind: ExprOutputEndpointRef}
	if !outRef.IsOutputEndpoint() || !outRef.IsAssignable() {
		t.Fatalf("an output endpoint reference must be both an output endpoint and assignable")
	}
}

func TestMetaFunctionResultKind(t *testing.T) {
	cases := map[MetaFunctionKind]ResultKind{
		MetaSize:           ResultValue,
		MetaIsArray:        ResultValue,
		MetaElementType:    ResultType,
		MetaMakeConst:      ResultType,
		MetaMakeReference:  ResultType,
		MetaRemoveReference: ResultType,
		MetaPrimitiveType:  ResultType,
	}
	for meta, want := range cases {
		if got := meta.ResultKindOf(); got != want {
			t.Fatalf("meta function %v: got result kind %v, want %v", meta, got, want)
		}
	}
}

func TestIncDecOpIsPre(t *testing.T) {
	if !PreIncrement.IsPre() || !PreDecrement.IsPre() {
		t.Fatalf("pre forms must report IsPre true")
	}
	if PostIncrement.IsPre() || PostDecrement.IsPre() {
		t.Fatalf("post forms must report IsPre false")
	}
}
