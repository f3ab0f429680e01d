package resolve

import (
	"testing"

	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/source"
	"soulcore/internal/testkit"
	"soulcore/internal/typesys"
	"soulcore/internal/value"
)

func TestContractRejectsUnresolvedCallOrCast(t *testing.T) {
	u := ast.NewUnit()
	id := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprCallOrCast}))
	if Contract(u, []ast.ExprID{id}, nil) {
		t.Fatalf("a CallOrCast expression must fail the post-resolution contract")
	}
}

func TestContractAcceptsResolvedTypeAndValueExpressions(t *testing.T) {
	u := ast.NewUnit()
	typeExpr := ast.Expr{
		Kind:       ast.ExprQualifiedIdent,
		Result:     ast.ResultType,
		State:      ast.StateResolvedType,
		TargetType: typesys.Int32(),
	}
	valueExpr := ast.Expr{
		Kind:   ast.ExprConstant,
		Result: ast.ResultValue,
		State:  ast.StateResolvedValue,
	}
	valueExpr.Literal = value.Zero(typesys.Int32())

	tID := ast.ExprID(u.Exprs.Allocate(typeExpr))
	vID := ast.ExprID(u.Exprs.Allocate(valueExpr))

	if !Contract(u, []ast.ExprID{tID, vID}, nil) {
		t.Fatalf("resolved type and value expressions should satisfy the contract")
	}
}

func TestContractRequiresConcreteProcessorTarget(t *testing.T) {
	u := ast.NewUnit()
	unresolved := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{}))
	if Contract(u, nil, []ast.InstanceID{unresolved}) {
		t.Fatalf("an instance with no targetProcessor must fail the contract")
	}

	resolved := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{TargetProcessor: ast.ModuleID(1)}))
	if !Contract(u, nil, []ast.InstanceID{resolved}) {
		t.Fatalf("an instance with a concrete targetProcessor should satisfy the contract")
	}
}

func TestResolveCastCandidateAcceptsUniqueMatch(t *testing.T) {
	r, bag := testkit.NewBag()
	got, err := ResolveCastCandidate(typesys.Float32(), []typesys.Type{typesys.Int64(), typesys.Float64()}, source.Span{}, r)
	testkit.RequireClean(t, err, bag)
	if !got.IsIdentical(typesys.Float64()) {
		t.Fatalf("expected float64 to be selected, got %v", got.Kind())
	}
}

func TestResolveCastCandidateReportsAmbiguousCast(t *testing.T) {
	r, bag := testkit.NewBag()
	_, err := ResolveCastCandidate(typesys.Int32(), []typesys.Type{typesys.Int64(), typesys.Float64()}, source.Span{}, r)
	testkit.RequireDiagnostic(t, err, bag, diag.TypeAmbiguousCast)
}

func TestResolveCastCandidateReportsNoMatchingCast(t *testing.T) {
	r, bag := testkit.NewBag()
	_, err := ResolveCastCandidate(typesys.Bool(), []typesys.Type{typesys.CreateVector(typesys.Int32(), 4)}, source.Span{}, r)
	testkit.RequireDiagnostic(t, err, bag, diag.TypeNoMatchingCast)
}

func TestLookupValueHonorsUpTo(t *testing.T) {
	u := ast.NewUnit()
	name := u.Strings.Intern("n")
	block := u.NewScope(ast.ScopeBlock, ast.NoScopeID, source.Span{})
	v := ast.VariableID(u.Variables.Allocate(ast.Variable{Name: name, Kind: ast.VarLocal}))
	u.Scope(block).DeclareVariable(name, v, 5)

	if got := LookupValue(u, block, name, 3); len(got) != 0 {
		t.Fatalf("expected no visibility before the declaring statement, got %#v", got)
	}
	if got := LookupValue(u, block, name, 6); len(got) != 1 {
		t.Fatalf("expected visibility after the declaring statement, got %#v", got)
	}
}
