package sema

import (
	"testing"

	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/testkit"
	"soulcore/internal/typesys"
	"soulcore/internal/value"
)

func newBag() (diag.Reporter, *diag.Bag) {
	return testkit.NewBag()
}

// buildEmptyProcessor constructs the seed-1 scenario: a processor with a
// single output stream endpoint and one run function whose body loops
// writing to it, forever.
func buildEmptyProcessor(u *ast.Unit) (ast.ModuleID, *ast.Module) {
	outName := u.Strings.Intern("out")
	runName := u.Strings.Intern("run")

	outEp := ast.EndpointID(u.Endpoints.Allocate(ast.EndpointDecl{
		Name: outName, Kind: ast.EndpointStream, Direction: ast.DirectionOutput,
		DataTypes: []typesys.Type{typesys.Float32()},
	}))

	litID := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprConstant, Literal: value.FromFloat32(0), Result: ast.ResultValue, State: ast.StateResolvedValue}))
	outRefID := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprOutputEndpointRef, Endpoint: outEp, Result: ast.ResultEndpoint, State: ast.StateResolvedEndpoint}))
	writeID := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprWriteToEndpoint, Operand: outRefID, Operand2: litID, Result: ast.ResultValue, State: ast.StateResolvedValue}))
	advanceID := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprAdvanceClock, Result: ast.ResultValue, State: ast.StateResolvedValue}))

	writeStmt := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtExpr, ReturnValue: writeID}))
	advanceStmt := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtExpr, ReturnValue: advanceID}))
	loopBody := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtBlock, Body: []ast.StmtID{writeStmt, advanceStmt}}))
	loopStmt := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtLoop, LoopBody: loopBody}))
	runBody := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtBlock, Body: []ast.StmtID{loopStmt}}))

	runFn := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: runName, IsRun: true, ReturnType: typesys.Void(), Body: runBody}))

	mod := &ast.Module{Kind: ast.ModuleProcessor, Endpoints: []ast.EndpointID{outEp}, Functions: []ast.FunctionID{runFn}}
	id := ast.ModuleID(u.Modules.Allocate(*mod))
	return id, u.Modules.Get(uint32(id))
}

func runAllPasses(u *ast.Unit, id ast.ModuleID, mod *ast.Module, r diag.Reporter) error {
	if err := RunPreResolutionCheck(u, []ast.ModuleID{id}, r); err != nil {
		return err
	}
	return checkModule(u, id, mod, DefaultLimits(), r)
}

func TestEmptyProcessorSanityChecksClean(t *testing.T) {
	u := ast.NewUnit()
	id, mod := buildEmptyProcessor(u)
	r, bag := newBag()
	testkit.RequireClean(t, runAllPasses(u, id, mod, r), bag)

	// Property 6: running the check twice yields no diagnostics either time.
	r2, bag2 := newBag()
	testkit.RequireClean(t, runAllPasses(u, id, mod, r2), bag2)
}

func TestProcessorWithTwoRunFunctionsReportsMultipleRunFunctions(t *testing.T) {
	u := ast.NewUnit()
	runName := u.Strings.Intern("run")
	run1 := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: runName, IsRun: true, ReturnType: typesys.Void()}))
	run2 := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: runName, IsRun: true, ReturnType: typesys.Void()}))
	outEp := ast.EndpointID(u.Endpoints.Allocate(ast.EndpointDecl{Kind: ast.EndpointStream, Direction: ast.DirectionOutput, DataTypes: []typesys.Type{typesys.Float32()}}))
	mod := ast.Module{Kind: ast.ModuleProcessor, Functions: []ast.FunctionID{run1, run2}, Endpoints: []ast.EndpointID{outEp}}
	id := ast.ModuleID(u.Modules.Allocate(mod))

	r, bag := newBag()
	err := RunPreResolutionCheck(u, []ast.ModuleID{id}, r)
	testkit.RequireDiagnostic(t, err, bag, diag.StructMultipleRunFunctions)
}

func TestGraphZeroDelayCycleReportsOrderedTrace(t *testing.T) {
	u := ast.NewUnit()
	aName, bName, cName := u.Strings.Intern("a"), u.Strings.Intern("b"), u.Strings.Intern("c")

	procID := ast.ModuleID(u.Modules.Allocate(ast.Module{Kind: ast.ModuleProcessor}))

	aInst := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{Name: aName, TargetProcessor: procID}))
	bInst := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{Name: bName, TargetProcessor: procID}))
	cInst := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{Name: cName, TargetProcessor: procID}))

	ref := func(inst ast.InstanceID) ast.ExprID {
		return ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprOutputEndpointRef, Instance: inst}))
	}
	conn := func(from, to ast.InstanceID) ast.ConnectionID {
		return ast.ConnectionID(u.Connections.Allocate(ast.Connection{SourceExpr: ref(from), DestExpr: ref(to), DelayLength: ast.Unresolved}))
	}

	ab := conn(aInst, bInst)
	bc := conn(bInst, cInst)
	ca := conn(cInst, aInst)

	graph := ast.Module{
		Kind:        ast.ModuleGraph,
		Instances:   []ast.InstanceID{aInst, bInst, cInst},
		Connections: []ast.ConnectionID{ab, bc, ca},
	}
	graphID := ast.ModuleID(u.Modules.Allocate(graph))

	r, bag := newBag()
	err := CheckGraphInvariants(u, graphID, u.Modules.Get(uint32(graphID)), r)
	testkit.RequireDiagnosticContains(t, err, bag, diag.RecursionGraphCycle, "a -> b -> c -> a")
}

func TestMultiDimensionalArrayVariableRejected(t *testing.T) {
	u := ast.NewUnit()
	inner := typesys.CreateArray(typesys.Int32(), 3)
	outer := typesys.CreateArray(inner, 2)
	name := u.Strings.Intern("grid")
	v := ast.VariableID(u.Variables.Allocate(ast.Variable{Name: name, Kind: ast.VarLocal, DeclaredType: outer}))

	r, bag := newBag()
	err := checkVariable(u, v, DefaultLimits(), r)
	testkit.RequireDiagnostic(t, err, bag, diag.TypeMultiDimensionalArray)
}

func TestEventHandlerWrongTypeReportsInvalidType(t *testing.T) {
	u := ast.NewUnit()
	evName := u.Strings.Intern("ev")
	ep := ast.EndpointID(u.Endpoints.Allocate(ast.EndpointDecl{
		Name: evName, Kind: ast.EndpointEvent, Direction: ast.DirectionInput,
		DataTypes: []typesys.Type{typesys.Int32(), typesys.Float32()},
	}))
	fn := ast.FunctionID(u.Functions.Allocate(ast.Function{
		Name: evName, IsEventHandler: true, ReturnType: typesys.Void(),
		Params: []ast.FunctionParam{{Name: u.Strings.Intern("x"), Type: typesys.Bool()}},
	}))
	mod := &ast.Module{Kind: ast.ModuleProcessor, Endpoints: []ast.EndpointID{ep}, Functions: []ast.FunctionID{fn}}

	r, bag := newBag()
	testkit.RequireDiagnostic(t, CheckEventFunctions(u, mod, r), bag, diag.EventFunctionInvalidType)
}

func TestConstStructMemberRejected(t *testing.T) {
	u := ast.NewUnit()
	sName := u.Strings.Intern("S")
	structRef := u.Structs.Declare(sName)
	decl := ast.StructDeclID(u.StructDecls.Allocate(ast.StructDecl{
		Name: sName, StructRef: structRef,
		Fields: []ast.StructField{{Name: u.Strings.Intern("x"), Type: typesys.Int32(), IsConst: true}},
	}))

	r, bag := newBag()
	testkit.RequireDiagnostic(t, checkStructMembers(u, decl, r), bag, diag.TypeConstStructMember)
}

func TestVariableNameLengthBounds(t *testing.T) {
	u := ast.NewUnit()
	ok := ast.VariableID(u.Variables.Allocate(ast.Variable{
		Name: u.Strings.Intern("normalName"), Kind: ast.VarLocal, DeclaredType: typesys.Int32(),
	}))
	r, bag := newBag()
	testkit.RequireClean(t, checkVariableNameLength(u, ok, DefaultLimits(), r), bag)

	longName := make([]byte, 200)
	for i := range longName {
		longName[i] = 'x'
	}
	tooLong := ast.VariableID(u.Variables.Allocate(ast.Variable{
		Name: u.Strings.Intern(string(longName)), Kind: ast.VarLocal, DeclaredType: typesys.Int32(),
	}))
	r2, bag2 := newBag()
	testkit.RequireDiagnostic(t, checkVariableNameLength(u, tooLong, DefaultLimits(), r2), bag2, diag.NameIdentifierTooLong)
}

func TestInstanceArraySizeBounds(t *testing.T) {
	u := ast.NewUnit()
	name := u.Strings.Intern("a")
	sizeExpr := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprConstant, Literal: value.FromInt64(300)}))

	tooBig := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{Name: name, ArraySizeExpr: sizeExpr, ArraySize: 300}))
	r, bag := newBag()
	testkit.RequireDiagnostic(t, checkInstanceArraySize(u, tooBig, DefaultLimits(), r), bag, diag.BoundsArraySizeOutOfRange)

	fine := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{Name: name, ArraySizeExpr: sizeExpr, ArraySize: 4}))
	r2, bag2 := newBag()
	testkit.RequireClean(t, checkInstanceArraySize(u, fine, DefaultLimits(), r2), bag2)
}

func TestConnectionDelayBounds(t *testing.T) {
	u := ast.NewUnit()
	makeConn := func(delay int64) ast.ConnectionID {
		delayExpr := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprConstant, Literal: value.FromInt64(delay)}))
		return ast.ConnectionID(u.Connections.Allocate(ast.Connection{DelayLengthExpr: delayExpr, DelayLength: delay}))
	}

	tooShort := makeConn(0)
	r, bag := newBag()
	testkit.RequireDiagnostic(t, checkConnectionDelay(u, tooShort, DefaultLimits(), r), bag, diag.BoundsDelayLineTooShort)

	tooLong := makeConn(300000)
	r2, bag2 := newBag()
	testkit.RequireDiagnostic(t, checkConnectionDelay(u, tooLong, DefaultLimits(), r2), bag2, diag.BoundsDelayLineTooLong)
}

func TestStructRecursionDistinguishesSelfAndMutual(t *testing.T) {
	u := ast.NewUnit()

	sName := u.Strings.Intern("S")
	sRef := u.Structs.Declare(sName)
	u.Structs.Complete(sRef, []typesys.Member{{Name: u.Strings.Intern("s"), Type: typesys.CreateStruct(u.Structs, sRef)}})
	sDecl := ast.StructDeclID(u.StructDecls.Allocate(ast.StructDecl{Name: sName, StructRef: sRef}))

	r, bag := newBag()
	testkit.RequireDiagnostic(t, checkStructRecursion(u, sDecl, r), bag, diag.RecursionSelfReferentialType)

	aName, bName := u.Strings.Intern("A"), u.Strings.Intern("B")
	aRef := u.Structs.Declare(aName)
	bRef := u.Structs.Declare(bName)
	u.Structs.Complete(aRef, []typesys.Member{{Name: u.Strings.Intern("b"), Type: typesys.CreateStruct(u.Structs, bRef)}})
	u.Structs.Complete(bRef, []typesys.Member{{Name: u.Strings.Intern("a"), Type: typesys.CreateStruct(u.Structs, aRef)}})
	aDecl := ast.StructDeclID(u.StructDecls.Allocate(ast.StructDecl{Name: aName, StructRef: aRef}))

	r2, bag2 := newBag()
	testkit.RequireDiagnostic(t, checkStructRecursion(u, aDecl, r2), bag2, diag.RecursionMutuallyRecursiveType)
}

// TestPreIncDecCollision covers property 10's two halves: a single
// statement `i = i++ + i` collides, but an increment and a read of `i`
// split across two statements (`i++; j = i + 1;`) do not.
func TestPreIncDecCollision(t *testing.T) {
	u := ast.NewUnit()
	iName := u.Strings.Intern("i")
	iVar := ast.VariableID(u.Variables.Allocate(ast.Variable{Name: iName, Kind: ast.VarLocal, DeclaredType: typesys.Int32()}))

	varRef := func() ast.ExprID {
		return ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprVariableRef, Decl: ast.DeclRef{Kind: ast.DeclRefVariable, ID: uint32(iVar)}}))
	}

	// i = i++ + i
	lhs := varRef()
	incTarget := varRef()
	incExpr := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprIncDec, Operand: incTarget, IncDec: ast.PostIncrement}))
	rhsRead := varRef()
	sum := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprBinary, BinOp: ast.OpAdd, Operand: incExpr, Operand2: rhsRead}))
	assign := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprAssign, Operand: lhs, Operand2: sum}))
	collidingStmt := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtExpr, ReturnValue: assign}))
	collidingBody := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtBlock, Body: []ast.StmtID{collidingStmt}}))
	collidingFn := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: u.Strings.Intern("f1"), ReturnType: typesys.Void(), Body: collidingBody}))

	r, bag := newBag()
	mod := &ast.Module{Functions: []ast.FunctionID{collidingFn}}
	testkit.RequireDiagnostic(t, CheckIncDecCollisions(u, mod, r), bag, diag.TypePreIncDecCollision)

	// i++; j = i + 1;  (two statements: no collision)
	jName := u.Strings.Intern("j")
	jVar := ast.VariableID(u.Variables.Allocate(ast.Variable{Name: jName, Kind: ast.VarLocal, DeclaredType: typesys.Int32()}))
	jRef := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprVariableRef, Decl: ast.DeclRef{Kind: ast.DeclRefVariable, ID: uint32(jVar)}}))

	incOnly := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprIncDec, Operand: varRef(), IncDec: ast.PostIncrement}))
	incStmt := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtExpr, ReturnValue: incOnly}))

	one := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprConstant, Literal: value.FromInt32(1)}))
	iPlusOne := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprBinary, BinOp: ast.OpAdd, Operand: varRef(), Operand2: one}))
	assignJ := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprAssign, Operand: jRef, Operand2: iPlusOne}))
	assignJStmt := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtExpr, ReturnValue: assignJ}))

	cleanBody := ast.StmtID(u.Stmts.Allocate(ast.Stmt{Kind: ast.StmtBlock, Body: []ast.StmtID{incStmt, assignJStmt}}))
	cleanFn := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: u.Strings.Intern("f2"), ReturnType: typesys.Void(), Body: cleanBody}))

	r2, bag2 := newBag()
	mod2 := &ast.Module{Functions: []ast.FunctionID{cleanFn}}
	testkit.RequireClean(t, CheckIncDecCollisions(u, mod2, r2), bag2)
}
