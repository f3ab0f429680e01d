package main

import (
	"soulcore/internal/ast"
	"soulcore/internal/typesys"
	"soulcore/internal/value"
)

// fixture pairs a named compilation unit with the module the checker
// should be run against, mirroring one of spec.md §8's seed scenarios.
type fixture struct {
	name string
	unit *ast.Unit
	root ast.ModuleID
}

// builtinFixtures returns the handful of hand-built units this
// demonstration binary walks through: one that sanity-checks clean, one
// that fails the pre-resolution structural check (two run functions) and
// one that fails a post-resolution pass (an over-length delay line).
func builtinFixtures() []fixture {
	return []fixture{
		emptyProcessorFixture(),
		twoRunFunctionsFixture(),
		delayLineTooLongFixture(),
	}
}

func emptyProcessorFixture() fixture {
	u := ast.NewUnit()
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
	mod := ast.Module{Kind: ast.ModuleProcessor, Endpoints: []ast.EndpointID{outEp}, Functions: []ast.FunctionID{runFn}}
	id := ast.ModuleID(u.Modules.Allocate(mod))

	return fixture{name: "empty-processor", unit: u, root: id}
}

func twoRunFunctionsFixture() fixture {
	u := ast.NewUnit()
	runName := u.Strings.Intern("run")
	run1 := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: runName, IsRun: true, ReturnType: typesys.Void()}))
	run2 := ast.FunctionID(u.Functions.Allocate(ast.Function{Name: runName, IsRun: true, ReturnType: typesys.Void()}))
	outEp := ast.EndpointID(u.Endpoints.Allocate(ast.EndpointDecl{Kind: ast.EndpointStream, Direction: ast.DirectionOutput, DataTypes: []typesys.Type{typesys.Float32()}}))
	mod := ast.Module{Kind: ast.ModuleProcessor, Functions: []ast.FunctionID{run1, run2}, Endpoints: []ast.EndpointID{outEp}}
	id := ast.ModuleID(u.Modules.Allocate(mod))

	return fixture{name: "two-run-functions", unit: u, root: id}
}

func delayLineTooLongFixture() fixture {
	u := ast.NewUnit()
	name := u.Strings.Intern("a")
	inst := ast.InstanceID(u.Instances.Allocate(ast.ProcessorInstance{Name: name}))
	ref := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprOutputEndpointRef, Instance: inst}))
	delayExpr := ast.ExprID(u.Exprs.Allocate(ast.Expr{Kind: ast.ExprConstant, Literal: value.FromInt64(300000)}))
	conn := ast.ConnectionID(u.Connections.Allocate(ast.Connection{
		SourceExpr: ref, DestExpr: ref, DelayLengthExpr: delayExpr, DelayLength: 300000,
	}))
	outEp := ast.EndpointID(u.Endpoints.Allocate(ast.EndpointDecl{Kind: ast.EndpointStream, Direction: ast.DirectionOutput, DataTypes: []typesys.Type{typesys.Float32()}}))
	mod := ast.Module{Kind: ast.ModuleGraph, Endpoints: []ast.EndpointID{outEp}, Instances: []ast.InstanceID{inst}, Connections: []ast.ConnectionID{conn}}
	id := ast.ModuleID(u.Modules.Allocate(mod))

	return fixture{name: "delay-line-too-long", unit: u, root: id}
}
