package sema

import "soulcore/internal/ast"

// walkExpr visits id and every expression id transitively reachable
// through its operand slots, in a stable pre-order. Nodes are visited
// exactly once even if referenced from more than one slot.
func walkExpr(u *ast.Unit, id ast.ExprID, seen map[ast.ExprID]bool, visit func(ast.ExprID, *ast.Expr)) {
	if !id.IsValid() || seen[id] {
		return
	}
	seen[id] = true
	e := u.Exprs.Get(uint32(id))
	if e == nil {
		return
	}
	visit(id, e)
	walkExpr(u, e.Operand, seen, visit)
	walkExpr(u, e.Operand2, seen, visit)
	walkExpr(u, e.Operand3, seen, visit)
	for _, sub := range e.Operands {
		walkExpr(u, sub, seen, visit)
	}
}

// collectModuleExprIDs gathers every expression id reachable from mod:
// function bodies (including declared locals' initializers), module-level
// variable initializers, endpoint array-size expressions, connection
// endpoints/delay expressions, and processor-instance target/array-size
// expressions.
func collectModuleExprIDs(u *ast.Unit, mod *ast.Module) []ast.ExprID {
	seen := make(map[ast.ExprID]bool)
	var out []ast.ExprID
	add := func(id ast.ExprID, _ *ast.Expr) { out = append(out, id) }

	walkModuleVar := func(id ast.VariableID) {
		v := u.Variables.Get(uint32(id))
		if v != nil {
			walkExpr(u, v.Initializer, seen, add)
		}
	}
	for _, id := range mod.Variables {
		walkModuleVar(id)
	}
	for _, id := range mod.Endpoints {
		if ep := u.Endpoints.Get(uint32(id)); ep != nil {
			walkExpr(u, ep.ArraySizeExpr, seen, add)
		}
	}
	for _, id := range mod.Connections {
		if c := u.Connections.Get(uint32(id)); c != nil {
			walkExpr(u, c.SourceExpr, seen, add)
			walkExpr(u, c.DestExpr, seen, add)
			walkExpr(u, c.DelayLengthExpr, seen, add)
		}
	}
	for _, id := range mod.Instances {
		if inst := u.Instances.Get(uint32(id)); inst != nil {
			walkExpr(u, inst.TargetExpr, seen, add)
			walkExpr(u, inst.ArraySizeExpr, seen, add)
		}
	}
	for _, id := range mod.Functions {
		if fn := u.Functions.Get(uint32(id)); fn != nil {
			walkStmt(u, fn.Body, seen, add, walkModuleVar)
		}
	}
	return out
}

// walkStmt visits stmt and every statement reachable through it,
// collecting the expression ids each references via addExpr, and
// visiting the initializer of any locally declared variable via
// addVarInit.
func walkStmt(u *ast.Unit, id ast.StmtID, seen map[ast.ExprID]bool, addExpr func(ast.ExprID, *ast.Expr), addVarInit func(ast.VariableID)) {
	if !id.IsValid() {
		return
	}
	s := u.Stmts.Get(uint32(id))
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtBlock:
		for _, child := range s.Body {
			walkStmt(u, child, seen, addExpr, addVarInit)
		}
	case ast.StmtIf:
		walkExpr(u, s.Cond, seen, addExpr)
		walkStmt(u, s.Then, seen, addExpr, addVarInit)
		walkStmt(u, s.Else, seen, addExpr, addVarInit)
	case ast.StmtLoop:
		walkExpr(u, s.Cond, seen, addExpr)
		walkStmt(u, s.LoopBody, seen, addExpr, addVarInit)
	case ast.StmtReturn, ast.StmtExpr:
		walkExpr(u, s.ReturnValue, seen, addExpr)
	case ast.StmtVariableDeclaration:
		addVarInit(s.Var)
	}
}
