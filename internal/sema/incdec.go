package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
)

// CheckIncDecCollisions is post-resolution pass 5 (spec.md §4.5): within
// a single statement, a variable may not be both modified by a pre- or
// post-increment/decrement and read elsewhere. Enforced per statement via
// two per-statement tracking sets, exactly as spec.md prescribes.
func CheckIncDecCollisions(u *ast.Unit, mod *ast.Module, r diag.Reporter) error {
	for _, id := range mod.Functions {
		fn := u.Functions.Get(uint32(id))
		if fn == nil {
			continue
		}
		if err := walkStmtForCollisions(u, fn.Body, r); err != nil {
			return err
		}
	}
	return nil
}

func walkStmtForCollisions(u *ast.Unit, id ast.StmtID, r diag.Reporter) error {
	if !id.IsValid() {
		return nil
	}
	s := u.Stmts.Get(uint32(id))
	if s == nil {
		return nil
	}
	switch s.Kind {
	case ast.StmtBlock:
		for _, child := range s.Body {
			if err := walkStmtForCollisions(u, child, r); err != nil {
				return err
			}
		}
	case ast.StmtIf:
		if err := checkStatementExprCollision(u, s.Cond, s.Ctx, r); err != nil {
			return err
		}
		if err := walkStmtForCollisions(u, s.Then, r); err != nil {
			return err
		}
		if err := walkStmtForCollisions(u, s.Else, r); err != nil {
			return err
		}
	case ast.StmtLoop:
		if err := checkStatementExprCollision(u, s.Cond, s.Ctx, r); err != nil {
			return err
		}
		if err := walkStmtForCollisions(u, s.LoopBody, r); err != nil {
			return err
		}
	case ast.StmtReturn, ast.StmtExpr:
		if err := checkStatementExprCollision(u, s.ReturnValue, s.Ctx, r); err != nil {
			return err
		}
	case ast.StmtVariableDeclaration:
		v := u.Variables.Get(uint32(s.Var))
		if v != nil {
			if err := checkStatementExprCollision(u, v.Initializer, s.Ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkStatementExprCollision builds the read-set and modified-set for a
// single statement's expression tree and reports a collision if they
// intersect.
func checkStatementExprCollision(u *ast.Unit, root ast.ExprID, ctx ast.Context, r diag.Reporter) error {
	if !root.IsValid() {
		return nil
	}
	modified := make(map[ast.VariableID]bool)
	read := make(map[ast.VariableID]bool)
	collectReadModify(u, root, modified, read)

	for v := range modified {
		if read[v] {
			return diag.Halt(r, diag.NewError(diag.TypePreIncDecCollision, ctx.Span,
				"a variable modified by increment/decrement in this statement is also read elsewhere in it"))
		}
	}
	return nil
}

func collectReadModify(u *ast.Unit, id ast.ExprID, modified, read map[ast.VariableID]bool) {
	if !id.IsValid() {
		return
	}
	e := u.Exprs.Get(uint32(id))
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprIncDec:
		if target := u.Exprs.Get(uint32(e.Operand)); target != nil && target.Kind == ast.ExprVariableRef {
			modified[ast.VariableID(target.Decl.ID)] = true
			return
		}
	case ast.ExprVariableRef:
		read[ast.VariableID(e.Decl.ID)] = true
		return
	case ast.ExprAssign:
		// The assignment target is written, not read; only descend into
		// it looking for nested modifications (e.g. a[i++] = x).
		if target := u.Exprs.Get(uint32(e.Operand)); target != nil && target.Kind != ast.ExprVariableRef {
			collectReadModify(u, e.Operand, modified, read)
		}
		collectReadModify(u, e.Operand2, modified, read)
		return
	}
	collectReadModify(u, e.Operand, modified, read)
	collectReadModify(u, e.Operand2, modified, read)
	collectReadModify(u, e.Operand3, modified, read)
	for _, sub := range e.Operands {
		collectReadModify(u, sub, modified, read)
	}
}
