// Package sema implements C5: the sanity-check passes that run over a
// resolved compilation unit's module tree (spec.md §4.5). It never
// performs name or type resolution itself (that is C4's contract,
// package resolve) — it only validates that a tree already claiming to
// satisfy that contract is internally consistent.
package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
)

// Run drives the full sanity-check pipeline over the module trees rooted
// at roots: the pre-resolution structural check first, then, for every
// module reachable from roots, the five post-resolution passes in the
// order spec.md §4.5 lists them. Every check reports through diag.Halt,
// so Run stops at the first diagnostic whatever Reporter r is, and
// returns diag.Stop.
func Run(u *ast.Unit, roots []ast.ModuleID, limits Limits, r diag.Reporter) error {
	if err := RunPreResolutionCheck(u, roots, r); err != nil {
		return err
	}
	return checkModuleTree(u, roots, limits, make(map[ast.ModuleID]bool), r)
}

func checkModuleTree(u *ast.Unit, ids []ast.ModuleID, limits Limits, visited map[ast.ModuleID]bool, r diag.Reporter) error {
	for _, id := range ids {
		if visited[id] {
			continue
		}
		visited[id] = true
		mod := u.Modules.Get(uint32(id))
		if mod == nil {
			continue
		}
		if err := checkModule(u, id, mod, limits, r); err != nil {
			return err
		}
		if err := checkModuleTree(u, mod.SubModules, limits, visited, r); err != nil {
			return err
		}
	}
	return nil
}

// checkModule runs the five post-resolution passes over a single module
// in spec.md §4.5's order: event-function checker, duplicate-name
// checker, post-resolution semantic checks, graph invariants, then the
// pre/post inc-dec collision checker.
func checkModule(u *ast.Unit, id ast.ModuleID, mod *ast.Module, limits Limits, r diag.Reporter) error {
	if err := CheckEventFunctions(u, mod, r); err != nil {
		return err
	}
	if err := CheckDuplicateNames(u, mod, r); err != nil {
		return err
	}
	if err := CheckSemantics(u, mod, limits, r); err != nil {
		return err
	}
	if err := CheckGraphInvariants(u, id, mod, r); err != nil {
		return err
	}
	return CheckIncDecCollisions(u, mod, r)
}
