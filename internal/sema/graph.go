package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
)

// CheckGraphInvariants is post-resolution pass 4 (spec.md §4.5): no
// graph may contain itself transitively among its processor instances,
// and no directed cycle may exist among processor instances joined by
// zero-delay connections.
func CheckGraphInvariants(u *ast.Unit, selfID ast.ModuleID, mod *ast.Module, r diag.Reporter) error {
	if mod.Kind != ast.ModuleGraph {
		return nil
	}
	if err := checkGraphRecursion(u, mod, map[ast.ModuleID]bool{selfID: true}, r); err != nil {
		return err
	}
	return checkZeroDelayCycle(u, mod, r)
}

// checkGraphRecursion walks mod's instances, following each instance's
// targetProcessor when it is itself a Graph, and fails if that walk ever
// revisits a graph already on the current path.
func checkGraphRecursion(u *ast.Unit, mod *ast.Module, visiting map[ast.ModuleID]bool, r diag.Reporter) error {
	for _, instID := range mod.Instances {
		inst := u.Instances.Get(uint32(instID))
		if inst == nil || !inst.TargetProcessor.IsValid() {
			continue
		}
		target := u.Modules.Get(uint32(inst.TargetProcessor))
		if target == nil || target.Kind != ast.ModuleGraph {
			continue
		}
		if visiting[inst.TargetProcessor] {
			return diag.Halt(r, diag.NewError(diag.RecursionRecursiveGraph, inst.Ctx.Span,
				"a graph may not contain itself, directly or transitively"))
		}
		visiting[inst.TargetProcessor] = true
		if err := checkGraphRecursion(u, target, visiting, r); err != nil {
			return err
		}
		delete(visiting, inst.TargetProcessor)
	}
	return nil
}

// checkZeroDelayCycle builds the directed graph of processor instances
// joined by delay-free connections and reports the first cycle found as
// an ordered trace beginning and ending at the same instance (spec.md §8
// property 7).
func checkZeroDelayCycle(u *ast.Unit, mod *ast.Module, r diag.Reporter) error {
	edges := make(map[ast.InstanceID][]ast.InstanceID)
	for _, connID := range mod.Connections {
		c := u.Connections.Get(uint32(connID))
		if c == nil || c.HasDelay() {
			continue
		}
		src := instanceOfEndpointRef(u, c.SourceExpr)
		dst := instanceOfEndpointRef(u, c.DestExpr)
		if src.IsValid() && dst.IsValid() {
			edges[src] = append(edges[src], dst)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[ast.InstanceID]int)
	var path []ast.InstanceID

	var visit func(ast.InstanceID) []ast.InstanceID
	visit = func(n ast.InstanceID) []ast.InstanceID {
		color[n] = gray
		path = append(path, n)
		for _, next := range edges[n] {
			switch color[next] {
			case white:
				if trace := visit(next); trace != nil {
					return trace
				}
			case gray:
				// Found the cycle: trim path down to where next first appears.
				for i, p := range path {
					if p == next {
						trace := append([]ast.InstanceID{}, path[i:]...)
						return append(trace, next)
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[n] = black
		return nil
	}

	for _, instID := range mod.Instances {
		if color[instID] == white {
			if trace := visit(instID); trace != nil {
				return diag.Halt(r, diag.NewError(diag.RecursionGraphCycle, mod.Ctx.Span,
					formatCycleTrace(u, trace)))
			}
		}
	}
	return nil
}

func formatCycleTrace(u *ast.Unit, trace []ast.InstanceID) string {
	msg := "zero-delay connection cycle: "
	for i, id := range trace {
		if i > 0 {
			msg += " -> "
		}
		if inst := u.Instances.Get(uint32(id)); inst != nil {
			msg += u.Strings.MustLookup(inst.Name)
		}
	}
	return msg
}

// instanceOfEndpointRef extracts the processor instance an endpoint
// reference expression names, following the Decl union C4's resolver is
// expected to have populated.
func instanceOfEndpointRef(u *ast.Unit, id ast.ExprID) ast.InstanceID {
	e := u.Exprs.Get(uint32(id))
	if e == nil {
		return ast.NoInstanceID
	}
	if e.Decl.Kind == ast.DeclRefModule {
		return ast.InstanceID(e.Decl.ID)
	}
	return e.Instance
}
