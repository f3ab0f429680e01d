package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
)

// RunPreResolutionCheck walks every module reachable from roots depth
// first and enforces spec.md §4.5's pre-resolution structural check. It
// assumes nothing about resolution state: it inspects only shape (output
// endpoints present, run/user-init signatures, at most one run
// function).
func RunPreResolutionCheck(u *ast.Unit, roots []ast.ModuleID, r diag.Reporter) error {
	for _, id := range roots {
		if err := checkModuleStructure(u, id, r); err != nil {
			return err
		}
	}
	return nil
}

func checkModuleStructure(u *ast.Unit, id ast.ModuleID, r diag.Reporter) error {
	mod := u.Modules.Get(uint32(id))
	if mod == nil {
		return nil
	}

	if mod.Kind == ast.ModuleProcessor || mod.Kind == ast.ModuleGraph {
		if len(mod.OutputEndpoints(u)) == 0 {
			return diag.Halt(r, diag.NewError(diag.StructMissingOutputEndpoint, mod.Ctx.Span,
				"a processor or graph must declare at least one output endpoint"))
		}

		if mod.Kind == ast.ModuleProcessor {
			runFns := mod.RunFunctions(u)
			if len(runFns) > 1 {
				return diag.Halt(r, diag.NewError(diag.StructMultipleRunFunctions, mod.Ctx.Span,
					"a processor may declare at most one run function"))
			}

			for _, fnID := range mod.Functions {
				fn := u.Functions.Get(uint32(fnID))
				if fn == nil || !(fn.IsRun || fn.IsUserInit) {
					continue
				}
				if !fn.IsVoidAndParameterless() {
					code := diag.StructRunFunctionBadSignature
					what := "run"
					if fn.IsUserInit {
						code = diag.StructUserInitBadSignature
						what = "user-init"
					}
					return diag.Halt(r, diag.NewError(code, fn.Ctx.Span,
						"the "+what+" function must be void and take no parameters"))
				}
			}

			if len(mod.NonEventEndpoints(u)) > 0 && len(runFns) != 1 {
				return diag.Halt(r, diag.NewError(diag.StructRunFunctionMissing, mod.Ctx.Span,
					"a processor with a non-event endpoint must have exactly one run function"))
			}
		}
	}

	for _, sub := range mod.SubModules {
		if err := checkModuleStructure(u, sub, r); err != nil {
			return err
		}
	}
	return nil
}
