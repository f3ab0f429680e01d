package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/source"
)

// CheckEventFunctions is post-resolution pass 1 (spec.md §4.5): every
// function marked as an event handler must name a matching input event
// endpoint in its enclosing module, with a signature shaped by whether
// that endpoint is an array of endpoints.
func CheckEventFunctions(u *ast.Unit, mod *ast.Module, r diag.Reporter) error {
	for _, fnID := range mod.Functions {
		fn := u.Functions.Get(uint32(fnID))
		if fn == nil || !fn.IsEventHandler {
			continue
		}
		ep := findInputEventEndpoint(u, mod, fn.Name)
		if ep == nil {
			return diag.Halt(r, diag.NewError(diag.EventFunctionNoMatchingEndpoint, fn.Ctx.Span,
				"no input event endpoint matches this event function's name"))
		}

		isArray := ep.ArraySize > 1 || ep.ArraySize == ast.Unresolved
		wantArity := 1
		if isArray {
			wantArity = 2
		}
		if len(fn.Params) != wantArity {
			return diag.Halt(r, diag.NewError(diag.EventFunctionWrongArity, fn.Ctx.Span,
				"event function has the wrong number of parameters for its endpoint"))
		}

		payload := fn.Params[len(fn.Params)-1]
		if !ep.AcceptsType(payload.Type) {
			return diag.Halt(r, diag.NewError(diag.EventFunctionInvalidType, fn.Ctx.Span,
				"event function's payload parameter type is not one of the endpoint's declared types"))
		}
		if isArray {
			indexType := fn.Params[0].Type
			if !indexType.IsInteger() {
				return diag.Halt(r, diag.NewError(diag.EventFunctionBadIndexType, fn.Ctx.Span,
					"an event function on an array endpoint must take an integer index as its first parameter"))
			}
		}
	}
	return nil
}

func findInputEventEndpoint(u *ast.Unit, mod *ast.Module, name source.StringID) *ast.EndpointDecl {
	for _, epID := range mod.Endpoints {
		ep := u.Endpoints.Get(uint32(epID))
		if ep == nil || ep.Name != name {
			continue
		}
		if ep.Kind == ast.EndpointEvent && ep.Direction == ast.DirectionInput {
			return ep
		}
	}
	return nil
}
