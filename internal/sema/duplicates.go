package sema

import (
	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/source"
)

// CheckDuplicateNames is post-resolution pass 2 (spec.md §4.5): names
// within a scope's respective categories must be unique. Functions are
// checked last, and by canonical signature rather than bare name, so two
// overloads that differ only in parameter shape are allowed.
func CheckDuplicateNames(u *ast.Unit, mod *ast.Module, r diag.Reporter) error {
	if err := checkUniqueNonFunction(mod.Variables, func(id ast.VariableID) source.StringID {
		v := u.Variables.Get(uint32(id))
		if v == nil {
			return source.NoStringID
		}
		return v.Name
	}, u, r); err != nil {
		return err
	}
	if err := checkUniqueNonFunction(mod.StructDecls, func(id ast.StructDeclID) source.StringID {
		d := u.StructDecls.Get(uint32(id))
		if d == nil {
			return source.NoStringID
		}
		return d.Name
	}, u, r); err != nil {
		return err
	}
	if err := checkUniqueNonFunction(mod.Usings, func(id ast.UsingDeclID) source.StringID {
		d := u.Usings.Get(uint32(id))
		if d == nil {
			return source.NoStringID
		}
		return d.Name
	}, u, r); err != nil {
		return err
	}
	if err := checkUniqueNonFunction(mod.Endpoints, func(id ast.EndpointID) source.StringID {
		d := u.Endpoints.Get(uint32(id))
		if d == nil {
			return source.NoStringID
		}
		return d.Name
	}, u, r); err != nil {
		return err
	}
	if err := checkUniqueNonFunction(mod.SubModules, func(id ast.ModuleID) source.StringID {
		d := u.Modules.Get(uint32(id))
		if d == nil {
			return source.NoStringID
		}
		return d.Name
	}, u, r); err != nil {
		return err
	}

	return checkUniqueFunctionSignatures(u, mod, r)
}

// checkUniqueNonFunction reports a duplicate-name error the first time
// two ids in the same category share a name.
func checkUniqueNonFunction[ID comparable](ids []ID, nameOf func(ID) source.StringID, u *ast.Unit, r diag.Reporter) error {
	seen := make(map[source.StringID]bool, len(ids))
	for _, id := range ids {
		name := nameOf(id)
		if name == source.NoStringID {
			continue
		}
		if seen[name] {
			return diag.Halt(r, diag.NewError(diag.NameDuplicateInScope, source.Span{},
				"duplicate name in scope: "+u.Strings.MustLookup(name)))
		}
		seen[name] = true
	}
	return nil
}

func checkUniqueFunctionSignatures(u *ast.Unit, mod *ast.Module, r diag.Reporter) error {
	seen := make(map[string]bool, len(mod.Functions))
	for _, id := range mod.Functions {
		fn := u.Functions.Get(uint32(id))
		if fn == nil {
			continue
		}
		sig := fn.CanonicalSignature()
		if seen[sig] {
			return diag.Halt(r, diag.NewError(diag.NameDuplicateFunctionSignature, fn.Ctx.Span,
				"two functions in this scope share the same name and parameter shape: "+u.Strings.MustLookup(fn.Name)))
		}
		seen[sig] = true
	}
	return nil
}
