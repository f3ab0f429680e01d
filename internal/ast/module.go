package ast

import "soulcore/internal/source"

// ModuleKind is one of the three module categories spec.md §3 names.
type ModuleKind uint8

const (
	ModuleProcessor ModuleKind = iota
	ModuleGraph
	ModuleNamespace
)

func (k ModuleKind) String() string {
	switch k {
	case ModuleProcessor:
		return "processor"
	case ModuleGraph:
		return "graph"
	case ModuleNamespace:
		return "namespace"
	default:
		return "module"
	}
}

// Module is a Processor, Graph, or Namespace (spec.md §3). Its own Scope
// holds every declaration nested directly inside it; SubModules lists
// nested modules for the depth-first submodule walk spec.md §4.5's
// pre-resolution structural check performs.
type Module struct {
	Ctx  Context
	Kind ModuleKind
	Name source.StringID
	Own  ScopeID

	Functions   []FunctionID
	Variables   []VariableID
	StructDecls []StructDeclID
	Usings      []UsingDeclID
	Endpoints   []EndpointID
	Instances   []InstanceID
	Aliases     []AliasID
	Connections []ConnectionID
	SubModules  []ModuleID
}

// OutputEndpoints returns the ids of this module's output endpoints.
func (m *Module) OutputEndpoints(u *Unit) []EndpointID {
	var out []EndpointID
	for _, id := range m.Endpoints {
		if ep := u.Endpoints.Get(uint32(id)); ep != nil && ep.Direction == DirectionOutput {
			out = append(out, id)
		}
	}
	return out
}

// NonEventEndpoints returns the ids of this module's non-event endpoints
// (spec.md §3: "A Processor with any non-event endpoint must have a run
// function").
func (m *Module) NonEventEndpoints(u *Unit) []EndpointID {
	var out []EndpointID
	for _, id := range m.Endpoints {
		if ep := u.Endpoints.Get(uint32(id)); ep != nil && ep.Kind != EndpointEvent {
			out = append(out, id)
		}
	}
	return out
}

// RunFunctions returns the ids of functions marked as this module's run
// function.
func (m *Module) RunFunctions(u *Unit) []FunctionID {
	var out []FunctionID
	for _, id := range m.Functions {
		if fn := u.Functions.Get(uint32(id)); fn != nil && fn.IsRun {
			out = append(out, id)
		}
	}
	return out
}
