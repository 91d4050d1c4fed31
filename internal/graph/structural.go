package graph

import (
	"swiftgraph/internal/model"
	"swiftgraph/internal/typeexpr"
)

// structural is the per-declaration inference pass, run at insert time:
// inheritance, conformance, and member-shape relationships derived from
// the declaration alone.
func (s *Store) structural(d model.Declaration) {
	// Extensions never introduce supertype information.
	if d.Kind != model.KindExtension {
		kind := model.RelInherits
		if d.Kind == model.KindProtocol {
			kind = model.RelProtocolInherits
		}
		for _, inh := range d.InheritedTypes {
			s.addTypeEdge(d.Name, inh, kind, "")
		}
	}

	for _, conf := range d.ConformedProtocols {
		s.addTypeEdge(d.Name, conf, model.RelConforms, "")
	}

	for _, p := range d.Properties {
		kind := model.RelAggregates
		if p.Mutable {
			kind = model.RelComposes
		}
		s.addTypeEdge(d.Name, p.Type, kind, p.Name)
	}

	for _, m := range d.Methods {
		s.methodEdges(d.Name, m)
	}
	for _, m := range d.Initializers {
		s.methodEdges(d.Name, m)
	}
	for _, sub := range d.Subscripts {
		s.methodEdges(d.Name, model.Method{
			Name:       "subscript",
			Parameters: sub.Parameters,
			ReturnType: sub.ReturnType,
		})
	}
}

func (s *Store) methodEdges(owner string, m model.Method) {
	for _, p := range m.Parameters {
		s.addTypeEdge(owner, p.Type, model.RelDependsOn, m.Name+" parameter")
	}
	if m.ReturnType != "" {
		s.addTypeEdge(owner, m.ReturnType, model.RelDependsOn, m.Name+" return")
	}
}

// addTypeEdge decomposes a raw type expression and records an edge to its
// base name unless the base is a primitive/builtin.
func (s *Store) addTypeEdge(owner, rawType string, kind model.RelKind, details string) {
	base := typeexpr.Decompose(rawType).Base
	if typeexpr.IsPrimitive(base) {
		return
	}
	s.AddRelationship(owner, base, kind, details)
}
