package graph

import (
	"swiftgraph/internal/classify"
	"swiftgraph/internal/model"
	"swiftgraph/internal/typeexpr"
)

// Analyze runs the global inference passes. It must not be called until
// every declaration has been committed with AddDeclaration: the passes
// query "all nodes" and "all conformers", so running early produces a
// silently incomplete graph, not an error. Analyze is idempotent with
// respect to the deduplicated edge set.
func (s *Store) Analyze() {
	s.protocolImplementationPass()
	s.deepTypePass()
	s.protocolInternalPass()
}

func concrete(k model.DeclKind) bool {
	return k == model.KindClass || k == model.KindStruct || k == model.KindActor
}

// conformers maps each protocol-node name to the sorted concrete node
// names whose conformance set includes it.
func (s *Store) conformers() map[string][]string {
	out := make(map[string][]string)
	for _, name := range s.sortedNames() {
		n := s.nodes[name]
		if !concrete(n.decl.Kind) {
			continue
		}
		for _, conf := range n.decl.ConformedProtocols {
			base := typeexpr.Decompose(conf).Base
			out[base] = append(out[base], name)
		}
	}
	return out
}

// protocolImplementationPass links concrete types to the protocol nodes
// they conform to, and surfaces dependency-injection shapes: a member
// typed as a protocol yields injected_via edges from the owner to every
// implementation of that protocol.
func (s *Store) protocolImplementationPass() {
	byProtocol := s.conformers()

	for _, pname := range s.sortedNames() {
		p := s.nodes[pname]
		if p.decl.Kind != model.KindProtocol {
			continue
		}
		for _, impl := range byProtocol[pname] {
			s.AddRelationship(impl, pname, model.RelImplements, "")
		}
	}

	for _, owner := range s.sortedNames() {
		d := s.nodes[owner].decl
		for _, p := range d.Properties {
			s.injectionEdges(owner, p.Name, p.Type, byProtocol)
		}
		for _, init := range d.Initializers {
			for _, prm := range init.Parameters {
				s.injectionEdges(owner, prm.Name, prm.Type, byProtocol)
			}
		}
	}
}

func (s *Store) injectionEdges(owner, member, rawType string, byProtocol map[string][]string) {
	base := typeexpr.Decompose(rawType).Base
	if typeexpr.IsPrimitive(base) {
		return
	}
	isProtocol := false
	if n, ok := s.nodes[base]; ok && n.decl.Kind == model.KindProtocol {
		isProtocol = true
	} else if classify.LooksLikeProtocol(base) {
		isProtocol = true
	}
	if !isProtocol {
		return
	}
	for _, impl := range byProtocol[base] {
		if impl == owner {
			continue
		}
		s.AddRelationship(owner, impl, model.RelInjectedVia, member)
	}
}

// deepTypePass re-decomposes every member type already seen and records
// the relationships hiding inside it: generic arguments, collection
// element types, closure parameter and return types, property-wrapper
// attributes, and generic-parameter constraints.
func (s *Store) deepTypePass() {
	for _, owner := range s.sortedNames() {
		d := s.nodes[owner].decl

		for _, p := range d.Properties {
			for _, attr := range p.Attributes {
				if classify.IsPropertyWrapper(attr) {
					s.AddRelationship(owner, attr, model.RelWrappedBy, p.Name)
				}
			}
			s.deepTypeEdges(owner, p.Type, p.Name)
		}
		for _, m := range d.Methods {
			s.deepMethodEdges(owner, m)
		}
		for _, m := range d.Initializers {
			s.deepMethodEdges(owner, m)
		}
		for _, sub := range d.Subscripts {
			s.deepMethodEdges(owner, model.Method{
				Name:       "subscript",
				Parameters: sub.Parameters,
				ReturnType: sub.ReturnType,
			})
		}
		for _, gp := range d.GenericParams {
			if gp.Constraint == "" {
				continue
			}
			base := typeexpr.Decompose(gp.Constraint).Base
			if !typeexpr.IsPrimitive(base) {
				s.AddRelationship(owner, base, model.RelGenericConstraint, gp.Name)
			}
		}
	}
}

func (s *Store) deepMethodEdges(owner string, m model.Method) {
	for _, p := range m.Parameters {
		s.deepTypeEdges(owner, p.Type, m.Name)
	}
	if m.ReturnType != "" {
		s.deepTypeEdges(owner, m.ReturnType, m.Name)
	}
}

// collectionBases get element_type edges for their arguments instead of
// generic_parameter edges.
var collectionBases = map[string]struct{}{
	"Array": {}, "Dictionary": {}, "Set": {},
}

func (s *Store) deepTypeEdges(owner, raw, details string) {
	if params, ret, ok := typeexpr.Closure(raw); ok {
		for _, p := range params {
			s.addTypeEdge(owner, p, model.RelDependsOn, details)
		}
		if ret != "" {
			s.addTypeEdge(owner, ret, model.RelDependsOn, details)
		}
		return
	}

	d := typeexpr.Decompose(raw)
	if len(d.GenericArgs) > 0 {
		kind := model.RelGenericParameter
		if _, ok := collectionBases[d.Base]; ok {
			kind = model.RelElementType
		}
		for _, arg := range d.GenericArgs {
			s.addTypeEdge(owner, arg, kind, details)
		}
		return
	}
	if d.IsArray {
		s.addTypeEdge(owner, raw, model.RelElementType, details)
	}
}

// protocolInternalPass records each protocol's internal structure
// (associated types, their constraints and defaults, member requirements)
// and, for every conforming concrete type, which associated types it
// resolves and which requirements it fulfills.
func (s *Store) protocolInternalPass() {
	byProtocol := s.conformers()

	for _, pname := range s.sortedNames() {
		p := s.nodes[pname]
		if p.decl.Kind != model.KindProtocol {
			continue
		}

		assocNames := make(map[string]struct{}, len(p.decl.AssociatedTypes))
		for _, at := range p.decl.AssociatedTypes {
			assocNames[at.Name] = struct{}{}
			s.AddRelationship(pname, at.Name, model.RelAssociatedType, "")
			if at.Constraint != "" {
				s.addTypeEdge(at.Name, at.Constraint, model.RelTypeConstraint, "")
			}
			if at.Default != "" {
				s.addTypeEdge(at.Name, at.Default, model.RelResolvesAssociatedType, "")
			}
		}

		reqNames := make(map[string]struct{}, len(p.decl.Requirements))
		for _, req := range p.decl.Requirements {
			reqNames[req.Name] = struct{}{}
			kind := model.RelRequiresProperty
			if req.Kind == model.RequirementMethod {
				kind = model.RelRequiresMethod
			}
			for _, t := range req.Types {
				s.addTypeEdge(pname, t, kind, req.Name)
			}
		}

		for _, cname := range byProtocol[pname] {
			c := s.nodes[cname].decl
			for _, ta := range c.TypeAliases {
				if _, ok := assocNames[ta.Name]; !ok {
					continue
				}
				base := typeexpr.Decompose(ta.Target).Base
				s.AddRelationship(cname, base, model.RelResolvesAssociatedType, ta.Name)
			}
			for _, prop := range c.Properties {
				if _, ok := reqNames[prop.Name]; ok {
					s.AddRelationship(cname, pname, model.RelFulfillsRequirement, prop.Name)
				}
			}
			for _, m := range c.Methods {
				if _, ok := reqNames[m.Name]; ok {
					s.AddRelationship(cname, pname, model.RelFulfillsRequirement, m.Name)
				}
			}
		}
	}
}
