// Package graph implements the type-relationship graph: the mutable node
// store with extension-merge semantics, phantom synthesis for
// externally-referenced names, and the relationship-inference passes.
//
// The store follows a single-writer, batch-then-query lifecycle: all
// AddDeclaration and AddRelationship calls must happen on one goroutine,
// Analyze must run only after every declaration has been committed, and
// reads return copied snapshots that never race with construction.
package graph

import (
	"log/slog"
	"sort"

	"swiftgraph/internal/classify"
	"swiftgraph/internal/model"
)

// Node is a read-only snapshot of one graph node: the (post-merge)
// declaration plus the outgoing edges recorded for it.
type Node struct {
	Decl  model.Declaration
	Edges []model.Relationship
}

type node struct {
	decl model.Declaration
	out  map[model.Relationship]struct{}
}

// Store is the mutable relationship graph. Not safe for concurrent
// mutation; see the package comment.
type Store struct {
	nodes map[string]*node
	edges map[model.Relationship]struct{}
	log   *slog.Logger
}

// New creates an empty store. A nil logger falls back to slog.Default().
func New(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		nodes: make(map[string]*node),
		edges: make(map[model.Relationship]struct{}),
		log:   log,
	}
}

// mergeable kinds may absorb (or be absorbed into) an extension.
func mergeable(k model.DeclKind) bool {
	return k == model.KindClass || k == model.KindStruct || k == model.KindActor
}

// AddDeclaration inserts a declaration, merging extensions into their
// primary type when one side is an extension and the other a
// class/struct/actor. Any other collision is resolved last-write-wins.
// The structural relationship pass runs for the incoming declaration
// immediately; global passes wait for Analyze.
func (s *Store) AddDeclaration(d model.Declaration) {
	existing, ok := s.nodes[d.Name]
	switch {
	case !ok:
		s.nodes[d.Name] = newNode(d)
	case existing.decl.Kind == model.KindExtension && mergeable(d.Kind):
		// The primary arrived after its extension.
		existing.decl = mergeExtension(d, existing.decl)
	case d.Kind == model.KindExtension && mergeable(existing.decl.Kind):
		existing.decl = mergeExtension(existing.decl, d)
	default:
		if !existing.decl.IsPhantom {
			s.log.Debug("duplicate declaration replaced",
				"name", d.Name,
				"old_kind", existing.decl.Kind,
				"new_kind", d.Kind)
		}
		existing.decl = d
	}
	s.structural(d)
}

func newNode(d model.Declaration) *node {
	return &node{decl: d, out: make(map[model.Relationship]struct{})}
}

// mergeExtension combines an extension into its primary declaration:
// conformances are unioned, member lists concatenated. The primary keeps
// its kind, inherited types, access, and source location; extensions
// never contribute supertype information.
func mergeExtension(primary, ext model.Declaration) model.Declaration {
	merged := primary

	seen := make(map[string]struct{}, len(primary.ConformedProtocols))
	merged.ConformedProtocols = append([]string(nil), primary.ConformedProtocols...)
	for _, c := range primary.ConformedProtocols {
		seen[c] = struct{}{}
	}
	for _, c := range ext.ConformedProtocols {
		if _, dup := seen[c]; !dup {
			seen[c] = struct{}{}
			merged.ConformedProtocols = append(merged.ConformedProtocols, c)
		}
	}

	merged.Properties = concat(primary.Properties, ext.Properties)
	merged.Methods = concat(primary.Methods, ext.Methods)
	merged.Initializers = concat(primary.Initializers, ext.Initializers)
	merged.Subscripts = concat(primary.Subscripts, ext.Subscripts)
	merged.TypeAliases = concat(primary.TypeAliases, ext.TypeAliases)
	merged.Nested = concat(primary.Nested, ext.Nested)
	merged.AssociatedTypes = concat(primary.AssociatedTypes, ext.AssociatedTypes)
	merged.Requirements = concat(primary.Requirements, ext.Requirements)
	merged.GenericParams = concat(primary.GenericParams, ext.GenericParams)
	merged.Attributes = concat(primary.Attributes, ext.Attributes)

	return merged
}

func concat[T any](a, b []T) []T {
	if len(b) == 0 {
		return a
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// AddRelationship records an edge. The target is synthesized as a phantom
// node if absent; a missing source is a data-integrity problem (edges are
// only ever added alongside their source node) and is logged and dropped
// rather than silently patched.
func (s *Store) AddRelationship(from, to string, kind model.RelKind, details string) {
	if from == "" || to == "" {
		return
	}
	src, ok := s.nodes[from]
	if !ok {
		s.log.Warn("relationship source was never declared",
			"from", from, "to", to, "kind", kind)
		return
	}
	s.ensureTarget(to)

	rel := model.Relationship{From: from, To: to, Kind: kind, Details: details}
	if _, dup := s.edges[rel]; dup {
		return
	}
	s.edges[rel] = struct{}{}
	src.out[rel] = struct{}{}
}

// ensureTarget guarantees a node named name exists, synthesizing a phantom
// when the declaration producer never supplied one. Phantom classes get
// their well-known ancestor chain reconstructed with inherits edges so
// inheritance queries stay connected past the first external reference.
func (s *Store) ensureTarget(name string) {
	if _, ok := s.nodes[name]; ok {
		return
	}
	kind, module := classify.External(name)
	s.log.Debug("synthesizing phantom node",
		"name", name, "kind", kind, "module", module)
	s.nodes[name] = newNode(model.Declaration{
		Name:      name,
		Kind:      kind,
		Access:    model.AccessOpen,
		Module:    module,
		Location:  model.ExternalLocation,
		IsPhantom: true,
	})

	if kind != model.KindClass {
		return
	}
	prev := name
	for _, ancestor := range classify.KnownBaseChain(name) {
		s.AddRelationship(prev, ancestor, model.RelInherits, "")
		prev = ancestor
	}
}

// Node returns a snapshot of the named node.
func (s *Store) Node(name string) (Node, bool) {
	n, ok := s.nodes[name]
	if !ok {
		return Node{}, false
	}
	return n.snapshot(), true
}

// Nodes returns snapshots of every node, sorted by name.
func (s *Store) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Decl.Name < out[j].Decl.Name })
	return out
}

// Relationships returns a copy of the global edge set in deterministic
// order.
func (s *Store) Relationships() []model.Relationship {
	out := make([]model.Relationship, 0, len(s.edges))
	for rel := range s.edges {
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (n *node) snapshot() Node {
	edges := make([]model.Relationship, 0, len(n.out))
	for rel := range n.out {
		edges = append(edges, rel)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })
	return Node{Decl: n.decl, Edges: edges}
}

// sortedNames returns all node names in order; passes iterate this for
// deterministic phantom creation and logging.
func (s *Store) sortedNames() []string {
	names := make([]string, 0, len(s.nodes))
	for name := range s.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
