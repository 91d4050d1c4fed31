// Package query implements focused neighborhood traversal over a finished
// relationship graph. Expansion is priority-ordered and budgeted by
// per-kind traversal costs rather than plain BFS depth.
package query

import (
	"container/heap"
	"sort"

	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
)

// Mode selects which relationship kinds a traversal may follow.
type Mode string

const (
	ModeStandard    Mode = "standard"
	ModeInheritance Mode = "inheritance"
	ModeComposition Mode = "composition"
	ModeProtocol    Mode = "protocol"
)

// Options configure a Related query.
type Options struct {
	// MaxDepth is the traversal cost budget; a node is included only if
	// reachable along a path whose accumulated cost fits the budget.
	MaxDepth int

	Mode Mode

	// IncludeDescendants widens inheritance-mode traversal from
	// ancestors-only (outgoing edges) to both directions.
	IncludeDescendants bool
}

// Edge-kind priorities: higher expands first.
var priorities = map[model.RelKind]int{
	model.RelInherits:         100,
	model.RelProtocolInherits: 100,

	model.RelConforms:   90,
	model.RelImplements: 90,

	model.RelAssociatedType:         80,
	model.RelResolvesAssociatedType: 80,
	model.RelGenericParameter:       80,
	model.RelGenericConstraint:      80,

	model.RelComposes:   70,
	model.RelAggregates: 60,
	model.RelDependsOn:  50,

	model.RelInjectedVia: 40,

	model.RelWrappedBy:           30,
	model.RelElementType:         30,
	model.RelTypeConstraint:      30,
	model.RelRequiresMethod:      30,
	model.RelRequiresProperty:    30,
	model.RelFulfillsRequirement: 30,
}

// cheapKinds traverse at cost 1; every other kind costs 2.
var cheapKinds = map[model.RelKind]struct{}{
	model.RelInherits:          {},
	model.RelProtocolInherits:  {},
	model.RelConforms:          {},
	model.RelImplements:        {},
	model.RelGenericParameter:  {},
	model.RelGenericConstraint: {},
	model.RelAssociatedType:    {},
}

// Cost is the depth budget consumed by following one edge of kind k.
func Cost(k model.RelKind) int {
	if _, ok := cheapKinds[k]; ok {
		return 1
	}
	return 2
}

// inheritanceKinds is the edge filter for ModeInheritance.
var inheritanceKinds = map[model.RelKind]struct{}{
	model.RelInherits:         {},
	model.RelProtocolInherits: {},
	model.RelConforms:         {},
	model.RelImplements:       {},
}

// Related returns the neighborhood of root within the cost budget, root
// included, sorted by name. The root must exist; an unknown root yields
// nil. Relationships are navigated in both directions except in
// ancestors-only inheritance mode.
func Related(s *graph.Store, root string, opts Options) []graph.Node {
	if _, ok := s.Node(root); !ok {
		return nil
	}

	type hop struct {
		rel      model.Relationship
		outgoing bool
	}

	// Candidate edges per node, both directions.
	adjacency := make(map[string][]hop)
	for _, rel := range s.Relationships() {
		if !follows(rel.Kind, opts.Mode) {
			continue
		}
		adjacency[rel.From] = append(adjacency[rel.From], hop{rel, true})
		adjacency[rel.To] = append(adjacency[rel.To], hop{rel, false})
	}

	ancestorsOnly := opts.Mode == ModeInheritance && !opts.IncludeDescendants

	pq := &workQueue{}
	heap.Init(pq)
	heap.Push(pq, workItem{name: root, spent: 0, priority: 101})

	visited := make(map[string]struct{})
	var names []string

	// First-discovery-wins: a popped node is final even if a cheaper
	// path to it turns up later.
	for pq.Len() > 0 {
		item := heap.Pop(pq).(workItem)
		if _, seen := visited[item.name]; seen {
			continue
		}
		visited[item.name] = struct{}{}
		names = append(names, item.name)

		for _, h := range adjacency[item.name] {
			if ancestorsOnly && !h.outgoing {
				continue
			}
			next := h.rel.To
			if !h.outgoing {
				next = h.rel.From
			}
			if _, seen := visited[next]; seen {
				continue
			}
			spent := item.spent + Cost(h.rel.Kind)
			if spent > opts.MaxDepth {
				continue
			}
			heap.Push(pq, workItem{name: next, spent: spent, priority: priorities[h.rel.Kind]})
		}
	}

	out := make([]graph.Node, 0, len(names))
	for _, name := range names {
		if n, ok := s.Node(name); ok {
			out = append(out, n)
		}
	}
	sortNodes(out)
	return out
}

// follows applies the mode's kind-family filter.
func follows(k model.RelKind, mode Mode) bool {
	switch mode {
	case ModeInheritance:
		_, ok := inheritanceKinds[k]
		return ok
	case ModeComposition:
		return k.Family() == model.FamilyStructural
	case ModeProtocol:
		return k.Family() == model.FamilyProtocolImpl || k.Family() == model.FamilyProtocolInternal
	default:
		return true
	}
}

func sortNodes(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Decl.Name < nodes[j].Decl.Name
	})
}

// workItem is one pending expansion: a node name with the budget already
// spent reaching it and the priority of the edge that discovered it.
type workItem struct {
	name     string
	spent    int
	priority int
}

// workQueue is a max-heap on priority, tie-broken by lower spent cost and
// then name for determinism.
type workQueue []workItem

func (q workQueue) Len() int { return len(q) }

func (q workQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	if q[i].spent != q[j].spent {
		return q[i].spent < q[j].spent
	}
	return q[i].name < q[j].name
}

func (q workQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *workQueue) Push(x any) { *q = append(*q, x.(workItem)) }

func (q *workQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
