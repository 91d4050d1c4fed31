// Package export renders graph snapshots into interchange formats: a
// Graphviz digraph, a JSON payload for downstream visualizers, and a
// self-contained HTML page. Backends consume snapshots only and never
// touch the store.
package export

import (
	"encoding/json"

	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
)

// NodePayload is one graph node in the interchange payload.
type NodePayload struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Module  string  `json:"module,omitempty"`
	Access  string  `json:"access,omitempty"`
	File    string  `json:"file,omitempty"`
	Line    int     `json:"line,omitempty"`
	Phantom bool    `json:"phantom,omitempty"`
	Rank    float64 `json:"rank,omitempty"`
}

// EdgePayload is one relationship in the interchange payload.
type EdgePayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

// Stats summarizes a payload.
type Stats struct {
	Nodes    int            `json:"nodes"`
	Edges    int            `json:"edges"`
	Phantoms int            `json:"phantoms"`
	ByKind   map[string]int `json:"edges_by_kind"`
}

// Payload is the complete interchange document.
type Payload struct {
	Nodes []NodePayload `json:"nodes"`
	Edges []EdgePayload `json:"edges"`
	Stats Stats         `json:"stats"`
}

// Build assembles a payload from snapshot data. ranks may be nil; when
// present each node carries its rank score.
func Build(nodes []graph.Node, rels []model.Relationship, ranks map[string]float64) Payload {
	p := Payload{
		Stats: Stats{
			Nodes:  len(nodes),
			Edges:  len(rels),
			ByKind: make(map[string]int),
		},
	}
	for _, n := range nodes {
		np := NodePayload{
			Name:    n.Decl.Name,
			Kind:    string(n.Decl.Kind),
			Module:  n.Decl.Module,
			Access:  string(n.Decl.Access),
			File:    n.Decl.Location.File,
			Line:    n.Decl.Location.Line,
			Phantom: n.Decl.IsPhantom,
		}
		if ranks != nil {
			np.Rank = ranks[n.Decl.Name]
		}
		if np.Phantom {
			p.Stats.Phantoms++
		}
		p.Nodes = append(p.Nodes, np)
	}
	for _, r := range rels {
		p.Edges = append(p.Edges, EdgePayload{
			From:    r.From,
			To:      r.To,
			Kind:    string(r.Kind),
			Details: r.Details,
		})
		p.Stats.ByKind[string(r.Kind)]++
	}
	return p
}

// Filter drops nodes below a minimum access level and the edges touching
// them. Phantom nodes always survive: their access is synthetic.
func Filter(nodes []graph.Node, rels []model.Relationship, min model.AccessLevel) ([]graph.Node, []model.Relationship) {
	keep := make(map[string]struct{}, len(nodes))
	var outNodes []graph.Node
	for _, n := range nodes {
		if !n.Decl.IsPhantom && !n.Decl.Access.AtLeast(min) {
			continue
		}
		keep[n.Decl.Name] = struct{}{}
		outNodes = append(outNodes, n)
	}
	var outRels []model.Relationship
	for _, r := range rels {
		if _, ok := keep[r.From]; !ok {
			continue
		}
		if _, ok := keep[r.To]; !ok {
			continue
		}
		outRels = append(outRels, r)
	}
	return outNodes, outRels
}

// JSON renders the payload as indented JSON.
func JSON(p Payload) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
