// Package ranking orders graph nodes by structural centrality so export
// output can be trimmed to the most connected types.
package ranking

import (
	"math"
	"sort"

	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
)

// Rank runs PageRank over the relationship edges and returns a score per
// node name. Every relationship counts as one edge from its source to its
// target, so heavily referenced types score highest.
func Rank(nodes []graph.Node, rels []model.Relationship) map[string]float64 {
	if len(nodes) == 0 {
		return nil
	}

	names := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		names[n.Decl.Name] = struct{}{}
	}

	if len(rels) == 0 {
		uniform := 1.0 / float64(len(nodes))
		ranks := make(map[string]float64, len(nodes))
		for name := range names {
			ranks[name] = uniform
		}
		return ranks
	}

	outEdges := make(map[string][]string)
	outDegree := make(map[string]int)
	for _, r := range rels {
		outEdges[r.From] = append(outEdges[r.From], r.To)
		outDegree[r.From]++
	}

	return pageRank(names, outEdges, outDegree, 0.85, 100, 1e-6)
}

// Top keeps the n highest-ranked nodes and the relationships connecting
// them. n <= 0 or n >= len(nodes) keeps everything. Ties break by name so
// trimming is deterministic.
func Top(nodes []graph.Node, rels []model.Relationship, ranks map[string]float64, n int) ([]graph.Node, []model.Relationship) {
	if n <= 0 || n >= len(nodes) {
		return nodes, rels
	}

	ordered := make([]graph.Node, len(nodes))
	copy(ordered, nodes)
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := ranks[ordered[i].Decl.Name], ranks[ordered[j].Decl.Name]
		if ri != rj {
			return ri > rj
		}
		return ordered[i].Decl.Name < ordered[j].Decl.Name
	})

	kept := ordered[:n]
	keep := make(map[string]struct{}, n)
	for _, node := range kept {
		keep[node.Decl.Name] = struct{}{}
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Decl.Name < kept[j].Decl.Name
	})

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
	return kept, outRels
}

func pageRank(
	nodes map[string]struct{},
	outEdges map[string][]string,
	outDegree map[string]int,
	alpha float64,
	maxIter int,
	tol float64,
) map[string]float64 {
	n := len(nodes)
	if n == 0 {
		return nil
	}

	rank := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for node := range nodes {
		rank[node] = initial
	}

	teleport := (1.0 - alpha) / float64(n)

	for iter := 0; iter < maxIter; iter++ {
		newRank := make(map[string]float64, n)

		// Dangling node contribution (nodes with no outgoing edges)
		var danglingSum float64
		for node := range nodes {
			if outDegree[node] == 0 {
				danglingSum += rank[node]
			}
		}
		danglingContrib := alpha * danglingSum / float64(n)

		for node := range nodes {
			newRank[node] = teleport + danglingContrib
		}

		for src, targets := range outEdges {
			deg := float64(outDegree[src])
			contrib := alpha * rank[src] / deg
			for _, tgt := range targets {
				if _, ok := nodes[tgt]; ok {
					newRank[tgt] += contrib
				}
			}
		}

		var diff float64
		for node := range nodes {
			diff += math.Abs(newRank[node] - rank[node])
		}

		rank = newRank

		if diff < tol {
			break
		}
	}

	return rank
}
