package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
)

func hubStore() *graph.Store {
	s := graph.New(nil)
	s.AddDeclaration(model.Declaration{Name: "Core", Kind: model.KindClass})
	for _, name := range []string{"A", "B", "C"} {
		s.AddDeclaration(model.Declaration{
			Name: name, Kind: model.KindClass,
			InheritedTypes: []string{"Core"},
		})
	}
	s.AddDeclaration(model.Declaration{Name: "Island", Kind: model.KindStruct})
	return s
}

func TestRankFavorsReferencedNodes(t *testing.T) {
	t.Parallel()

	s := hubStore()
	ranks := Rank(s.Nodes(), s.Relationships())
	require.NotEmpty(t, ranks)

	// Core is inherited by three types and must outrank all of them.
	for _, name := range []string{"A", "B", "C", "Island"} {
		assert.Greater(t, ranks["Core"], ranks[name], name)
	}

	// Scores form a probability distribution.
	var sum float64
	for _, r := range ranks {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 0.01)
}

func TestRankNoEdgesIsUniform(t *testing.T) {
	t.Parallel()

	s := graph.New(nil)
	s.AddDeclaration(model.Declaration{Name: "X", Kind: model.KindStruct})
	s.AddDeclaration(model.Declaration{Name: "Y", Kind: model.KindStruct})

	ranks := Rank(s.Nodes(), s.Relationships())
	assert.Equal(t, ranks["X"], ranks["Y"])
	assert.InDelta(t, 0.5, ranks["X"], 1e-9)
}

func TestRankEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Rank(nil, nil))
}

func TestTopTrimsToHighestRanked(t *testing.T) {
	t.Parallel()

	s := hubStore()
	nodes, rels := s.Nodes(), s.Relationships()
	ranks := Rank(nodes, rels)

	kept, keptRels := Top(nodes, rels, ranks, 2)
	require.Len(t, kept, 2)

	found := false
	for _, n := range kept {
		if n.Decl.Name == "Core" {
			found = true
		}
		assert.NotEqual(t, "Island", n.Decl.Name)
	}
	assert.True(t, found, "highest-ranked node must survive trimming")

	// Every surviving edge connects surviving nodes.
	keep := map[string]bool{}
	for _, n := range kept {
		keep[n.Decl.Name] = true
	}
	for _, r := range keptRels {
		assert.True(t, keep[r.From], r.From)
		assert.True(t, keep[r.To], r.To)
	}
}

func TestTopNoopBounds(t *testing.T) {
	t.Parallel()

	s := hubStore()
	nodes, rels := s.Nodes(), s.Relationships()
	ranks := Rank(nodes, rels)

	kept, keptRels := Top(nodes, rels, ranks, 0)
	assert.Equal(t, nodes, kept)
	assert.Equal(t, rels, keptRels)

	kept, _ = Top(nodes, rels, ranks, 100)
	assert.Equal(t, nodes, kept)
}
