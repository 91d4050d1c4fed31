package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
)

func sampleStore() *graph.Store {
	s := graph.New(nil)
	s.AddDeclaration(model.Declaration{
		Name: "Cart", Kind: model.KindClass, Access: model.AccessPublic,
		InheritedTypes: []string{"NSObject"},
		Properties:     []model.Property{{Name: "items", Type: "[Item]", Mutable: true}},
		Location:       model.SourceLocation{File: "Cart.swift", Line: 3},
	})
	s.AddDeclaration(model.Declaration{
		Name: "Item", Kind: model.KindStruct, Access: model.AccessInternal,
	})
	s.AddDeclaration(model.Declaration{
		Name: "SecretHelper", Kind: model.KindStruct, Access: model.AccessPrivate,
	})
	s.Analyze()
	return s
}

func TestBuildPayload(t *testing.T) {
	t.Parallel()

	s := sampleStore()
	p := Build(s.Nodes(), s.Relationships(), map[string]float64{"Cart": 0.4})

	assert.Equal(t, len(s.Nodes()), p.Stats.Nodes)
	assert.Equal(t, len(s.Relationships()), p.Stats.Edges)
	assert.Equal(t, 1, p.Stats.Phantoms) // NSObject

	var cart *NodePayload
	for i := range p.Nodes {
		if p.Nodes[i].Name == "Cart" {
			cart = &p.Nodes[i]
		}
	}
	require.NotNil(t, cart)
	assert.Equal(t, "class", cart.Kind)
	assert.Equal(t, 0.4, cart.Rank)
	assert.Equal(t, "Cart.swift", cart.File)

	assert.Positive(t, p.Stats.ByKind["inherits"])
}

func TestFilterByAccess(t *testing.T) {
	t.Parallel()

	s := sampleStore()
	nodes, rels := Filter(s.Nodes(), s.Relationships(), model.AccessInternal)

	for _, n := range nodes {
		assert.NotEqual(t, "SecretHelper", n.Decl.Name)
	}
	for _, r := range rels {
		assert.NotEqual(t, "SecretHelper", r.From)
		assert.NotEqual(t, "SecretHelper", r.To)
	}

	// Phantoms survive regardless of the threshold.
	found := false
	for _, n := range nodes {
		if n.Decl.Name == "NSObject" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestJSONRoundtrips(t *testing.T) {
	t.Parallel()

	s := sampleStore()
	data, err := JSON(Build(s.Nodes(), s.Relationships(), nil))
	require.NoError(t, err)

	var decoded Payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Nodes, len(s.Nodes()))
}

func TestDOTOutput(t *testing.T) {
	t.Parallel()

	s := sampleStore()
	out := DOT(Build(s.Nodes(), s.Relationships(), nil))

	assert.True(t, strings.HasPrefix(out, "digraph swiftgraph {"))
	assert.Contains(t, out, `"Cart"`)
	assert.Contains(t, out, `"Cart" -> "NSObject"`)
	// Phantom styling.
	assert.Contains(t, out, "dashed")
}

func TestDOTCollapsesParallelEdges(t *testing.T) {
	t.Parallel()

	p := Payload{
		Nodes: []NodePayload{{Name: "A", Kind: "class"}, {Name: "B", Kind: "struct"}},
		Edges: []EdgePayload{
			{From: "A", To: "B", Kind: "composes", Details: "x"},
			{From: "A", To: "B", Kind: "element_type", Details: "x"},
		},
	}
	out := DOT(p)
	assert.Equal(t, 1, strings.Count(out, `"A" -> "B"`))
	assert.Contains(t, out, "composes")
	assert.Contains(t, out, "element_type")
}

func TestHTMLEmbedsPayload(t *testing.T) {
	t.Parallel()

	s := sampleStore()
	out, err := HTML(Build(s.Nodes(), s.Relationships(), nil))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, `"Cart"`)
	assert.Contains(t, html, "application/json")
}
