package graph

import (
	"testing"

	"github.com/agentic-research/rssg/internal/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moduleNode(name, file string) Node {
	return Node{Kind: KindModule, Name: name, Loc: location.Location{FilePath: file}}
}

func TestAddEdgeInsertsBothDirections(t *testing.T) {
	g := New("/repo")
	a := moduleNode("a", "a.py")
	b := moduleNode("b", "b.py")
	rev := ImportedBy.String()

	err := g.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: ImportedBy})
	require.NoError(t, err)

	related, ok := g.NodesRelatedTo(a, Imports)
	require.True(t, ok)
	require.Len(t, related, 1)
	assert.Equal(t, "b", related[0].Name)

	related, ok = g.NodesRelatedTo(b, ImportedBy)
	require.True(t, ok)
	require.Len(t, related, 1)
	assert.Equal(t, "a", related[0].Name)
	assert.Equal(t, rev, ImportedBy.String())
}

func TestAddEdgeRejectsMismatchedInverse(t *testing.T) {
	g := New("/repo")
	a := moduleNode("a", "a.py")
	b := moduleNode("b", "b.py")

	err := g.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: Calls})
	assert.Error(t, err)
}

func TestAddNodeIsIdempotent(t *testing.T) {
	g := New("/repo")
	n := moduleNode("a", "a.py")
	g.AddNode(n)
	g.AddNode(n)
	assert.Equal(t, 1, g.NodeCount())
}

func TestRelationInverseOfInverseIsSelf(t *testing.T) {
	for _, r := range []EdgeRelation{ParentOf, Constructs, Imports, BaseClassOf, Overrides, Calls, Instantiates, Uses, Defines} {
		assert.Equal(t, r, r.Inverse().Inverse())
		assert.True(t, r.IsInverse(r.Inverse()))
	}
}

func TestEdgesOfRelationSortedByAnchor(t *testing.T) {
	g := New("/repo")
	a := moduleNode("a", "a.py")
	b := moduleNode("b", "b.py")
	c := moduleNode("c", "c.py")

	late := location.Location{FilePath: "a.py", StartLine: 10}
	early := location.Location{FilePath: "a.py", StartLine: 1}

	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports, Anchor: &late}, nil))
	require.NoError(t, g.AddEdge(a, c, Edge{Relation: Imports, Anchor: &early}, nil))

	// The sort key is the anchor's string form, compared as a string:
	// "a.py:10:0-0:0" sorts before "a.py:1:0-0:0" because '0' < ':'.
	edges := g.EdgesOfRelation(Imports)
	require.Len(t, edges, 2)
	assert.Equal(t, "b", edges[0].V.Name)
	assert.Equal(t, "c", edges[1].V.Name)
}

func TestSubgraphKeepsOnlyChosenRelations(t *testing.T) {
	g := New("/repo")
	a, b, c := moduleNode("a", "a.py"), moduleNode("b", "b.py"), moduleNode("c", "c.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))
	require.NoError(t, g.AddEdge(a, c, Edge{Relation: Calls}, &Edge{Relation: CalledBy}))

	sub := g.Subgraph(Imports, ImportedBy)
	edges := sub.Edges(nil)
	for _, e := range edges {
		assert.Contains(t, []EdgeRelation{Imports, ImportedBy}, e.Edge.Relation)
	}
	assert.Equal(t, 2, sub.NodeCount())
}

func TestComposeUnionsNodesAndEdgesWithoutDuplication(t *testing.T) {
	g1 := New("/repo")
	g2 := New("/repo")
	a, b := moduleNode("a", "a.py"), moduleNode("b", "b.py")
	require.NoError(t, g1.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))
	require.NoError(t, g2.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))
	g2.AddLanguage("python")

	g1.Compose(g2)

	assert.Equal(t, 2, g1.NodeCount())
	assert.Len(t, g1.Edges(nil), 2)
	assert.Contains(t, g1.Languages(), "python")
}

func TestNodesInFileUsesFileIndex(t *testing.T) {
	g := New("/repo")
	a := moduleNode("a", "a.py")
	b := moduleNode("b", "a.py")
	c := moduleNode("c", "b.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: ParentOf}, &Edge{Relation: ChildOf}))
	g.AddNode(c)

	inFile := g.NodesInFile("a.py")
	assert.Len(t, inFile, 2)
}

func TestEpochCacheInvalidatesOnMutation(t *testing.T) {
	g := New("/repo")
	a, b := moduleNode("a", "a.py"), moduleNode("b", "b.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))

	first := g.Edges(nil)
	require.Len(t, first, 2)

	c := moduleNode("c", "c.py")
	require.NoError(t, g.AddEdge(a, c, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))

	second := g.Edges(nil)
	assert.Len(t, second, 4)
}
