package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(nodes []Node, name string) int {
	for i, n := range nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}

func TestTopoSortYieldsEveryNode(t *testing.T) {
	g := New("/repo")
	a, b, c := moduleNode("a", "a.py"), moduleNode("b", "b.py"), moduleNode("c", "c.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))
	g.AddNode(c) // isolated, no edges at all

	order := TopoSort(g, nil, Imports)
	assert.Len(t, order, 3)
}

func TestTopoSortRespectsNonCyclicOrder(t *testing.T) {
	g := New("/repo")
	x, y, z := moduleNode("x", "x.py"), moduleNode("y", "y.py"), moduleNode("z", "z.py")
	// z imports y, y imports x: on Imports edges z has no incoming edge, so
	// it comes first and every importer precedes what it imports.
	require.NoError(t, g.AddEdge(z, y, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))
	require.NoError(t, g.AddEdge(y, x, Edge{Relation: Imports}, &Edge{Relation: ImportedBy}))

	order := TopoSort(g, nil, Imports)
	require.Len(t, order, 3)
	assert.Less(t, indexOf(order, "z"), indexOf(order, "y"))
	assert.Less(t, indexOf(order, "y"), indexOf(order, "x"))
}

func TestTopoSortCollapsesCyclesDeterministically(t *testing.T) {
	g := New("/repo")
	a, b, c := moduleNode("a", "a.py"), moduleNode("b", "b.py"), moduleNode("c", "c.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(b, c, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(c, a, Edge{Relation: Imports}, nil))

	first := TopoSort(g, nil, Imports)
	second := TopoSort(g, nil, Imports)
	require.Len(t, first, 3)
	assert.Equal(t, first, second, "topo_sort must be deterministic across calls")
	// no node has indegree zero, so the smallest identity (a) is forced
	// through first; its edge then frees b, and b's edge frees c.
	assert.Equal(t, []string{"a", "b", "c"}, []string{first[0].Name, first[1].Name, first[2].Name})
}

// TestTopoSortBreaksSingleSCCLikeOriginal reproduces
// test_lexicographical_cyclic_topological_sort1 from the original's
// test_digraph.py verbatim (A->C, A->D, B->A, C->B, D->B is one
// strongly connected component): the original pins ["A","C","D","B"],
// not the lexicographic ["A","B","C","D"] a sort-each-SCC-alphabetically
// condensation would produce.
func TestTopoSortBreaksSingleSCCLikeOriginal(t *testing.T) {
	g := New("/repo")
	a, b, c, d := moduleNode("A", "A.py"), moduleNode("B", "B.py"), moduleNode("C", "C.py"), moduleNode("D", "D.py")
	require.NoError(t, g.AddEdge(a, c, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(a, d, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(b, a, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(c, b, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(d, b, Edge{Relation: Imports}, nil))

	order := TopoSort(g, nil, Imports)
	require.Len(t, order, 4)
	assert.Equal(t, []string{"A", "C", "D", "B"}, []string{order[0].Name, order[1].Name, order[2].Name, order[3].Name})
}

// TestTopoSortFourCycleStaysInEdgeOrder reproduces
// test_lexicographical_cyclic_topological_sort3 (A->B->C->D->A, a single
// 4-cycle): the original pins ["A","B","C","D"].
func TestTopoSortFourCycleStaysInEdgeOrder(t *testing.T) {
	g := New("/repo")
	a, b, c, d := moduleNode("A", "A.py"), moduleNode("B", "B.py"), moduleNode("C", "C.py"), moduleNode("D", "D.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(b, c, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(c, d, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(d, a, Edge{Relation: Imports}, nil))

	order := TopoSort(g, nil, Imports)
	require.Len(t, order, 4)
	assert.Equal(t, []string{"A", "B", "C", "D"}, []string{order[0].Name, order[1].Name, order[2].Name, order[3].Name})
}

// TestTopoSortSelfLoopEmitsOnce reproduces
// test_lexicographical_cyclic_topological_sort6 (a self-referencing
// node): a self-loop must not block emission or duplicate the node.
func TestTopoSortSelfLoopEmitsOnce(t *testing.T) {
	g := New("/repo")
	a := moduleNode("A", "A.py")
	require.NoError(t, g.AddEdge(a, a, Edge{Relation: Imports}, nil))

	order := TopoSort(g, nil, Imports)
	require.Len(t, order, 1)
	assert.Equal(t, "A", order[0].Name)
}

func TestTopoSortMixesCycleAndChain(t *testing.T) {
	g := New("/repo")
	a, b := moduleNode("a", "a.py"), moduleNode("b", "b.py")
	d := moduleNode("d", "d.py")
	require.NoError(t, g.AddEdge(a, b, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(b, a, Edge{Relation: Imports}, nil))
	require.NoError(t, g.AddEdge(d, a, Edge{Relation: Imports}, nil))

	order := TopoSort(g, nil, Imports)
	require.Len(t, order, 3)
	assert.Less(t, indexOf(order, "d"), indexOf(order, "a"))
	assert.Less(t, indexOf(order, "d"), indexOf(order, "b"))
}
