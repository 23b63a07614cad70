package graph

import (
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// adjEntry is one outgoing edge from a node, kept in the Graph's adjacency
// lists.
type adjEntry struct {
	to   string // target node ID
	edge Edge
}

// Graph is the directed multigraph store (spec §3.2, §4.D). Mutation is
// guarded by a mutex; every mutation bumps epoch so cached read views can
// self-invalidate (spec §3.3 invariant 4, §4.E "query caching").
type Graph struct {
	mu sync.RWMutex

	RepoPath  string
	languages map[string]struct{}

	nodes map[string]*Node     // node ID -> node
	out   map[string][]adjEntry // node ID -> outgoing edges

	epoch uint64

	// Roaring-bitmap index from file path to the set of node internal IDs
	// declared in that file, mirroring the teacher's fileToNodes index in
	// MemoryStore — O(k) lookup of "every node in file F" instead of an
	// O(|nodes|) scan, which the Context Retriever leans on heavily.
	nodeIntID   map[string]uint32
	intToNodeID []string
	fileToNodes map[string]*roaring.Bitmap
	nextIntID   uint32

	cache sync.Map // cacheKey -> cachedValue
}

type cachedValue struct {
	epoch uint64
	value any
}

// New creates an empty graph rooted at repoPath.
func New(repoPath string) *Graph {
	return &Graph{
		RepoPath:    repoPath,
		languages:   make(map[string]struct{}),
		nodes:       make(map[string]*Node),
		out:         make(map[string][]adjEntry),
		nodeIntID:   make(map[string]uint32),
		fileToNodes: make(map[string]*roaring.Bitmap),
	}
}

// Languages returns the sorted set of language names present in the graph.
func (g *Graph) Languages() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.languages))
	for l := range g.languages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// AddLanguage records that lang is present in the repository.
func (g *Graph) AddLanguage(lang string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.languages[lang] = struct{}{}
	g.bumpEpoch()
}

// bumpEpoch must be called with mu held. Every mutation bumps it (spec
// §3.3 invariant 4): cached views keyed on a stale epoch are simply never
// looked up again.
func (g *Graph) bumpEpoch() {
	g.epoch++
}

// AddNode inserts n, or does nothing if a node with the same identity is
// already present (spec §3.3 invariant 2: idempotent).
func (g *Graph) AddNode(n Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(n)
	g.bumpEpoch()
}

func (g *Graph) addNodeLocked(n Node) *Node {
	id := n.ID()
	if existing, ok := g.nodes[id]; ok {
		return existing
	}
	stored := n
	g.nodes[id] = &stored
	g.indexNodeLocked(id, n.Loc.FilePath)
	return g.nodes[id]
}

func (g *Graph) indexNodeLocked(id, filePath string) {
	if filePath == "" {
		return
	}
	intID, ok := g.nodeIntID[id]
	if !ok {
		intID = g.nextIntID
		g.nextIntID++
		g.nodeIntID[id] = intID
		for uint32(len(g.intToNodeID)) <= intID {
			g.intToNodeID = append(g.intToNodeID, "")
		}
		g.intToNodeID[intID] = id
	}
	bm, ok := g.fileToNodes[filePath]
	if !ok {
		bm = roaring.New()
		g.fileToNodes[filePath] = bm
	}
	bm.Add(intID)
}

// AddEdge inserts u -> v carrying fwd. If rev is non-nil, v -> u carrying
// rev is also inserted (spec §4.D). Both endpoints are auto-added. When
// rev is given it must actually be fwd's inverse partner — a caller
// passing a mismatched pair trips InvariantViolation (spec §3.3 invariant 5).
func (g *Graph) AddEdge(u, v Node, fwd Edge, rev *Edge) error {
	if rev != nil && !fwd.Relation.IsInverse(rev.Relation) {
		return invariantViolation(u, v, fwd, rev)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	uStored := g.addNodeLocked(u)
	vStored := g.addNodeLocked(v)
	g.addDirectedLocked(uStored.ID(), vStored.ID(), fwd)
	if rev != nil {
		g.addDirectedLocked(vStored.ID(), uStored.ID(), *rev)
	}
	g.bumpEpoch()
	return nil
}

func (g *Graph) addDirectedLocked(fromID, toID string, e Edge) {
	g.out[fromID] = append(g.out[fromID], adjEntry{to: toID, edge: e})
}

// RelEdge bundles one edge insertion for AddEdges' batch form.
type RelEdge struct {
	U, V Node
	Fwd  Edge
	Rev  *Edge
}

// AddEdges is the batch form of AddEdge.
func (g *Graph) AddEdges(edges []RelEdge) error {
	for _, re := range edges {
		if err := g.AddEdge(re.U, re.V, re.Fwd, re.Rev); err != nil {
			return err
		}
	}
	return nil
}

// GetNode returns the stored node with identity id, or false if absent.
func (g *Graph) GetNode(id string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// NodeCount returns the number of distinct nodes in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Nodes returns every node currently in the graph, in no particular order.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	return out
}

// EdgeTriple is one (u, v, edge) result row.
type EdgeTriple struct {
	U, V Node
	Edge Edge
}

// EdgeFilter decides whether a (u, v, edge) triple belongs in a result set.
type EdgeFilter func(u, v Node, e Edge) bool

// Edges returns every edge in the graph, optionally narrowed by filter.
// The filterless form is epoch-cached; a filter predicate can't be used as
// a stable cache key, so that form always recomputes (spec §4.D).
func (g *Graph) Edges(filter EdgeFilter) []EdgeTriple {
	if filter == nil {
		if cached, ok := g.cached("edges:all"); ok {
			return cloneTriples(cached.([]EdgeTriple))
		}
		all := g.allEdgesLocked()
		g.store("edges:all", all)
		return cloneTriples(all)
	}
	all := g.allEdgesLocked()
	out := all[:0:0]
	for _, t := range all {
		if filter(t.U, t.V, t.Edge) {
			out = append(out, t)
		}
	}
	return out
}

func (g *Graph) allEdgesLocked() []EdgeTriple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []EdgeTriple
	for fromID, entries := range g.out {
		u := g.nodes[fromID]
		for _, e := range entries {
			v := g.nodes[e.to]
			if u == nil || v == nil {
				continue
			}
			out = append(out, EdgeTriple{U: *u, V: *v, Edge: e.edge})
		}
	}
	return out
}

func cloneTriples(in []EdgeTriple) []EdgeTriple {
	out := make([]EdgeTriple, len(in))
	copy(out, in)
	return out
}

// EdgesOfRelation returns every edge whose relation is one of rels, sorted
// by anchor location string with lexicographic tie-breaking (spec §4.D).
func (g *Graph) EdgesOfRelation(rels ...EdgeRelation) []EdgeTriple {
	key := "edges_of_relation:" + relationSetKey(rels)
	if cached, ok := g.cached(key); ok {
		return cloneTriples(cached.([]EdgeTriple))
	}
	set := make(map[EdgeRelation]struct{}, len(rels))
	for _, r := range rels {
		set[r] = struct{}{}
	}
	all := g.Edges(func(u, v Node, e Edge) bool {
		_, ok := set[e.Relation]
		return ok
	})
	sort.Slice(all, func(i, j int) bool {
		ki, kj := all[i].Edge.anchorKey(), all[j].Edge.anchorKey()
		if ki != kj {
			return ki < kj
		}
		return all[i].Edge.String() < all[j].Edge.String()
	})
	g.store(key, all)
	return cloneTriples(all)
}

// NodesRelatedTo returns the outgoing neighbours of n reachable via any of
// rels, or (nil, false) when n isn't in the graph (spec §4.D).
func (g *Graph) NodesRelatedTo(n Node, rels ...EdgeRelation) ([]Node, bool) {
	g.mu.RLock()
	_, present := g.nodes[n.ID()]
	entries := append([]adjEntry(nil), g.out[n.ID()]...)
	g.mu.RUnlock()
	if !present {
		return nil, false
	}
	set := make(map[EdgeRelation]struct{}, len(rels))
	for _, r := range rels {
		set[r] = struct{}{}
	}
	var out []Node
	for _, e := range entries {
		if _, ok := set[e.edge.Relation]; !ok {
			continue
		}
		if v, ok := g.GetNode(e.to); ok {
			out = append(out, v)
		}
	}
	return out, true
}

// Subgraph returns a new graph containing exactly the edges whose relation
// is in rels and their endpoints, preserving RepoPath and the language set
// (spec §4.D).
func (g *Graph) Subgraph(rels ...EdgeRelation) *Graph {
	sub := New(g.RepoPath)
	for _, l := range g.Languages() {
		sub.AddLanguage(l)
	}
	for _, t := range g.EdgesOfRelation(rels...) {
		sub.addNodeLocked(t.U)
		sub.addNodeLocked(t.V)
		sub.addDirectedLocked(t.U.ID(), t.V.ID(), t.Edge)
	}
	sub.bumpEpoch()
	return sub
}

// Compose unions other's nodes and edges into g, accumulating the language
// set. Edges already present (same u, v, edge identity) are not duplicated
// (spec §4.D, §8.1).
func (g *Graph) Compose(other *Graph) {
	for _, l := range other.Languages() {
		g.AddLanguage(l)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[string]struct{})
	for fromID, entries := range g.out {
		for _, e := range entries {
			seen[fromID+"\x00"+e.to+"\x00"+e.edge.ID()] = struct{}{}
		}
	}

	for _, t := range other.Edges(nil) {
		u := g.addNodeLocked(t.U)
		v := g.addNodeLocked(t.V)
		key := u.ID() + "\x00" + v.ID() + "\x00" + t.Edge.ID()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		g.addDirectedLocked(u.ID(), v.ID(), t.Edge)
	}
	g.bumpEpoch()
}

// NodesInFile returns every node declared in filePath, using the
// roaring-bitmap file index (spec §4.I's cross_file_context leans on this).
func (g *Graph) NodesInFile(filePath string) []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	bm, ok := g.fileToNodes[filePath]
	if !ok {
		return nil
	}
	var out []Node
	it := bm.Iterator()
	for it.HasNext() {
		intID := it.Next()
		if int(intID) >= len(g.intToNodeID) {
			continue
		}
		id := g.intToNodeID[intID]
		if id == "" {
			continue
		}
		if n, ok := g.nodes[id]; ok {
			out = append(out, *n)
		}
	}
	return out
}

// EdgesIntoFile returns every edge whose target lies in filePath and whose
// source lies in a different file (spec §4.I's cross_file_context). Target
// membership is decided via the roaring-bitmap file index (NodesInFile)
// rather than by comparing the target's Loc.FilePath; every edge of the
// graph is still visited once to apply that test and to compare the
// source's Loc.FilePath.
func (g *Graph) EdgesIntoFile(filePath string) []EdgeTriple {
	inFile := make(map[string]struct{})
	for _, n := range g.NodesInFile(filePath) {
		inFile[n.ID()] = struct{}{}
	}
	if len(inFile) == 0 {
		return nil
	}
	return g.Edges(func(u, v Node, e Edge) bool {
		if u.Loc.FilePath == "" || u.Loc.FilePath == filePath {
			return false
		}
		_, ok := inFile[v.ID()]
		return ok
	})
}

func (g *Graph) cached(key string) (any, bool) {
	g.mu.RLock()
	epoch := g.epoch
	g.mu.RUnlock()
	v, ok := g.cache.Load(key)
	if !ok {
		return nil, false
	}
	cv := v.(cachedValue)
	if cv.epoch != epoch {
		return nil, false
	}
	return cv.value, true
}

func (g *Graph) store(key string, value any) {
	g.mu.RLock()
	epoch := g.epoch
	g.mu.RUnlock()
	g.cache.Store(key, cachedValue{epoch: epoch, value: value})
}

func relationSetKey(rels []EdgeRelation) string {
	names := make([]string, len(rels))
	for i, r := range rels {
		names[i] = r.String()
	}
	sort.Strings(names)
	var b []byte
	for _, n := range names {
		b = append(b, n...)
		b = append(b, ',')
	}
	return string(b)
}

func invariantViolation(u, v Node, fwd Edge, rev *Edge) error {
	return &invariantViolationError{u: u, v: v, fwd: fwd, rev: rev}
}

type invariantViolationError struct {
	u, v Node
	fwd  Edge
	rev  *Edge
}

func (e *invariantViolationError) Error() string {
	return "graph: invariant violation: " + e.fwd.String() + " between " + e.u.ID() + " and " + e.v.ID() +
		" was paired with a non-inverse edge " + e.rev.String()
}
