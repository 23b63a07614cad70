package graph

import "container/heap"

// KeyFunc assigns a sort key to a node for tie-breaking; node identity is
// used when nil is passed to TopoSort.
type KeyFunc func(n Node) string

// TopoSort returns every node in the graph in a deterministic order (spec
// §4.E step 4). It is a lexicographically-ordered Kahn's algorithm — at
// each step the available node (indegree zero) with the smallest key is
// emitted next — except that when a cycle blocks all further progress (no
// node has indegree zero, but unprocessed nodes remain), the
// lexicographically smallest remaining node is forced through next and its
// outgoing edges are discounted as if it were a legitimate root. This
// reproduces the cycle-breaking behavior of the original's
// lexicographical_cyclic_topological_sort, pinned by its own test suite
// (original test_digraph.py's 4-node SCC case emits A, C, D, B — not
// lexicographic A, B, C, D) and by spec §8.2.1's worked example.
func TopoSort(g *Graph, key KeyFunc, rels ...EdgeRelation) []Node {
	if key == nil {
		key = func(n Node) string { return n.ID() }
	}

	g.mu.RLock()
	allIDs := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		allIDs = append(allIDs, id)
	}
	adj := make(map[string][]string, len(g.out))
	if len(rels) == 0 {
		for from, entries := range g.out {
			for _, e := range entries {
				adj[from] = append(adj[from], e.to)
			}
		}
	} else {
		set := make(map[EdgeRelation]struct{}, len(rels))
		for _, r := range rels {
			set[r] = struct{}{}
		}
		for from, entries := range g.out {
			for _, e := range entries {
				if _, ok := set[e.edge.Relation]; ok {
					adj[from] = append(adj[from], e.to)
				}
			}
		}
	}
	nodesByID := make(map[string]Node, len(g.nodes))
	for id, n := range g.nodes {
		nodesByID[id] = *n
	}
	g.mu.RUnlock()

	indegree := make(map[string]int, len(allIDs))
	remaining := make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		indegree[id] = 0
		remaining[id] = struct{}{}
	}
	for from, tos := range adj {
		if _, ok := remaining[from]; !ok {
			continue
		}
		for _, to := range tos {
			if _, ok := remaining[to]; ok {
				indegree[to]++
			}
		}
	}

	h := &topoHeap{}
	pushed := make(map[string]struct{}, len(allIDs))
	pushReady := func(id string) {
		if _, already := pushed[id]; already {
			return
		}
		pushed[id] = struct{}{}
		heap.Push(h, topoItem{key: key(nodesByID[id]), id: id})
	}
	for _, id := range allIDs {
		if indegree[id] == 0 {
			pushReady(id)
		}
	}

	order := make([]Node, 0, len(allIDs))
	for len(remaining) > 0 {
		if h.Len() == 0 {
			pushReady(smallestRemaining(remaining, nodesByID, key))
		}
		item := heap.Pop(h).(topoItem)
		if _, ok := remaining[item.id]; !ok {
			continue
		}
		delete(remaining, item.id)
		order = append(order, nodesByID[item.id])
		for _, to := range adj[item.id] {
			if _, ok := remaining[to]; !ok {
				continue
			}
			indegree[to]--
			if indegree[to] == 0 {
				pushReady(to)
			}
		}
	}

	return order
}

// smallestRemaining picks the lexicographically smallest (key, id) pair
// among the still-unprocessed nodes, used to force progress through a cycle.
func smallestRemaining(remaining map[string]struct{}, nodesByID map[string]Node, key KeyFunc) string {
	var bestID, bestKey string
	first := true
	for id := range remaining {
		k := key(nodesByID[id])
		if first || k < bestKey || (k == bestKey && id < bestID) {
			bestID, bestKey, first = id, k, false
		}
	}
	return bestID
}

// topoItem is one candidate in the ready-node heap, ordered by key and then
// by node ID so ties between equal keys stay deterministic.
type topoItem struct {
	key string
	id  string
}

type topoHeap []topoItem

func (h topoHeap) Len() int { return len(h) }
func (h topoHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].id < h[j].id
}
func (h topoHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *topoHeap) Push(x any) {
	*h = append(*h, x.(topoItem))
}

func (h *topoHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
