// Package retriever implements the Context Retriever (spec.md §4.I): the
// line-scoped queries a downstream cross-file context tool issues against a
// finished graph.Graph to answer "what cross-file definitions/references
// does line L of file F depend on?" (spec.md §1).
package retriever

import (
	"sort"

	"github.com/agentic-research/rssg/internal/graph"
	"github.com/agentic-research/rssg/internal/location"
)

// Retriever answers line-scoped cross-file queries over a completed graph.
// The graph is published once the Builder finishes (spec.md §5's "Shared
// resources"); concurrent reads through a Retriever are safe because
// graph.Graph's read paths already are.
type Retriever struct {
	g *graph.Graph
}

// New wraps g for querying. g is assumed fully built; Retriever never
// mutates it.
func New(g *graph.Graph) *Retriever {
	return &Retriever{g: g}
}

// CrossFileContext returns every edge (u, v, e) such that u lies in the
// repository but in a different file than file, and v lies in file
// (spec.md §4.I). This is the deep cache key the two line-scoped queries
// below both filter further. Membership of v in file is resolved through
// graph.Graph's roaring-bitmap file index (EdgesIntoFile/NodesInFile)
// instead of comparing v's Loc.FilePath; each call still walks every edge
// of the graph once.
func (r *Retriever) CrossFileContext(file string) []graph.EdgeTriple {
	all := r.g.EdgesIntoFile(file)
	sortByAnchor(all)
	return all
}

// definitionRelations is the closed set spec.md §4.I names for
// cross_file_definition_by_line: the inverse relations under which the
// node local to file is the one doing the calling/instantiating/importing,
// and the cross-file node u is the definition file depends on.
var definitionRelations = map[graph.EdgeRelation]struct{}{
	graph.CalledBy:       {},
	graph.InstantiatedBy: {},
	graph.ImportedBy:     {},
}

// referenceRelations is definitionRelations' dual: the forward relations
// under which the cross-file node u is the one doing the
// calling/instantiating/importing, reaching in to reference a symbol
// defined in file.
var referenceRelations = map[graph.EdgeRelation]struct{}{
	graph.Calls:        {},
	graph.Instantiates: {},
	graph.Imports:      {},
}

// CrossFileDefinitionByLine returns the subset of CrossFileContext(file)
// that line holds a dependency on: for Calls/Instantiates-category edges
// (surfaced here via their CalledBy/InstantiatedBy inverses) the local
// node v's span must contain line; for ImportedBy edges the import's
// anchor must fall strictly before line (spec.md §4.I).
func (r *Retriever) CrossFileDefinitionByLine(file string, line int) []graph.EdgeTriple {
	base := r.CrossFileContext(file)
	out := base[:0:0]
	for _, t := range base {
		if _, ok := definitionRelations[t.Edge.Relation]; !ok {
			continue
		}
		switch t.Edge.Relation {
		case graph.ImportedBy:
			if anchorBefore(t.Edge.Anchor, line) {
				out = append(out, t)
			}
		default:
			if spanContainsLine(t.V.Loc, line) {
				out = append(out, t)
			}
		}
	}
	return out
}

// CrossFileReferenceByLine returns the subset of CrossFileContext(file)
// that references a symbol file defines near line: the dual of
// CrossFileDefinitionByLine, over the forward Calls/Instantiates/Imports
// relations, requiring the local node v's span contain line (spec.md
// §4.I). Module-level nodes, whose Location carries no span (§3.1's
// "absence means unknown or whole file"), always satisfy this — a module
// is "near" every line of its own file.
func (r *Retriever) CrossFileReferenceByLine(file string, line int) []graph.EdgeTriple {
	base := r.CrossFileContext(file)
	out := base[:0:0]
	for _, t := range base {
		if _, ok := referenceRelations[t.Edge.Relation]; !ok {
			continue
		}
		if spanContainsLine(t.V.Loc, line) {
			out = append(out, t)
		}
	}
	return out
}

// spanContainsLine reports whether loc's span covers line. A location
// with no span at all (module-granularity nodes carry only a file path)
// is treated as covering every line of its file, per spec.md §3.1.
func spanContainsLine(loc location.Location, line int) bool {
	if !loc.HasSpan() {
		return true
	}
	start, end := loc.StartLine, loc.EndLine
	if start == 0 {
		start = line
	}
	if end == 0 {
		end = line
	}
	return start <= line && line <= end
}

// anchorBefore reports whether anchor's start line is strictly before
// line. An anchor with no known line never satisfies this — an import
// whose location is unknown can't be placed relative to line.
func anchorBefore(anchor *location.Location, line int) bool {
	if anchor == nil || anchor.StartLine == 0 {
		return false
	}
	return anchor.StartLine < line
}

func sortByAnchor(edges []graph.EdgeTriple) {
	sort.Slice(edges, func(i, j int) bool {
		ki, kj := anchorKey(edges[i].Edge), anchorKey(edges[j].Edge)
		if ki != kj {
			return ki < kj
		}
		return edges[i].Edge.String() < edges[j].Edge.String()
	})
}

func anchorKey(e graph.Edge) string {
	if e.Anchor == nil {
		return ""
	}
	return e.Anchor.String()
}
