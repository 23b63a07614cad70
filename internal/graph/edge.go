package graph

import "github.com/agentic-research/rssg/internal/location"

// Edge is an instance of a relation between two nodes, optionally anchored
// to the source span that materialised it — the import statement, the
// call site, etc (spec §3.1).
type Edge struct {
	Relation EdgeRelation
	Anchor   *location.Location
}

// ID returns the edge's identity string, "<relation>[@<location>]".
func (e Edge) ID() string {
	if e.Anchor == nil {
		return e.Relation.String()
	}
	return e.Relation.String() + "@" + e.Anchor.String()
}

func (e Edge) String() string { return e.ID() }

// anchorKey returns the anchor's string form, or "" when unanchored — used
// to sort edge views by anchor location with lexicographic tie-breaking
// (spec §4.E).
func (e Edge) anchorKey() string {
	if e.Anchor == nil {
		return ""
	}
	return e.Anchor.String()
}

// Inverse returns the edge with its relation flipped to its inverse
// partner, keeping the same anchor (spec's get_inverse_edge).
func (e Edge) Inverse() Edge {
	return Edge{Relation: e.Relation.Inverse(), Anchor: e.Anchor}
}
