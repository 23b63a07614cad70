// Package graph implements the repo-specific semantic graph's data model
// and algorithms (spec §3, §4.D, §4.E): a directed multigraph of
// declaration nodes connected by typed relation edges, with epoch-cached
// query views, a cyclic-safe topological sort, and JSON round-tripping.
package graph

import (
	"fmt"

	"github.com/agentic-research/rssg/internal/location"
)

// Kind is the closed set of declaration kinds a Node may carry (spec §3.1).
// A tagged enum, not dynamic dispatch, per the REDESIGN note in spec §9.
type Kind string

const (
	KindModule    Kind = "module"
	KindClass     Kind = "class"
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindVariable  Kind = "variable"
	KindStatement Kind = "statement"
)

// Node is a declaration: a module, class, function, method, variable, or
// statement. Methods carry their class qualifier in Name as "Class.method"
// (spec §3.1). Nodes are immutable once inserted into a Graph.
type Node struct {
	Kind Kind
	Name string
	Loc  location.Location

	// DocComment is an optional passthrough for a leading docstring or
	// comment captured alongside the declaration. Not part of node
	// identity; omitted from JSON when empty.
	DocComment string
}

// ID returns the node's identity string, "<name>:<kind>@<location>". Two
// nodes are equal iff their identities are equal (spec §3.1).
func (n Node) ID() string {
	return fmt.Sprintf("%s:%s@%s", n.Name, n.Kind, n.Loc.String())
}

func (n Node) String() string { return n.ID() }
