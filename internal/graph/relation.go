package graph

// EdgeRelation is a typed, directional relation between a pair of nodes
// (spec §3.1). Each relation is a (category, number, direction) triple:
// category and number together identify a forward/inverse pair, and the
// direction bit distinguishes the two members of that pair. Two relations
// are inverse partners iff they share category and number and differ only
// in direction.
type EdgeRelation struct {
	category int
	number   int
	dir      uint8 // 0 = forward, 1 = inverse
}

// The nine forward/inverse pairs of spec §3.1, in the category order the
// spec lists them. Category numbers follow the original dependency-graph
// generator this data model is modelled on (syntax relations share
// category 1: ParentOf/ChildOf at number 0, Constructs/ConstructedBy at
// number 1), so a category can carry more than one relation pair.
var (
	ParentOf  = EdgeRelation{category: 1, number: 0, dir: 0}
	ChildOf   = EdgeRelation{category: 1, number: 0, dir: 1}

	Constructs     = EdgeRelation{category: 1, number: 1, dir: 0}
	ConstructedBy  = EdgeRelation{category: 1, number: 1, dir: 1}

	Imports    = EdgeRelation{category: 2, number: 0, dir: 0}
	ImportedBy = EdgeRelation{category: 2, number: 0, dir: 1}

	BaseClassOf    = EdgeRelation{category: 3, number: 0, dir: 0}
	DerivedClassOf = EdgeRelation{category: 3, number: 0, dir: 1}

	Overrides    = EdgeRelation{category: 4, number: 0, dir: 0}
	OverriddenBy = EdgeRelation{category: 4, number: 0, dir: 1}

	Calls    = EdgeRelation{category: 5, number: 0, dir: 0}
	CalledBy = EdgeRelation{category: 5, number: 0, dir: 1}

	Instantiates    = EdgeRelation{category: 6, number: 0, dir: 0}
	InstantiatedBy  = EdgeRelation{category: 6, number: 0, dir: 1}

	Uses   = EdgeRelation{category: 7, number: 0, dir: 0}
	UsedBy = EdgeRelation{category: 7, number: 0, dir: 1}

	Defines   = EdgeRelation{category: 8, number: 0, dir: 0}
	DefinedBy = EdgeRelation{category: 8, number: 0, dir: 1}
)

// relationNames is the closed symbolic-name table used by String and the
// JSON codec; both forward and inverse names are valid on input (spec §6).
var relationNames = map[EdgeRelation]string{
	ParentOf: "ParentOf", ChildOf: "ChildOf",
	Constructs: "Constructs", ConstructedBy: "ConstructedBy",
	Imports: "Imports", ImportedBy: "ImportedBy",
	BaseClassOf: "BaseClassOf", DerivedClassOf: "DerivedClassOf",
	Overrides: "Overrides", OverriddenBy: "OverriddenBy",
	Calls: "Calls", CalledBy: "CalledBy",
	Instantiates: "Instantiates", InstantiatedBy: "InstantiatedBy",
	Uses: "Uses", UsedBy: "UsedBy",
	Defines: "Defines", DefinedBy: "DefinedBy",
}

var relationsByName = func() map[string]EdgeRelation {
	m := make(map[string]EdgeRelation, len(relationNames))
	for rel, name := range relationNames {
		m[name] = rel
	}
	return m
}()

// String returns the relation's symbolic name, e.g. "ParentOf".
func (r EdgeRelation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return "UnknownRelation"
}

// ParseRelation looks up a relation by its symbolic name (forward or
// inverse), as required for JSON decoding (spec §6).
func ParseRelation(name string) (EdgeRelation, bool) {
	rel, ok := relationsByName[name]
	return rel, ok
}

// Inverse flips the direction bit, returning the relation's inverse
// partner. get_inverse_kind in spec §3.1.
func (r EdgeRelation) Inverse() EdgeRelation {
	r.dir ^= 1
	return r
}

// IsInverse reports whether other is r's inverse partner: same category
// and number, opposite direction.
func (r EdgeRelation) IsInverse(other EdgeRelation) bool {
	return r.category == other.category && r.number == other.number && r.dir != other.dir
}
