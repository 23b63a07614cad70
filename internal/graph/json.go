package graph

import (
	"encoding/json"
	"fmt"

	"github.com/agentic-research/rssg/internal/location"
	"github.com/agentic-research/rssg/internal/rssgerr"
)

// jsonLocation mirrors location.Location's on-disk shape. Zero fields are
// omitted so a bare module-level node (no span) serialises to just a path.
type jsonLocation struct {
	FilePath  string `json:"file_path"`
	StartLine int    `json:"start_line,omitempty"`
	StartCol  int    `json:"start_column,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndCol    int    `json:"end_column,omitempty"`
}

func toJSONLocation(l location.Location) jsonLocation {
	return jsonLocation{
		FilePath:  l.FilePath,
		StartLine: l.StartLine,
		StartCol:  l.StartCol,
		EndLine:   l.EndLine,
		EndCol:    l.EndCol,
	}
}

func (l jsonLocation) toLocation() location.Location {
	return location.Location{
		FilePath:  l.FilePath,
		StartLine: l.StartLine,
		StartCol:  l.StartCol,
		EndLine:   l.EndLine,
		EndCol:    l.EndCol,
	}
}

type jsonNode struct {
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	Location   jsonLocation `json:"location"`
	DocComment string       `json:"doc_comment,omitempty"`
}

func toJSONNode(n Node) jsonNode {
	return jsonNode{
		Type:       string(n.Kind),
		Name:       n.Name,
		Location:   toJSONLocation(n.Loc),
		DocComment: n.DocComment,
	}
}

func (jn jsonNode) toNode() Node {
	return Node{
		Kind:       Kind(jn.Type),
		Name:       jn.Name,
		Loc:        jn.Location.toLocation(),
		DocComment: jn.DocComment,
	}
}

type jsonEdge struct {
	Relation string        `json:"relation"`
	Location *jsonLocation `json:"location,omitempty"`
}

func toJSONEdge(e Edge) jsonEdge {
	je := jsonEdge{Relation: e.Relation.String()}
	if e.Anchor != nil {
		loc := toJSONLocation(*e.Anchor)
		je.Location = &loc
	}
	return je
}

func (je jsonEdge) toEdge() (Edge, error) {
	rel, ok := ParseRelation(je.Relation)
	if !ok {
		return Edge{}, fmt.Errorf("unknown relation %q", je.Relation)
	}
	e := Edge{Relation: rel}
	if je.Location != nil {
		loc := je.Location.toLocation()
		e.Anchor = &loc
	}
	return e, nil
}

// jsonEdgeTriple is the on-disk [u, v, edge] form (spec §6).
type jsonEdgeTriple [3]json.RawMessage

type jsonGraph struct {
	RepoPath  string           `json:"repo_path"`
	Languages []string         `json:"languages"`
	Edges     []jsonEdgeTriple `json:"edges"`
}

// ToJSON serialises the graph to the on-disk schema: repo_path, languages,
// and an edges array of [u, v, edge] triples (spec §6).
func (g *Graph) ToJSON() ([]byte, error) {
	jg := jsonGraph{
		RepoPath:  g.RepoPath,
		Languages: g.Languages(),
	}
	for _, t := range g.Edges(nil) {
		uBytes, err := json.Marshal(toJSONNode(t.U))
		if err != nil {
			return nil, rssgerr.Wrap(rssgerr.InvariantViolation, err)
		}
		vBytes, err := json.Marshal(toJSONNode(t.V))
		if err != nil {
			return nil, rssgerr.Wrap(rssgerr.InvariantViolation, err)
		}
		eBytes, err := json.Marshal(toJSONEdge(t.Edge))
		if err != nil {
			return nil, rssgerr.Wrap(rssgerr.InvariantViolation, err)
		}
		jg.Edges = append(jg.Edges, jsonEdgeTriple{uBytes, vBytes, eBytes})
	}
	out, err := json.MarshalIndent(jg, "", "  ")
	if err != nil {
		return nil, rssgerr.Wrap(rssgerr.InvariantViolation, err)
	}
	return out, nil
}

// FromJSON reconstructs a graph from data produced by ToJSON. Isolated
// nodes with no edges are lost in the round trip by design — the on-disk
// schema only records edges, so a node that participates in none is not a
// representable fact (spec §6 calls out edges as the sole persisted unit).
func FromJSON(data []byte) (*Graph, error) {
	var jg jsonGraph
	if err := json.Unmarshal(data, &jg); err != nil {
		return nil, rssgerr.Wrap(rssgerr.DecodeError, err)
	}
	g := New(jg.RepoPath)
	for _, lang := range jg.Languages {
		g.AddLanguage(lang)
	}
	for _, triple := range jg.Edges {
		var jn, jv jsonNode
		var je jsonEdge
		if err := json.Unmarshal(triple[0], &jn); err != nil {
			return nil, rssgerr.Wrap(rssgerr.DecodeError, err)
		}
		if err := json.Unmarshal(triple[1], &jv); err != nil {
			return nil, rssgerr.Wrap(rssgerr.DecodeError, err)
		}
		if err := json.Unmarshal(triple[2], &je); err != nil {
			return nil, rssgerr.Wrap(rssgerr.DecodeError, err)
		}
		edge, err := je.toEdge()
		if err != nil {
			return nil, rssgerr.Wrap(rssgerr.DecodeError, err)
		}
		u, v := jn.toNode(), jv.toNode()
		g.mu.Lock()
		us := g.addNodeLocked(u)
		vs := g.addNodeLocked(v)
		g.addDirectedLocked(us.ID(), vs.ID(), edge)
		g.bumpEpoch()
		g.mu.Unlock()
	}
	return g, nil
}
