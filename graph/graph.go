package graph

import (
	"fmt"

	"github.com/zalmoxes-laran/s3dgraphy/datamodel"
	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

// Graph owns a set of nodes and edges plus the indices importers and
// queries need: by-id lookup for both, a by-name multi-index for nodes
// (several nodes may share a display name; only DocumentNode names are
// required unique, enforced separately), and outgoing/incoming
// adjacency lists for edges.
//
// Graph is not internally synchronized. Within one import pipeline
// access is single-threaded and cooperative; a caller sharing a Graph
// across goroutines must serialize writes externally. Concurrent reads
// of a quiescent graph (no writer active) are safe.
type Graph struct {
	ID          string
	Code        string
	Name        string
	Description string
	Embargo     string
	License     string
	Authors     []NodeID

	dm *datamodel.Datamodel

	nodeSeq []NodeID
	nodes   map[NodeID]*Node
	byName  map[string][]NodeID

	edgeSeq []EdgeID
	edges   map[EdgeID]*Edge
	out     map[NodeID][]EdgeID
	in      map[NodeID][]EdgeID

	// documentNames tracks DocumentNode names already in use, enforcing
	// I6 independently of the general byName multi-index.
	documentNames map[string]NodeID

	// linkOwners tracks, for every LinkNode id, the single owner edge
	// it is attached through, enforcing I7.
	linkOwners map[NodeID]EdgeID
}

// New creates an empty graph identified by id and validated against dm.
func New(id string, dm *datamodel.Datamodel) *Graph {
	return &Graph{
		ID:            id,
		dm:            dm,
		nodes:         make(map[NodeID]*Node),
		byName:        make(map[string][]NodeID),
		edges:         make(map[EdgeID]*Edge),
		out:           make(map[NodeID][]EdgeID),
		in:            make(map[NodeID][]EdgeID),
		documentNames: make(map[string]NodeID),
		linkOwners:    make(map[NodeID]EdgeID),
	}
}

// AddNode inserts node, enforcing I1 (unique node id) and I6 (unique
// DocumentNode name).
func (g *Graph) AddNode(n *Node) error {
	const op = "Graph.AddNode"

	if _, exists := g.nodes[n.ID]; exists {
		return errs.New(errs.DuplicateID, op, fmt.Errorf("node id %q already exists", n.ID))
	}
	if n.Kind == KindDocumentNode {
		if _, exists := g.documentNames[n.Name]; exists {
			return errs.New(errs.DuplicateID, op,
				fmt.Errorf("document name %q already exists", n.Name))
		}
		g.documentNames[n.Name] = n.ID
	}

	g.nodes[n.ID] = n
	g.nodeSeq = append(g.nodeSeq, n.ID)
	g.byName[n.Name] = append(g.byName[n.Name], n.ID)
	return nil
}

// FindNodeByID returns the node with the given id, or false if absent.
func (g *Graph) FindNodeByID(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// FindNodeByName returns the first node with the given name in
// insertion order, or false if none exists. Use NodesByName for the
// full set when multiple nodes can share a name.
func (g *Graph) FindNodeByName(name string) (*Node, bool) {
	ids := g.byName[name]
	if len(ids) == 0 {
		return nil, false
	}
	return g.nodes[ids[0]], true
}

// NodesByName returns every node with the given name, in insertion
// order.
func (g *Graph) NodesByName(name string) []*Node {
	ids := g.byName[name]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = g.nodes[id]
	}
	return out
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeSeq))
	for i, id := range g.nodeSeq {
		out[i] = g.nodes[id]
	}
	return out
}

// NodesOfKind returns every node of the given kind, in insertion order.
func (g *Graph) NodesOfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, id := range g.nodeSeq {
		if n := g.nodes[id]; n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// AddEdge inserts an edge of the given type between source and target,
// enforcing I2 (unique edge id), I3 (endpoints exist), and I4 (kind
// compatibility per the connections datamodel). On success it updates
// the outgoing/incoming adjacency indices and, for has_linked_resource
// edges, the I7 link-ownership index.
func (g *Graph) AddEdge(id EdgeID, source, target NodeID, edgeType string) (*Edge, error) {
	const op = "Graph.AddEdge"

	if _, exists := g.edges[id]; exists {
		return nil, errs.New(errs.DuplicateID, op, fmt.Errorf("edge id %q already exists", id))
	}

	srcNode, ok := g.nodes[source]
	if !ok {
		return nil, errs.New(errs.UnknownNode, op, fmt.Errorf("source node %q not found", source))
	}
	tgtNode, ok := g.nodes[target]
	if !ok {
		return nil, errs.New(errs.UnknownNode, op, fmt.Errorf("target node %q not found", target))
	}

	rec, ok := g.dm.Lookup(edgeType)
	if !ok {
		return nil, errs.New(errs.UnknownEdgeType, op, fmt.Errorf("edge type %q not found", edgeType))
	}

	if !kindMatchesAny(srcNode.Kind, rec.AllowedConnections.Source) ||
		!kindMatchesAny(tgtNode.Kind, rec.AllowedConnections.Target) {
		return nil, errs.New(errs.ForbiddenConnection, op,
			fmt.Errorf("edge type %q does not allow %s -> %s", edgeType, srcNode.Kind, tgtNode.Kind))
	}

	if edgeType == "has_linked_resource" {
		if owner, exists := g.linkOwners[target]; exists {
			return nil, errs.New(errs.ForbiddenConnection, op,
				fmt.Errorf("link node %q already owned by edge %q", target, owner))
		}
		g.linkOwners[target] = id
	}

	e := &Edge{ID: id, Source: source, Target: target, Type: edgeType}
	g.edges[id] = e
	g.edgeSeq = append(g.edgeSeq, id)
	g.out[source] = append(g.out[source], id)
	g.in[target] = append(g.in[target], id)
	return e, nil
}

func kindMatchesAny(kind NodeKind, allowed []string) bool {
	for _, a := range allowed {
		if kind.Matches(a) {
			return true
		}
	}
	return false
}

// FindEdgeByID returns the edge with the given id, or false if absent.
func (g *Graph) FindEdgeByID(id EdgeID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeSeq))
	for i, id := range g.edgeSeq {
		out[i] = g.edges[id]
	}
	return out
}

// OutgoingEdges returns the edges whose source is id, in insertion
// order.
func (g *Graph) OutgoingEdges(id NodeID) []*Edge {
	ids := g.out[id]
	out := make([]*Edge, len(ids))
	for i, eid := range ids {
		out[i] = g.edges[eid]
	}
	return out
}

// IncomingEdges returns the edges whose target is id, in insertion
// order.
func (g *Graph) IncomingEdges(id NodeID) []*Edge {
	ids := g.in[id]
	out := make([]*Edge, len(ids))
	for i, eid := range ids {
		out[i] = g.edges[eid]
	}
	return out
}

// EdgesOfType returns every edge of the given type in insertion order.
func (g *Graph) EdgesOfType(edgeType string) []*Edge {
	var out []*Edge
	for _, id := range g.edgeSeq {
		if e := g.edges[id]; e.Type == edgeType {
			out = append(out, e)
		}
	}
	return out
}

// HasEdge reports whether an edge of edgeType already connects source
// to target, used by passes (paradata-group connection, epoch assignment,
// header and group wiring) that must not create duplicate edges.
func (g *Graph) HasEdge(source, target NodeID, edgeType string) bool {
	for _, eid := range g.out[source] {
		e := g.edges[eid]
		if e.Target == target && e.Type == edgeType {
			return true
		}
	}
	return false
}

// Datamodel returns the connections datamodel this graph validates
// edges against.
func (g *Graph) Datamodel() *datamodel.Datamodel { return g.dm }
