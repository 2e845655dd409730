// Package streetgraph defines the immutable undirected street multigraph
// consumed by the route solver: nodes with geodetic locations, edges with
// length, polyline geometry and an optional street name, and an adjacency
// index mirroring the edge list.
//
// A Graph is built once via Builder and never mutated afterwards; the
// solver and instruction generator treat it as read-only.
//
// Errors:
//
//	ErrUnknownNode       - edge references a node id absent from the graph.
//	ErrSelfLoop          - edge's From and To are the same node.
//	ErrNonPositiveLength - edge length is not strictly positive.
//	ErrShortGeometry     - edge geometry has fewer than two points.
//	ErrGeometryMismatch  - geometry endpoints do not match From/To locations.
//	ErrDuplicateNodeID   - the same node id was added twice.
//	ErrDuplicateEdgeID   - the same edge id was added twice.
package streetgraph

import (
	"errors"

	"github.com/phungdo/everystreet/geodesy"
)

// Sentinel errors for graph construction.
var (
	ErrUnknownNode       = errors.New("streetgraph: edge references unknown node")
	ErrSelfLoop          = errors.New("streetgraph: self-loop edges are not supported")
	ErrNonPositiveLength = errors.New("streetgraph: edge length must be strictly positive")
	ErrShortGeometry     = errors.New("streetgraph: edge geometry must have at least two points")
	ErrGeometryMismatch  = errors.New("streetgraph: geometry endpoints do not match edge endpoints")
	ErrDuplicateNodeID   = errors.New("streetgraph: duplicate node id")
	ErrDuplicateEdgeID   = errors.New("streetgraph: duplicate edge id")
)

// NodeID is a stable integer id, unique within a Graph.
type NodeID int64

// EdgeID is a stable integer id, unique within a Graph.
type EdgeID int64

// Node is a street-graph vertex: an opaque id plus its geodetic location.
type Node struct {
	ID       NodeID
	Location geodesy.Point
}

// Edge is an undirected street segment between two distinct nodes.
//
// Geometry is ordered From -> To; its first and last points equal the
// locations of From and To respectively. Traversal in the To -> From
// direction reverses Geometry to match the walking direction (see
// eulerian.EdgeTraversal.Geometry).
type Edge struct {
	ID       EdgeID
	From     NodeID
	To       NodeID
	Length   float64
	Geometry []geodesy.Point
	Name     string // empty means "no name"
}

// HasName reports whether the edge carries a non-empty street name.
func (e *Edge) HasName() bool { return e.Name != "" }

// adjEntry is one directed adjacency entry: walking to Neighbor uses Edge.
type adjEntry struct {
	Neighbor NodeID
	Edge     *Edge
}

// Graph is an immutable undirected multigraph over street segments.
// Parallel edges between the same pair of nodes are permitted and retain
// independent identity. Construct via Builder; a Graph is never mutated
// after Build returns.
type Graph struct {
	nodes     map[NodeID]*Node
	edgeList  []*Edge
	edgeByID  map[EdgeID]*Edge
	adjacency map[NodeID][]adjEntry
	nodeOrder []NodeID // insertion order, stable for deterministic iteration
}

// Node returns the node with the given id, or (nil, false) if absent.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id, or (nil, false) if absent.
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	e, ok := g.edgeByID[id]
	return e, ok
}

// Edges returns all edges in the graph, in the order they were added.
// The returned slice is owned by the caller (a fresh copy).
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeList))
	copy(out, g.edgeList)
	return out
}

// NodeIDs returns all node ids, in insertion order. The returned slice is a
// fresh copy.
func (g *Graph) NodeIDs() []NodeID {
	out := make([]NodeID, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// Degree returns the number of edge-endpoints incident on id (a self-loop,
// were one ever present, would count twice; none are permitted here).
func (g *Graph) Degree(id NodeID) int {
	return len(g.adjacency[id])
}

// Neighbors returns, for node id, the list of (neighbor, edge) adjacency
// entries, one per incident edge, sorted by Edge.ID ascending for
// deterministic iteration.
func (g *Graph) Neighbors(id NodeID) []Neighbor {
	entries := g.adjacency[id]
	out := make([]Neighbor, len(entries))
	for i, a := range entries {
		out[i] = Neighbor{NodeID: a.Neighbor, Edge: a.Edge}
	}
	return out
}

// Neighbor is one adjacency entry: walking from the queried node to NodeID
// uses Edge.
type Neighbor struct {
	NodeID NodeID
	Edge   *Edge
}

// NumNodes returns the count of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the count of distinct edges in the graph (parallel
// edges count individually).
func (g *Graph) NumEdges() int { return len(g.edgeList) }
