package streetgraph

import (
	"sort"

	"github.com/phungdo/everystreet/geodesy"
)

// Builder assembles a Graph incrementally. It is not safe for concurrent
// use; build on a single goroutine and discard the Builder once Build has
// been called.
type Builder struct {
	nodes     map[NodeID]*Node
	edgeByID  map[EdgeID]*Edge
	edgeList  []*Edge
	nodeOrder []NodeID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes:    make(map[NodeID]*Node),
		edgeByID: make(map[EdgeID]*Edge),
	}
}

// AddNode registers a node at the given location. Returns ErrDuplicateNodeID
// if id was already added.
func (b *Builder) AddNode(id NodeID, loc geodesy.Point) error {
	if _, exists := b.nodes[id]; exists {
		return ErrDuplicateNodeID
	}
	b.nodes[id] = &Node{ID: id, Location: loc}
	b.nodeOrder = append(b.nodeOrder, id)
	return nil
}

// AddEdge registers an undirected edge between from and to. geometry must
// have at least two points whose first and last entries equal the
// locations of from and to respectively, in that order. name may be empty.
func (b *Builder) AddEdge(id EdgeID, from, to NodeID, length float64, geometry []geodesy.Point, name string) error {
	if _, exists := b.edgeByID[id]; exists {
		return ErrDuplicateEdgeID
	}
	if from == to {
		return ErrSelfLoop
	}
	fromNode, ok := b.nodes[from]
	if !ok {
		return ErrUnknownNode
	}
	toNode, ok := b.nodes[to]
	if !ok {
		return ErrUnknownNode
	}
	if length <= 0 {
		return ErrNonPositiveLength
	}
	if len(geometry) < 2 {
		return ErrShortGeometry
	}
	if geometry[0] != fromNode.Location || geometry[len(geometry)-1] != toNode.Location {
		return ErrGeometryMismatch
	}

	geomCopy := make([]geodesy.Point, len(geometry))
	copy(geomCopy, geometry)

	e := &Edge{
		ID:       id,
		From:     from,
		To:       to,
		Length:   length,
		Geometry: geomCopy,
		Name:     name,
	}
	b.edgeByID[id] = e
	b.edgeList = append(b.edgeList, e)

	return nil
}

// Build finalizes the graph: computes the adjacency index (two entries per
// undirected edge, sorted by Edge.ID ascending within each node's bucket)
// and returns an immutable Graph.
func (b *Builder) Build() *Graph {
	adjacency := make(map[NodeID][]adjEntry, len(b.nodes))
	for _, e := range b.edgeList {
		adjacency[e.From] = append(adjacency[e.From], adjEntry{Neighbor: e.To, Edge: e})
		adjacency[e.To] = append(adjacency[e.To], adjEntry{Neighbor: e.From, Edge: e})
	}
	for id := range adjacency {
		entries := adjacency[id]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Edge.ID < entries[j].Edge.ID })
		adjacency[id] = entries
	}

	nodes := make(map[NodeID]*Node, len(b.nodes))
	for id, n := range b.nodes {
		nodes[id] = n
	}
	edgeByID := make(map[EdgeID]*Edge, len(b.edgeByID))
	for id, e := range b.edgeByID {
		edgeByID[id] = e
	}
	edgeList := make([]*Edge, len(b.edgeList))
	copy(edgeList, b.edgeList)
	nodeOrder := make([]NodeID, len(b.nodeOrder))
	copy(nodeOrder, b.nodeOrder)

	return &Graph{
		nodes:     nodes,
		edgeList:  edgeList,
		edgeByID:  edgeByID,
		adjacency: adjacency,
		nodeOrder: nodeOrder,
	}
}
