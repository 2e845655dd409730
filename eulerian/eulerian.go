// Package eulerian extracts an Eulerian circuit from a connected,
// even-degree multigraph using Hierholzer's algorithm.
//
// The multigraph is expressed as a flat list of Occurrences: one entry per
// walkable copy of an edge (the original graph contributes one occurrence
// per edge; augmentation contributes one extra occurrence per duplicated
// edge). Each Occurrence is undirected; Circuit derives two directed
// adjacency entries from it — a "twin" pair — so that walking either
// direction marks both as used, per spec.md §4.F.
//
// Complexity: O(E') where E' is the number of occurrences.
package eulerian

import (
	"sort"

	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/streetgraph"
)

// Occurrence is one walkable copy of an edge between U and V. The original
// graph contributes one Occurrence per edge; the augmenter contributes an
// additional Occurrence per edge duplicated along a matched shortest path.
type Occurrence struct {
	Edge *streetgraph.Edge
	U    streetgraph.NodeID
	V    streetgraph.NodeID
}

// EdgeTraversal records one directed walk over an edge: which edge, and
// which of its two endpoints was entered from and departed to.
type EdgeTraversal struct {
	Edge     *streetgraph.Edge
	FromNode streetgraph.NodeID
	ToNode   streetgraph.NodeID
}

// Geometry returns the traversal's polyline in walk direction: the edge's
// geometry as stored if FromNode == Edge.From, reversed otherwise.
func (t EdgeTraversal) Geometry() []geodesy.Point {
	if t.FromNode == t.Edge.From {
		out := make([]geodesy.Point, len(t.Edge.Geometry))
		copy(out, t.Edge.Geometry)
		return out
	}

	src := t.Edge.Geometry
	out := make([]geodesy.Point, len(src))
	for i, p := range src {
		out[len(src)-1-i] = p
	}
	return out
}

// OccurrencesFromGraph returns one Occurrence per edge of g, for use when
// g is already Eulerian (all degrees even) and needs no augmentation.
func OccurrencesFromGraph(g *streetgraph.Graph) []Occurrence {
	edges := g.Edges()
	out := make([]Occurrence, len(edges))
	for i, e := range edges {
		out[i] = Occurrence{Edge: e, U: e.From, V: e.To}
	}
	return out
}

// dirEntry is one directed adjacency entry derived from an Occurrence.
// twin points at the paired entry on the other endpoint; marking one used
// marks both, since they represent a single walk over the same edge copy.
type dirEntry struct {
	neighbor streetgraph.NodeID
	edge     *streetgraph.Edge
	twin     *dirEntry
	used     bool
}

// Circuit runs Hierholzer's algorithm over the multigraph described by
// occurrences, starting and ending at start, and returns the ordered
// sequence of edge traversals. The caller is responsible for ensuring the
// multigraph is connected on its positive-degree nodes and every node has
// even degree. A disconnected multigraph yields a circuit that covers only
// start's component (see spec.md §4.F); odd-degree nodes yield a traversal
// sequence that is not a closed, contiguous walk.
//
// Tie-break: among the unused adjacency entries of a node, the one with
// the lowest Edge.ID wins, making the output reproducible across runs.
func Circuit(occurrences []Occurrence, start streetgraph.NodeID) []EdgeTraversal {
	buckets := make(map[streetgraph.NodeID][]*dirEntry)

	for _, occ := range occurrences {
		uv := &dirEntry{neighbor: occ.V, edge: occ.Edge}
		vu := &dirEntry{neighbor: occ.U, edge: occ.Edge}
		uv.twin = vu
		vu.twin = uv
		buckets[occ.U] = append(buckets[occ.U], uv)
		buckets[occ.V] = append(buckets[occ.V], vu)
	}

	for node, entries := range buckets {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].edge.ID < entries[j].edge.ID })
		buckets[node] = entries
	}

	cursor := make(map[streetgraph.NodeID]int, len(buckets))

	pickUnused := func(node streetgraph.NodeID) *dirEntry {
		entries := buckets[node]
		i := cursor[node]
		for i < len(entries) && entries[i].used {
			i++
		}
		cursor[node] = i
		if i == len(entries) {
			return nil
		}
		return entries[i]
	}

	type frame struct {
		node    streetgraph.NodeID
		viaEdge *dirEntry // entry used to arrive at node; nil for the start frame
	}

	stack := []frame{{node: start}}
	var reversed []EdgeTraversal

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if entry := pickUnused(top.node); entry != nil {
			entry.used = true
			entry.twin.used = true
			stack = append(stack, frame{node: entry.neighbor, viaEdge: entry})
			continue
		}

		stack = stack[:len(stack)-1]
		if top.viaEdge != nil {
			parent := stack[len(stack)-1].node
			reversed = append(reversed, EdgeTraversal{Edge: top.viaEdge.edge, FromNode: parent, ToNode: top.node})
		}
	}

	out := make([]EdgeTraversal, len(reversed))
	for i, t := range reversed {
		out[len(reversed)-1-i] = t
	}

	return out
}
