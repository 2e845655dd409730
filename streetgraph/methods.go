package streetgraph

import "sort"

// OddDegreeNodes returns the ids of all nodes with odd degree, sorted
// ascending for deterministic downstream processing (APSP ordering,
// matching enumeration order).
func (g *Graph) OddDegreeNodes() []NodeID {
	var out []NodeID
	for _, id := range g.nodeOrder {
		if g.Degree(id)%2 == 1 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AnyPositiveDegreeNode returns an arbitrary node with positive degree, and
// false if no such node exists (i.e. the graph has no edges).
func (g *Graph) AnyPositiveDegreeNode() (NodeID, bool) {
	for _, id := range g.nodeOrder {
		if g.Degree(id) > 0 {
			return id, true
		}
	}
	return 0, false
}

// ConnectedComponent returns the set of node ids reachable from start by
// walking edges, via breadth-first search over the adjacency index.
func (g *Graph) ConnectedComponent(start NodeID) map[NodeID]struct{} {
	visited := map[NodeID]struct{}{start: {}}
	queue := []NodeID{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, nb := range g.adjacency[u] {
			if _, seen := visited[nb.Neighbor]; !seen {
				visited[nb.Neighbor] = struct{}{}
				queue = append(queue, nb.Neighbor)
			}
		}
	}
	return visited
}

// UnreachedEdgeIDs returns the ids of edges with at least one endpoint
// outside the given reachable node set — the diagnostic spec.md §7
// requires when solving on a start node's component of a disconnected
// graph.
func (g *Graph) UnreachedEdgeIDs(reachable map[NodeID]struct{}) []EdgeID {
	var out []EdgeID
	for _, e := range g.edgeList {
		_, fromOK := reachable[e.From]
		_, toOK := reachable[e.To]
		if !fromOK || !toOK {
			out = append(out, e.ID)
		}
	}
	return out
}
