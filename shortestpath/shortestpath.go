// Package shortestpath implements single-source Dijkstra over a
// streetgraph.Graph, producing distance and predecessor maps, plus path
// reconstruction between a source and a target.
//
// Edge weights are edge lengths, which streetgraph.Builder guarantees are
// strictly positive. Ties in tentative distance are broken by
// first-encountered predecessor, per the solver's determinism contract:
// a neighbor is never relaxed on a distance tie (see the relaxation loop
// in Dijkstra), so the first predecessor to achieve the minimum wins and
// is never displaced.
//
// Complexity: O((V + E) log V) per source, lazy-deletion min-heap.
package shortestpath

import (
	"container/heap"
	"errors"
	"math"

	"github.com/phungdo/everystreet/streetgraph"
)

// ErrUnreachable indicates the predecessor chain from target back to
// source never terminates at source: the two nodes are not connected in
// the graph APSP was run over.
var ErrUnreachable = errors.New("shortestpath: target is unreachable from source")

// Result holds the outcome of a single-source Dijkstra run. Unreachable
// nodes are absent from all three maps.
type Result struct {
	Source   streetgraph.NodeID
	Dist     map[streetgraph.NodeID]float64
	PrevNode map[streetgraph.NodeID]streetgraph.NodeID
	PrevEdge map[streetgraph.NodeID]streetgraph.EdgeID
}

// Path is a reconstructed shortest path between two nodes.
type Path struct {
	Source   streetgraph.NodeID
	Target   streetgraph.NodeID
	Nodes    []streetgraph.NodeID
	Edges    []streetgraph.EdgeID
	Distance float64
}

// Dijkstra computes shortest distances and predecessors from source to
// every node reachable in g.
func Dijkstra(g *streetgraph.Graph, source streetgraph.NodeID) *Result {
	res := &Result{
		Source:   source,
		Dist:     make(map[streetgraph.NodeID]float64),
		PrevNode: make(map[streetgraph.NodeID]streetgraph.NodeID),
		PrevEdge: make(map[streetgraph.NodeID]streetgraph.EdgeID),
	}

	res.Dist[source] = 0
	visited := make(map[streetgraph.NodeID]bool)

	pq := make(nodePQ, 0, g.NumNodes())
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist

		if visited[u] {
			continue
		}
		visited[u] = true

		for _, nb := range g.Neighbors(u) {
			v := nb.NodeID
			newDist := d + nb.Edge.Length

			cur, known := res.Dist[v]
			if known && newDist >= cur {
				// Not strictly better: keep the earlier predecessor (first
				// discovered wins on ties, per the determinism contract).
				continue
			}

			res.Dist[v] = newDist
			res.PrevNode[v] = u
			res.PrevEdge[v] = nb.Edge.ID
			heap.Push(&pq, &nodeItem{id: v, dist: newDist})
		}
	}

	return res
}

// ReconstructPath walks predecessors from target back to source, summing
// edge lengths and prepending nodes/edges as it goes. Returns
// ErrUnreachable if the predecessor chain does not terminate at source.
func ReconstructPath(res *Result, source, target streetgraph.NodeID) (Path, error) {
	if target == source {
		return Path{Source: source, Target: target, Nodes: []streetgraph.NodeID{source}}, nil
	}
	if _, ok := res.Dist[target]; !ok {
		return Path{}, ErrUnreachable
	}

	var nodes []streetgraph.NodeID
	var edges []streetgraph.EdgeID

	cur := target
	nodes = append(nodes, cur)
	for cur != source {
		prevNode, ok := res.PrevNode[cur]
		if !ok {
			return Path{}, ErrUnreachable
		}
		edges = append(edges, res.PrevEdge[cur])
		cur = prevNode
		nodes = append(nodes, cur)

		if len(nodes) > len(res.Dist)+1 {
			// Defensive bound: predecessor chain cannot be longer than the
			// number of nodes ever reached; a longer walk means a cycle
			// formed in PrevNode, which should never happen.
			return Path{}, ErrUnreachable
		}
	}

	// Reverse into source -> target order.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	if cur != source {
		return Path{}, ErrUnreachable
	}

	dist, ok := res.Dist[target]
	if !ok {
		dist = math.NaN()
	}

	return Path{Source: source, Target: target, Nodes: nodes, Edges: edges, Distance: dist}, nil
}

// nodeItem is a (vertex, tentative distance) pair stored in the heap.
type nodeItem struct {
	id   streetgraph.NodeID
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending, using the
// lazy-deletion pattern: stale duplicate entries are skipped on pop via
// the visited set rather than removed eagerly.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
