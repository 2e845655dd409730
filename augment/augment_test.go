package augment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phungdo/everystreet/augment"
	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/matching"
	"github.com/phungdo/everystreet/shortestpath"
	"github.com/phungdo/everystreet/streetgraph"
)

// squareWithDiagonal builds spec.md §8's "square with a diagonal" graph:
// nodes 1,2,3,4, edges 12,23,34,41,13, each 100m. Odd nodes are {1,3}.
func squareWithDiagonal(t *testing.T) *streetgraph.Graph {
	t.Helper()
	b := streetgraph.NewBuilder()
	locs := map[streetgraph.NodeID]geodesy.Point{
		1: {Lat: 0, Lng: 0},
		2: {Lat: 0, Lng: 1},
		3: {Lat: 1, Lng: 1},
		4: {Lat: 1, Lng: 0},
	}
	for id, loc := range locs {
		require.NoError(t, b.AddNode(id, loc))
	}
	add := func(id streetgraph.EdgeID, from, to streetgraph.NodeID) {
		require.NoError(t, b.AddEdge(id, from, to, 100, []geodesy.Point{locs[from], locs[to]}, ""))
	}
	add(1, 1, 2)
	add(2, 2, 3)
	add(3, 3, 4)
	add(4, 4, 1)
	add(5, 1, 3)
	return b.Build()
}

func TestBuildDuplicatesMatchedPathEdges(t *testing.T) {
	g := squareWithDiagonal(t)

	odd := g.OddDegreeNodes()
	require.Equal(t, []streetgraph.NodeID{1, 3}, odd)

	pairs, err := matching.Match(odd, func(a, b streetgraph.NodeID) float64 {
		res := shortestpath.Dijkstra(g, a)
		return res.Dist[b]
	}, 0)
	require.NoError(t, err)
	require.Equal(t, []matching.Pair{{A: 1, B: 3}}, pairs)

	paths := make(map[matching.Pair]shortestpath.Path)
	for _, p := range pairs {
		res := shortestpath.Dijkstra(g, p.A)
		path, err := shortestpath.ReconstructPath(res, p.A, p.B)
		require.NoError(t, err)
		paths[p] = path
	}

	occs := augment.Build(g, pairs, paths)
	require.Len(t, occs, g.NumEdges()+1)

	degree := map[streetgraph.NodeID]int{}
	counts := map[streetgraph.EdgeID]int{}
	for _, occ := range occs {
		degree[occ.U]++
		degree[occ.V]++
		counts[occ.Edge.ID]++
	}
	for _, id := range g.NodeIDs() {
		require.Zero(t, degree[id]%2, "node %d should have even degree after augmentation", id)
	}
	require.Equal(t, 2, counts[5], "diagonal edge duplicated")
}
