package routesolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/routesolver"
	"github.com/phungdo/everystreet/streetgraph"
)

// requireValidCircuit checks the universal properties spec.md §8 demands
// of any RouteResult: full edge coverage, a closed contiguous walk, and
// total distance no smaller than the original.
func requireValidCircuit(t *testing.T, g *streetgraph.Graph, res *routesolver.RouteResult) {
	t.Helper()

	require.NotEmpty(t, res.Circuit)
	require.Equal(t, res.Circuit[0].FromNode, res.Circuit[len(res.Circuit)-1].ToNode, "closed walk")

	for i := 1; i < len(res.Circuit); i++ {
		require.Equal(t, res.Circuit[i-1].ToNode, res.Circuit[i].FromNode, "contiguous traversal")
	}

	covered := map[streetgraph.EdgeID]bool{}
	for _, id := range res.EdgeOrder {
		covered[id] = true
	}
	for _, e := range g.Edges() {
		if !covered[e.ID] {
			require.Contains(t, res.UnreachedEdgeIDs, e.ID, "edge %d neither covered nor reported unreached", e.ID)
		}
	}

	require.GreaterOrEqual(t, res.TotalDistance, res.OriginalDistance)
	require.Equal(t, "START", string(res.Instructions[0].Kind))
	require.Equal(t, "ARRIVED", string(res.Instructions[len(res.Instructions)-1].Kind))
}

func square(t *testing.T) *streetgraph.Graph {
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
	return b.Build()
}

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

// TestSolveSingleEdge covers spec.md §8's "Single edge" scenario: two nodes,
// one edge; both endpoints are odd, the only matching pair duplicates the
// edge, yielding a 2-traversal circuit.
func TestSolveSingleEdge(t *testing.T) {
	b := streetgraph.NewBuilder()
	p1 := geodesy.Point{Lat: 0, Lng: 0}
	p2 := geodesy.Point{Lat: 0.001, Lng: 0}
	require.NoError(t, b.AddNode(1, p1))
	require.NoError(t, b.AddNode(2, p2))
	require.NoError(t, b.AddEdge(1, 1, 2, geodesy.Distance(p1, p2), []geodesy.Point{p1, p2}, "Elm St"))
	g := b.Build()

	res, err := routesolver.Solve(g, routesolver.Options{})
	require.NoError(t, err)
	requireValidCircuit(t, g, res)

	require.Equal(t, []streetgraph.EdgeID{1, 1}, res.EdgeOrder)
	require.Contains(t, res.DuplicateEdgeIDs, streetgraph.EdgeID(1))
	require.InDelta(t, res.OriginalDistance*2, res.TotalDistance, 1e-6)
}

// TestSolveTriangleNoAugmentation covers spec.md §8's "Triangle" scenario:
// all nodes already have even degree, so TotalDistance == OriginalDistance.
func TestSolveTriangleNoAugmentation(t *testing.T) {
	b := streetgraph.NewBuilder()
	locs := map[streetgraph.NodeID]geodesy.Point{
		1: {Lat: 0, Lng: 0},
		2: {Lat: 0, Lng: 0.001},
		3: {Lat: 0.001, Lng: 0.001},
	}
	for id, loc := range locs {
		require.NoError(t, b.AddNode(id, loc))
	}
	add := func(id streetgraph.EdgeID, from, to streetgraph.NodeID) {
		require.NoError(t, b.AddEdge(id, from, to, geodesy.Distance(locs[from], locs[to]), []geodesy.Point{locs[from], locs[to]}, ""))
	}
	add(1, 1, 2)
	add(2, 2, 3)
	add(3, 3, 1)
	g := b.Build()

	res, err := routesolver.Solve(g, routesolver.Options{})
	require.NoError(t, err)
	requireValidCircuit(t, g, res)
	require.Empty(t, res.DuplicateEdgeIDs)
	require.InDelta(t, res.OriginalDistance, res.TotalDistance, 1e-6)
}

// TestSolveSquareWithDiagonal covers spec.md §8's "Square with a diagonal"
// scenario: nodes 1 and 3 are odd, and the shortest augmenting path between
// them is the diagonal edge itself, duplicating it once.
func TestSolveSquareWithDiagonal(t *testing.T) {
	g := squareWithDiagonal(t)

	res, err := routesolver.Solve(g, routesolver.Options{})
	require.NoError(t, err)
	requireValidCircuit(t, g, res)
	require.Contains(t, res.DuplicateEdgeIDs, streetgraph.EdgeID(5))
	require.Len(t, res.DuplicateEdgeIDs, 1)
}

// TestSolveDisconnectedRestrictsToStartComponent covers spec.md §7's
// Disconnected diagnostic: a graph with a square and a disjoint triangle solves only
// the component containing the requested start and reports the rest as
// unreached, rather than failing outright.
func TestSolveDisconnectedRestrictsToStartComponent(t *testing.T) {
	b := streetgraph.NewBuilder()
	locsA := map[streetgraph.NodeID]geodesy.Point{
		1: {Lat: 0, Lng: 0}, 2: {Lat: 0, Lng: 0.001}, 3: {Lat: 0.001, Lng: 0.001}, 4: {Lat: 0.001, Lng: 0},
	}
	locsB := map[streetgraph.NodeID]geodesy.Point{
		11: {Lat: 10, Lng: 10}, 12: {Lat: 10, Lng: 10.001}, 13: {Lat: 10.001, Lng: 10.001},
	}
	for id, loc := range locsA {
		require.NoError(t, b.AddNode(id, loc))
	}
	for id, loc := range locsB {
		require.NoError(t, b.AddNode(id, loc))
	}
	addA := func(id streetgraph.EdgeID, from, to streetgraph.NodeID) {
		require.NoError(t, b.AddEdge(id, from, to, geodesy.Distance(locsA[from], locsA[to]), []geodesy.Point{locsA[from], locsA[to]}, ""))
	}
	addA(1, 1, 2)
	addA(2, 2, 3)
	addA(3, 3, 4)
	addA(4, 4, 1)

	addB := func(id streetgraph.EdgeID, from, to streetgraph.NodeID) {
		require.NoError(t, b.AddEdge(id, from, to, geodesy.Distance(locsB[from], locsB[to]), []geodesy.Point{locsB[from], locsB[to]}, ""))
	}
	addB(5, 11, 12)
	addB(6, 12, 13)
	addB(7, 13, 11)

	g := b.Build()

	start := streetgraph.NodeID(1)
	res, err := routesolver.Solve(g, routesolver.Options{Start: &start})
	require.NoError(t, err)

	require.ElementsMatch(t, []streetgraph.EdgeID{1, 2, 3, 4}, res.EdgeOrder)
	require.ElementsMatch(t, []streetgraph.EdgeID{5, 6, 7}, res.UnreachedEdgeIDs)
}

// TestSolveEmptyGraph covers the fatal EmptyGraph precondition.
func TestSolveEmptyGraph(t *testing.T) {
	g := streetgraph.NewBuilder().Build()
	_, err := routesolver.Solve(g, routesolver.Options{})
	require.ErrorIs(t, err, routesolver.ErrEmptyGraph)
}

// TestSolveCancelledBeforeStart covers the cooperative cancellation check:
// a predicate that is already true aborts before any phase runs.
func TestSolveCancelledBeforeStart(t *testing.T) {
	g := square(t)
	_, err := routesolver.Solve(g, routesolver.Options{IsCancelled: func() bool { return true }})
	require.ErrorIs(t, err, routesolver.ErrCancelled)
}

// TestSolveRespectsRequestedStart covers spec.md §4.F's start-node policy:
// a valid, positive-degree requested start node anchors the circuit.
func TestSolveRespectsRequestedStart(t *testing.T) {
	g := squareWithDiagonal(t)
	start := streetgraph.NodeID(3)
	res, err := routesolver.Solve(g, routesolver.Options{Start: &start})
	require.NoError(t, err)
	require.Equal(t, start, res.Circuit[0].FromNode)
}
