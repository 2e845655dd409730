package routesolver

import (
	"errors"
	"fmt"
	"math"

	"github.com/phungdo/everystreet/augment"
	"github.com/phungdo/everystreet/eulerian"
	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/instructions"
	"github.com/phungdo/everystreet/matching"
	"github.com/phungdo/everystreet/shortestpath"
	"github.com/phungdo/everystreet/streetgraph"
)

// Solve computes a minimum-augmentation route covering every edge of the
// connected component containing the chosen start node, per spec.md §4.G:
//
//	odd = odd_degree_nodes(component)
//	if odd is empty:
//	    circuit = hierholzer(component, start)
//	else:
//	    pairs_paths = apsp_between(odd, component)
//	    matching    = min_weight_matching(odd, pairs_paths)
//	    augmented   = augment(component, matching, pairs_paths)
//	    circuit     = hierholzer(augmented, start)
//	return build_result(component, circuit)
//
// If g is disconnected, Solve restricts itself to the component reachable
// from the chosen start node and reports the rest via
// RouteResult.UnreachedEdgeIDs rather than failing (spec.md §7's
// Disconnected diagnostic).
func Solve(g *streetgraph.Graph, opts Options) (*RouteResult, error) {
	if g.NumEdges() == 0 {
		return nil, ErrEmptyGraph
	}

	seed, ok := selectSeed(g, opts)
	if !ok {
		return nil, ErrEmptyGraph
	}

	if err := checkCancelled(opts); err != nil {
		return nil, err
	}

	component := g.ConnectedComponent(seed)
	unreached := g.UnreachedEdgeIDs(component)

	sub, err := restrictToComponent(g, component)
	if err != nil {
		return nil, fmt.Errorf("routesolver: building component subgraph: %w", err)
	}

	if err := checkCancelled(opts); err != nil {
		return nil, err
	}

	odd := sub.OddDegreeNodes()

	var occurrences []eulerian.Occurrence
	if len(odd) == 0 {
		occurrences = eulerian.OccurrencesFromGraph(sub)
	} else {
		occurrences, err = augmentForOddSet(sub, odd, opts)
		if err != nil {
			return nil, err
		}
	}

	if err := checkCancelled(opts); err != nil {
		return nil, err
	}

	circuit := eulerian.Circuit(occurrences, seed)

	ins, err := instructions.Generate(circuit, sub, opts.MinTurnDistanceM)
	if err != nil {
		return nil, fmt.Errorf("routesolver: generating instructions: %w", err)
	}

	return buildResult(sub, circuit, ins, unreached), nil
}

// selectSeed picks the Eulerian circuit's start node, per spec.md §4.F: the
// caller's requested start if it exists in g and has positive degree, else
// the lowest-id odd-degree node, else an arbitrary positive-degree node.
func selectSeed(g *streetgraph.Graph, opts Options) (streetgraph.NodeID, bool) {
	if opts.Start != nil {
		if n, ok := g.Node(*opts.Start); ok && g.Degree(n.ID) > 0 {
			return n.ID, true
		}
	}
	if odd := g.OddDegreeNodes(); len(odd) > 0 {
		return odd[0], true
	}
	return g.AnyPositiveDegreeNode()
}

// restrictToComponent rebuilds a Graph containing only the nodes in
// component and the edges of g with both endpoints inside it. Hierholzer's
// precondition (connected, even-degree once augmented) only needs to hold
// over this restricted graph, not the caller's original.
func restrictToComponent(g *streetgraph.Graph, component map[streetgraph.NodeID]struct{}) (*streetgraph.Graph, error) {
	b := streetgraph.NewBuilder()

	for _, id := range g.NodeIDs() {
		if _, ok := component[id]; !ok {
			continue
		}
		n, _ := g.Node(id)
		if err := b.AddNode(id, n.Location); err != nil {
			return nil, err
		}
	}

	for _, e := range g.Edges() {
		_, fromOK := component[e.From]
		_, toOK := component[e.To]
		if !fromOK || !toOK {
			continue
		}
		if err := b.AddEdge(e.ID, e.From, e.To, e.Length, e.Geometry, e.Name); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

// augmentForOddSet runs APSP among odd, computes a minimum-weight matching,
// and duplicates the matched paths' edges to make every node's degree even.
func augmentForOddSet(sub *streetgraph.Graph, odd []streetgraph.NodeID, opts Options) ([]eulerian.Occurrence, error) {
	results := make(map[streetgraph.NodeID]*shortestpath.Result, len(odd))
	for _, v := range odd {
		results[v] = shortestpath.Dijkstra(sub, v)
		if err := checkCancelled(opts); err != nil {
			return nil, err
		}
	}

	dist := func(a, b streetgraph.NodeID) float64 {
		d, ok := results[a].Dist[b]
		if !ok {
			return math.Inf(1) // unreachable within a connected component should not happen; surfaced below
		}
		return d
	}

	pairs, err := matching.Match(odd, dist, opts.KExact)
	if err != nil {
		if errors.Is(err, matching.ErrOddCardinality) {
			return nil, ErrOddCardinality
		}
		return nil, err
	}

	if err := checkCancelled(opts); err != nil {
		return nil, err
	}

	paths := make(map[matching.Pair]shortestpath.Path, len(pairs))
	for _, p := range pairs {
		if _, ok := results[p.A].Dist[p.B]; !ok {
			return nil, ErrUnreachableOdd
		}
		path, err := shortestpath.ReconstructPath(results[p.A], p.A, p.B)
		if err != nil {
			return nil, ErrUnreachableOdd
		}
		paths[p] = path
	}

	return augment.Build(sub, pairs, paths), nil
}

// buildResult assembles the final RouteResult from a completed circuit.
func buildResult(sub *streetgraph.Graph, circuit []eulerian.EdgeTraversal, ins []instructions.Instruction, unreached []streetgraph.EdgeID) *RouteResult {
	edgeOrder := make([]streetgraph.EdgeID, len(circuit))
	occurCount := make(map[streetgraph.EdgeID]int)

	var path []geodesy.Point
	var total float64

	for i, t := range circuit {
		edgeOrder[i] = t.Edge.ID
		occurCount[t.Edge.ID]++
		total += t.Edge.Length

		geom := t.Geometry()
		if i == 0 {
			path = append(path, geom...)
		} else {
			path = append(path, geom[1:]...)
		}
	}

	duplicates := make(map[streetgraph.EdgeID]struct{})
	for id, n := range occurCount {
		if n > 1 {
			duplicates[id] = struct{}{}
		}
	}

	var original float64
	for _, e := range sub.Edges() {
		original += e.Length
	}

	return &RouteResult{
		Path:             path,
		EdgeOrder:        edgeOrder,
		Circuit:          circuit,
		TotalDistance:    total,
		OriginalDistance: original,
		DuplicateEdgeIDs: duplicates,
		Instructions:     ins,
		UnreachedEdgeIDs: unreached,
	}
}

func checkCancelled(opts Options) error {
	if opts.IsCancelled != nil && opts.IsCancelled() {
		return ErrCancelled
	}
	return nil
}
