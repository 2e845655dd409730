// Package augment builds the augmented multigraph that the Eulerian
// circuit extraction runs over: the original graph's edges plus one extra
// occurrence per edge along each matched pair's shortest path.
//
// Per spec.md §4.E, duplicated edges retain their original id and length —
// augmentation never clones an Edge object, it only adds an extra
// eulerian.Occurrence referencing the same edge, so downstream reporting
// (RouteResult.duplicate_edge_ids) counts traversals correctly.
package augment

import (
	"github.com/phungdo/everystreet/eulerian"
	"github.com/phungdo/everystreet/matching"
	"github.com/phungdo/everystreet/shortestpath"
	"github.com/phungdo/everystreet/streetgraph"
)

// Build returns the occurrence list for the augmented multigraph: every
// edge of g once, plus one extra occurrence for each edge along paths[p]
// for every matched pair p. paths must contain an entry for every pair in
// pairs, keyed as returned by shortestpath.ReconstructPath(res, p.A, p.B).
func Build(g *streetgraph.Graph, pairs []matching.Pair, paths map[matching.Pair]shortestpath.Path) []eulerian.Occurrence {
	occs := eulerian.OccurrencesFromGraph(g)

	for _, p := range pairs {
		path := paths[p]
		for i, edgeID := range path.Edges {
			e, ok := g.Edge(edgeID)
			if !ok {
				continue // defensive: path references a node/edge missing from g, should not happen
			}
			u := path.Nodes[i]
			v := path.Nodes[i+1]
			occs = append(occs, eulerian.Occurrence{Edge: e, U: u, V: v})
		}
	}

	return occs
}
