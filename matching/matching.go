// Package matching computes a minimum-weight perfect matching over an
// even-sized vertex set given a pairwise distance function, using the
// policy spec.md §4.D lays out:
//
//   - k == 0: empty matching.
//   - k == 2: the single pair.
//   - 2 < k <= kExact: exact branch-and-bound enumeration of all perfect
//     matchings, pruning any partial matching whose accumulated cost is
//     already >= the best complete matching found so far.
//   - k > kExact: greedy — sort all C(k,2) pairs ascending by distance,
//     commit each pair iff both endpoints are still unmatched.
//
// kExact is a design parameter, not a correctness guarantee: it bounds the
// O(k!!) exact search to the small odd-vertex counts typical of
// neighbourhood-scale street graphs. Callers pass their own ceiling
// (config.Config's K_EXACT, in this repo); DefaultKExact is used when the
// caller has none.
package matching

import (
	"errors"
	"math"
	"sort"

	"github.com/phungdo/everystreet/streetgraph"
)

// DefaultKExact is the ceiling Match falls back to when a caller passes
// kExact <= 0.
const DefaultKExact = 10

// ErrOddCardinality indicates the input vertex set has odd size; a finite
// undirected graph always has an even number of odd-degree vertices (the
// handshake lemma), so this signals a malformed caller-supplied set.
var ErrOddCardinality = errors.New("matching: vertex set has odd cardinality")

// Pair is one unordered matched pair.
type Pair struct {
	A streetgraph.NodeID
	B streetgraph.NodeID
}

// DistanceFunc returns the pairwise weight between two vertices (the
// APSP-restricted shortest-path distance, in the caller's intended use).
type DistanceFunc func(a, b streetgraph.NodeID) float64

// Match returns a set of len(nodes)/2 unordered pairs covering nodes
// exactly once, chosen to minimize total pairwise distance for small
// inputs and approximated greedily for large ones. Returns
// ErrOddCardinality if len(nodes) is odd. kExact <= 0 falls back to
// DefaultKExact.
func Match(nodes []streetgraph.NodeID, dist DistanceFunc, kExact int) ([]Pair, error) {
	if len(nodes)%2 != 0 {
		return nil, ErrOddCardinality
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	if len(nodes) == 2 {
		return []Pair{{A: nodes[0], B: nodes[1]}}, nil
	}
	if kExact <= 0 {
		kExact = DefaultKExact
	}

	sorted := make([]streetgraph.NodeID, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if len(sorted) <= kExact {
		return exactMatch(sorted, dist), nil
	}

	return greedyMatch(sorted, dist), nil
}

// exactMatch enumerates every perfect matching of vertices by always
// pairing the lowest-indexed remaining vertex with each possible partner
// in turn, pruning a partial matching as soon as its accumulated cost
// reaches the best complete matching found so far. Ties in total cost are
// broken by enumeration order: the first discovered optimum wins.
func exactMatch(vertices []streetgraph.NodeID, dist DistanceFunc) []Pair {
	n := len(vertices)
	used := make([]bool, n)
	current := make([]Pair, 0, n/2)

	var best []Pair
	bestCost := math.Inf(1)

	var recurse func(depth int, cost float64)
	recurse = func(depth int, cost float64) {
		if cost >= bestCost {
			return // pruned: already no better than the best complete matching
		}
		if depth == n {
			best = append([]Pair(nil), current...)
			bestCost = cost
			return
		}

		// Fix the lowest-indexed remaining vertex.
		i := 0
		for used[i] {
			i++
		}
		used[i] = true

		for j := i + 1; j < n; j++ {
			if used[j] {
				continue
			}
			used[j] = true
			current = append(current, Pair{A: vertices[i], B: vertices[j]})

			recurse(depth+2, cost+dist(vertices[i], vertices[j]))

			current = current[:len(current)-1]
			used[j] = false
		}

		used[i] = false
	}

	recurse(0, 0)

	return best
}

// greedyMatch sorts all pairs by ascending distance and commits each pair
// iff both endpoints are still unmatched, terminating when no vertices
// remain. This is a bounded approximation, not a minimum-weight matching.
func greedyMatch(vertices []streetgraph.NodeID, dist DistanceFunc) []Pair {
	type candidate struct {
		i, j int
		d    float64
	}

	n := len(vertices)
	candidates := make([]candidate, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			candidates = append(candidates, candidate{i: i, j: j, d: dist(vertices[i], vertices[j])})
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].d < candidates[b].d })

	matched := make([]bool, n)
	remaining := n
	pairs := make([]Pair, 0, n/2)

	for _, c := range candidates {
		if remaining == 0 {
			break
		}
		if matched[c.i] || matched[c.j] {
			continue
		}
		matched[c.i] = true
		matched[c.j] = true
		remaining -= 2
		pairs = append(pairs, Pair{A: vertices[c.i], B: vertices[c.j]})
	}

	return pairs
}
