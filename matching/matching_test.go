package matching_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phungdo/everystreet/matching"
	"github.com/phungdo/everystreet/streetgraph"
)

// lineDist places nodes on a line at the given positions so pairwise
// distance is just the absolute difference — deterministic and easy to
// brute-force against.
func lineDist(positions map[streetgraph.NodeID]float64) matching.DistanceFunc {
	return func(a, b streetgraph.NodeID) float64 {
		d := positions[a] - positions[b]
		if d < 0 {
			d = -d
		}
		return d
	}
}

func TestMatchEmpty(t *testing.T) {
	pairs, err := matching.Match(nil, nil, 0)
	require.NoError(t, err)
	require.Empty(t, pairs)
}

func TestMatchOddCardinality(t *testing.T) {
	_, err := matching.Match([]streetgraph.NodeID{1, 2, 3}, func(a, b streetgraph.NodeID) float64 { return 1 }, 0)
	require.True(t, errors.Is(err, matching.ErrOddCardinality))
}

func TestMatchPair(t *testing.T) {
	pairs, err := matching.Match([]streetgraph.NodeID{1, 2}, func(a, b streetgraph.NodeID) float64 { return 5 }, 0)
	require.NoError(t, err)
	require.Equal(t, []matching.Pair{{A: 1, B: 2}}, pairs)
}

// bruteForceMinWeight enumerates every perfect matching directly and
// returns its minimum total weight, for comparison against the exact
// solver's output.
func bruteForceMinWeight(nodes []streetgraph.NodeID, dist matching.DistanceFunc) float64 {
	n := len(nodes)
	used := make([]bool, n)
	best := math.Inf(1)

	var recurse func(depth int, cost float64)
	recurse = func(depth int, cost float64) {
		if cost >= best {
			return
		}
		if depth == n {
			best = cost
			return
		}
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
			recurse(depth+2, cost+dist(nodes[i], nodes[j]))
			used[j] = false
		}
		used[i] = false
	}
	recurse(0, 0)

	return best
}

func totalWeight(pairs []matching.Pair, dist matching.DistanceFunc) float64 {
	var total float64
	for _, p := range pairs {
		total += dist(p.A, p.B)
	}
	return total
}

func TestMatchExactIsOptimalOnSmallCases(t *testing.T) {
	positions := map[streetgraph.NodeID]float64{
		1: 0, 2: 1, 3: 5, 4: 6, 5: 20, 6: 21, 7: 40, 8: 41,
	}
	nodes := []streetgraph.NodeID{1, 2, 3, 4, 5, 6, 7, 8}
	dist := lineDist(positions)

	pairs, err := matching.Match(nodes, dist, 0)
	require.NoError(t, err)
	require.Len(t, pairs, len(nodes)/2)

	got := totalWeight(pairs, dist)
	want := bruteForceMinWeight(nodes, dist)
	require.InDelta(t, want, got, 1e-9)

	// Every node covered exactly once.
	seen := make(map[streetgraph.NodeID]int)
	for _, p := range pairs {
		seen[p.A]++
		seen[p.B]++
	}
	for _, n := range nodes {
		require.Equal(t, 1, seen[n])
	}
}

func TestMatchGreedyAboveKExactCoversAllVertices(t *testing.T) {
	n := matching.DefaultKExact + 6 // force greedy path
	nodes := make([]streetgraph.NodeID, n)
	positions := make(map[streetgraph.NodeID]float64, n)
	for i := 0; i < n; i++ {
		nodes[i] = streetgraph.NodeID(i + 1)
		positions[nodes[i]] = float64(i)
	}
	dist := lineDist(positions)

	pairs, err := matching.Match(nodes, dist, 0)
	require.NoError(t, err)
	require.Len(t, pairs, n/2)

	seen := make(map[streetgraph.NodeID]int)
	for _, p := range pairs {
		seen[p.A]++
		seen[p.B]++
	}
	for _, id := range nodes {
		require.Equal(t, 1, seen[id])
	}
}
