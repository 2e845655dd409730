// Package routesolver orchestrates odd-vertex detection, all-pairs
// shortest paths among odd vertices, minimum-weight matching, graph
// augmentation, and Eulerian circuit extraction into a single Solve entry
// point, per spec.md §4.G.
//
// Solve is a total function over its inputs: no I/O, no global state, no
// suspension points beyond the caller-supplied cancellation check.
package routesolver

import (
	"errors"

	"github.com/phungdo/everystreet/eulerian"
	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/instructions"
	"github.com/phungdo/everystreet/streetgraph"
)

// Sentinel errors, matching spec.md §7's error kinds.
var (
	// ErrEmptyGraph indicates the graph has zero edges; fatal.
	ErrEmptyGraph = errors.New("routesolver: graph has no edges")

	// ErrUnreachableOdd indicates APSP could not connect two odd vertices
	// within the solved component; caused by a malformed (disconnected
	// within its own component) augmentation input and always fatal,
	// unlike the soft Disconnected diagnostic.
	ErrUnreachableOdd = errors.New("routesolver: odd vertex is unreachable from another odd vertex")

	// ErrOddCardinality indicates the detected odd-degree vertex set has
	// odd size, which violates the handshake lemma and signals a
	// malformed input graph; fatal.
	ErrOddCardinality = errors.New("routesolver: odd-degree vertex set has odd cardinality")

	// ErrCancelled indicates the caller's IsCancelled predicate returned
	// true between phases; non-fatal, caller-initiated.
	ErrCancelled = errors.New("routesolver: cancelled")
)

// Options configures a single Solve call.
type Options struct {
	// Start, if non-nil, is used as the Eulerian circuit's start node when
	// it exists in the graph's positive-degree component. See
	// spec.md §4.F's start-node selection policy.
	Start *streetgraph.NodeID

	// IsCancelled, if non-nil, is polled between major phases: odd-set
	// computation, each Dijkstra run, matching, augmentation, Hierholzer.
	// A true result aborts Solve with ErrCancelled and no partial result.
	IsCancelled func() bool

	// KExact overrides matching.DefaultKExact, the odd-set size ceiling
	// below which Solve runs exact branch-and-bound matching instead of
	// the greedy approximation (spec.md §4.D/§4.L). <= 0 uses the
	// package default.
	KExact int

	// MinTurnDistanceM overrides instructions.DefaultMinTurnDistance, the
	// accumulated distance (meters) before a turn instruction is emitted
	// (spec.md §4.H/§4.L). <= 0 uses the package default.
	MinTurnDistanceM float64
}

// RouteResult is the outcome of a successful Solve call.
type RouteResult struct {
	// Path is the concatenated polyline of every traversal's geometry, in
	// walk direction; the second geometry's first point is dropped on
	// every append after the first, since it duplicates the shared
	// endpoint.
	Path []geodesy.Point

	// EdgeOrder is the sequence of edge ids in the order the circuit
	// traverses them; every edge id of the solved component appears at
	// least once.
	EdgeOrder []streetgraph.EdgeID

	// Circuit is the full traversal sequence EdgeOrder was derived from,
	// retained for callers (InstructionGenerator among them) that need
	// node/geometry detail alongside the edge id sequence.
	Circuit []eulerian.EdgeTraversal

	// TotalDistance is the sum of edge lengths over EdgeOrder (duplicated
	// edges counted once per occurrence).
	TotalDistance float64

	// OriginalDistance is the sum of edge lengths over the solved
	// component's edges, counted once each. TotalDistance >=
	// OriginalDistance always holds for the solved component.
	OriginalDistance float64

	// DuplicateEdgeIDs holds the edge ids that occur more than once in
	// EdgeOrder (i.e. edges duplicated by augmentation), as a set.
	DuplicateEdgeIDs map[streetgraph.EdgeID]struct{}

	// Instructions is the turn-by-turn directive sequence derived from
	// Circuit; always starts with START and ends with ARRIVED.
	Instructions []instructions.Instruction

	// UnreachedEdgeIDs lists edges outside the solved component, when the
	// input graph was disconnected (spec.md §7's Disconnected diagnostic).
	// Empty for a connected graph.
	UnreachedEdgeIDs []streetgraph.EdgeID
}
