// Package instructions converts an Eulerian edge-traversal sequence into a
// sequence of turn directives, using bearing analysis and street-name
// change detection, per spec.md §4.H.
package instructions

import (
	"errors"

	"github.com/phungdo/everystreet/eulerian"
	"github.com/phungdo/everystreet/geodesy"
	"github.com/phungdo/everystreet/streetgraph"
)

// ErrEmptyCircuit indicates Generate was called with no traversals; a
// circuit must contain at least one edge to produce START/ARRIVED.
var ErrEmptyCircuit = errors.New("instructions: circuit has no traversals")

// DefaultMinTurnDistance is the minimum accumulated distance (meters)
// before a turn instruction is emitted, suppressing spam at densely
// subdivided OSM ways that share the same logical street. Used by Generate
// when the caller passes minTurnDistance <= 0.
const DefaultMinTurnDistance = 20.0

// Kind enumerates the directive classes an Instruction can carry.
type Kind string

const (
	Start       Kind = "START"
	Continue    Kind = "CONTINUE"
	SlightLeft  Kind = "SLIGHT_LEFT"
	SlightRight Kind = "SLIGHT_RIGHT"
	TurnLeft    Kind = "TURN_LEFT"
	TurnRight   Kind = "TURN_RIGHT"
	SharpLeft   Kind = "SHARP_LEFT"
	SharpRight  Kind = "SHARP_RIGHT"
	UTurn       Kind = "U_TURN"
	Arrived     Kind = "ARRIVED"
)

// Instruction is a single turn-by-turn directive.
type Instruction struct {
	Kind       Kind
	StreetName string // empty means "no name"
	Distance   float64
	Location   geodesy.Point
	Bearing    float64
}

// Generate produces the instruction sequence for circuit. g is unused by
// the classification itself (all geometry needed lives on the traversals'
// edges) but is accepted for symmetry with routesolver.Solve and to allow
// future enrichment (e.g. looking up node metadata). minTurnDistance <= 0
// falls back to DefaultMinTurnDistance.
func Generate(circuit []eulerian.EdgeTraversal, _ *streetgraph.Graph, minTurnDistance float64) ([]Instruction, error) {
	if len(circuit) == 0 {
		return nil, ErrEmptyCircuit
	}
	if minTurnDistance <= 0 {
		minTurnDistance = DefaultMinTurnDistance
	}

	first := circuit[0]
	firstGeom := first.Geometry()
	out := []Instruction{
		{
			Kind:       Start,
			StreetName: first.Edge.Name,
			Distance:   first.Edge.Length,
			Location:   firstGeom[0],
			Bearing:    geodesy.Bearing(firstGeom[0], firstGeom[1]),
		},
	}

	var acc float64
	for i := 0; i < len(circuit); i++ {
		if i+1 == len(circuit) {
			break
		}
		cur := circuit[i]
		nxt := circuit[i+1]
		acc += cur.Edge.Length

		curGeom := cur.Geometry()
		nxtGeom := nxt.Geometry()

		bearingOutOfCur := geodesy.Bearing(curGeom[len(curGeom)-2], curGeom[len(curGeom)-1])
		bearingIntoNxt := geodesy.Bearing(nxtGeom[0], nxtGeom[1])
		delta := geodesy.NormaliseAngle(bearingIntoNxt - bearingOutOfCur)

		kind := classify(delta)
		streetChanged := cur.Edge.Name != nxt.Edge.Name && nxt.Edge.Name != ""

		if (kind != Continue || streetChanged) && acc >= minTurnDistance {
			out = append(out, Instruction{
				Kind:       kind,
				StreetName: nxt.Edge.Name,
				Distance:   acc,
				Location:   curGeom[len(curGeom)-1],
				Bearing:    bearingIntoNxt,
			})
			acc = 0
		}
	}

	last := circuit[len(circuit)-1]
	lastGeom := last.Geometry()
	out = append(out, Instruction{
		Kind:     Arrived,
		Distance: acc,
		Location: lastGeom[len(lastGeom)-1],
		Bearing:  0,
	})

	return out, nil
}

// classify buckets a signed turn angle delta (degrees, from
// geodesy.NormaliseAngle) into a Kind. Positive delta is a turn to the
// right, negative to the left.
func classify(delta float64) Kind {
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs < 15:
		return Continue
	case abs < 45:
		if delta > 0 {
			return SlightRight
		}
		return SlightLeft
	case abs < 120:
		if delta > 0 {
			return TurnRight
		}
		return TurnLeft
	case abs < 160:
		if delta > 0 {
			return SharpRight
		}
		return SharpLeft
	default:
		return UTurn
	}
}
