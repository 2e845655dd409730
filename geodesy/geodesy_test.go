package geodesy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phungdo/everystreet/geodesy"
)

func TestDistanceSymmetric(t *testing.T) {
	a := geodesy.Point{Lat: 51.5007, Lng: -0.1246}
	b := geodesy.Point{Lat: 51.5033, Lng: -0.1195}

	require.InDelta(t, geodesy.Distance(a, b), geodesy.Distance(b, a), 1e-9)
}

func TestDistanceSingleEdgeLength(t *testing.T) {
	// Nodes {1@(0,0), 2@(0.001, 0)} from the single-edge scenario: len ~= 111.19m.
	a := geodesy.Point{Lat: 0, Lng: 0}
	b := geodesy.Point{Lat: 0.001, Lng: 0}

	d := geodesy.Distance(a, b)
	require.InDelta(t, 111.19, d, 0.1)
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := geodesy.Point{Lat: 10, Lng: 20}
	require.Equal(t, 0.0, geodesy.Distance(p, p))
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := geodesy.Point{Lat: 0, Lng: 0}

	cases := []struct {
		name string
		to   geodesy.Point
		want float64
	}{
		{"north", geodesy.Point{Lat: 1, Lng: 0}, 0},
		{"east", geodesy.Point{Lat: 0, Lng: 1}, 90},
		{"south", geodesy.Point{Lat: -1, Lng: 0}, 180},
		{"west", geodesy.Point{Lat: 0, Lng: -1}, 270},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := geodesy.Bearing(origin, c.to)
			require.InDelta(t, c.want, got, 0.5)
		})
	}
}

func TestBearingRangeIsHalfOpen(t *testing.T) {
	a := geodesy.Point{Lat: 48.8566, Lng: 2.3522}
	b := geodesy.Point{Lat: 48.8606, Lng: 2.3376}

	got := geodesy.Bearing(a, b)
	require.GreaterOrEqual(t, got, 0.0)
	require.Less(t, got, 360.0)
}

func TestNormaliseAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{-181, 179},
		{350, -10},
		{-350, 10},
		{720, 0},
	}

	for _, c := range cases {
		got := geodesy.NormaliseAngle(c.in)
		require.InDelta(t, c.want, got, 1e-9, "NormaliseAngle(%v)", c.in)
		require.Greater(t, got, -180.0-1e-9)
		require.LessOrEqual(t, got, 180.0+1e-9)
	}
}

func TestNormaliseAngleNeverNaN(t *testing.T) {
	for d := -720.0; d <= 720.0; d += 17.0 {
		got := geodesy.NormaliseAngle(d)
		require.False(t, math.IsNaN(got))
	}
}
