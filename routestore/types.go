// Package routestore persists RouteResult computations and survey
// progress, per spec.md §4.J. The core routesolver package never reads or
// writes this state directly; it is a domain/ambient concern layered on
// top.
package routestore

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/phungdo/everystreet/routesolver"
	"github.com/phungdo/everystreet/streetgraph"
)

// ErrNotFound indicates no StoredRoute or SurveyProgress exists for the
// requested id.
var ErrNotFound = errors.New("routestore: not found")

// Status is the lifecycle stage of a StoredRoute.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// StoredRoute wraps a routesolver.RouteResult with caller-supplied metadata
// for persistence (spec.md §3's "caller-supplied metadata" addition).
type StoredRoute struct {
	ID        string
	AreaName  string
	RouteName string
	CreatedAt time.Time
	Status    Status
	Result    routesolver.RouteResult
}

// SurveyProgress is an opaque checkpoint of how much of a route has been
// covered so far. The core never inspects it; it exists purely for
// routestore callers to resume an in-progress survey.
type SurveyProgress struct {
	RouteID        string
	CoveredEdgeIDs []streetgraph.EdgeID
	LastPosition   streetgraph.NodeID
	UpdatedAt      time.Time
}

// DefaultVAvgKMH is the average speed EstimatedTimeMillis assumes when
// avgKMH <= 0 (spec.md §4.H/§4.L).
const DefaultVAvgKMH = 30.0

// EstimatedTimeMillis converts a total route distance (meters) into an
// estimated traversal time (milliseconds) at a constant average speed, per
// spec.md §4.H: round(total_distance_m / 1000 / avgKMH * 3,600,000). This
// is a derived convenience surfaced to route-store callers, not part of
// routesolver's algorithmic contract. avgKMH <= 0 falls back to
// DefaultVAvgKMH.
func EstimatedTimeMillis(totalDistanceM, avgKMH float64) int64 {
	if avgKMH <= 0 {
		avgKMH = DefaultVAvgKMH
	}
	return int64(math.Round(totalDistanceM / 1000 / avgKMH * 3_600_000))
}

// RouteStore is the persistence port: save/retrieve StoredRoute and
// SurveyProgress values. Concrete adapters are PostgresRouteStore (4.J)
// and InMemoryRouteStore (test double).
type RouteStore interface {
	Save(ctx context.Context, r StoredRoute) error
	Get(ctx context.Context, id string) (StoredRoute, error)
	ListByArea(ctx context.Context, areaName string) ([]StoredRoute, error)
	SaveProgress(ctx context.Context, p SurveyProgress) error
	LoadProgress(ctx context.Context, routeID string) (SurveyProgress, error)
}
