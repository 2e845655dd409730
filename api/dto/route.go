// Package dto holds the JSON request/response shapes for the api package,
// kept separate from routesolver/routestore's domain types the way
// erenceh-delivery-route-api/internal/api/dto does.
package dto

import (
	"time"

	"github.com/phungdo/everystreet/graphsource"
	"github.com/phungdo/everystreet/streetgraph"
)

// SolveRequest is the body of POST /routes/solve.
type SolveRequest struct {
	AreaName  string                  `json:"area_name"`
	RouteName string                  `json:"route_name"`
	Bbox      graphsource.BoundingBox `json:"bbox"`
}

// SolveResponse is the body returned by POST /routes/solve and GET
// /routes/{id}: the stored route plus a partial flag surfaced whenever the
// solve ran on a reachable subset of a disconnected graph (spec.md §7).
type SolveResponse struct {
	ID               string               `json:"id"`
	AreaName         string               `json:"area_name"`
	RouteName        string               `json:"route_name"`
	CreatedAt        time.Time            `json:"created_at"`
	Status           string               `json:"status"`
	EdgeOrder        []streetgraph.EdgeID `json:"edge_order"`
	TotalDistance    float64              `json:"total_distance"`
	OriginalDistance float64              `json:"original_distance"`
	EstimatedTimeMs  int64                `json:"estimated_time_ms"`
	Partial          bool                 `json:"partial"`
	UnreachedEdgeIDs []streetgraph.EdgeID `json:"unreached_edge_ids,omitempty"`
}

// ListRoutesResponse is the body of GET /routes?area={name}.
type ListRoutesResponse struct {
	Routes []SolveResponse `json:"routes"`
}

// ProgressRequest is the body of POST /routes/{id}/progress.
type ProgressRequest struct {
	CoveredEdgeIDs []streetgraph.EdgeID `json:"covered_edge_ids"`
	LastPosition   streetgraph.NodeID   `json:"last_position"`
}
