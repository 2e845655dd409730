package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/phungdo/everystreet/api/dto"
	"github.com/phungdo/everystreet/graphsource"
	"github.com/phungdo/everystreet/routesolver"
	"github.com/phungdo/everystreet/routestore"
)

// RouteHandler exposes the solve/read/progress endpoints, coordinating
// graph ingestion, solving, and persistence (spec.md §4.K).
type RouteHandler struct {
	Store  routestore.RouteStore
	Source graphsource.Source

	// KExact and MinTurnDistanceM are the config.Config-sourced overrides
	// passed into routesolver.Options for every Solve call (spec.md
	// §4.D/§4.H/§4.L). Zero values fall back to each package's default.
	KExact           int
	MinTurnDistanceM float64

	// VAvgKMH is the average speed used to derive estimated_time_ms for
	// every response (spec.md §4.H/§4.L). Zero falls back to
	// routestore.DefaultVAvgKMH.
	VAvgKMH float64
}

// Solve handles POST /routes/solve: fetches the graph, runs routesolver,
// persists the result, and returns it.
func (h *RouteHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req dto.SolveRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if req.AreaName == "" {
		writeError(w, r, http.StatusBadRequest, "area_name is required")
		return
	}

	g, err := h.Source.Fetch(r.Context(), req.Bbox)
	if err != nil {
		log.Printf("fetch graph failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "fetching street graph failed")
		return
	}

	result, err := routesolver.Solve(g, routesolver.Options{
		KExact:           h.KExact,
		MinTurnDistanceM: h.MinTurnDistanceM,
	})
	if err != nil {
		status, msg := solveErrorStatus(err)
		writeError(w, r, status, msg)
		return
	}

	stored := routestore.StoredRoute{
		ID:        newRouteID(),
		AreaName:  req.AreaName,
		RouteName: req.RouteName,
		CreatedAt: time.Now().UTC(),
		Status:    routestore.StatusDraft,
		Result:    *result,
	}

	if err := h.Store.Save(r.Context(), stored); err != nil {
		log.Printf("save route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, h.toSolveResponse(stored))
}

// Get handles GET /routes/{id}.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	route, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, routestore.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "route not found")
			return
		}
		log.Printf("get route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, h.toSolveResponse(route))
}

// List handles GET /routes?area={name}.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("area")
	if area == "" {
		writeError(w, r, http.StatusBadRequest, "area query parameter is required")
		return
	}

	routes, err := h.Store.ListByArea(r.Context(), area)
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.SolveResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, h.toSolveResponse(route))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// SaveProgress handles POST /routes/{id}/progress.
func (h *RouteHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req dto.ProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	progress := routestore.SurveyProgress{
		RouteID:        id,
		CoveredEdgeIDs: req.CoveredEdgeIDs,
		LastPosition:   req.LastPosition,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := h.Store.SaveProgress(r.Context(), progress); err != nil {
		log.Printf("save progress failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "saved"})
}

// solveErrorStatus maps routesolver sentinel errors to HTTP statuses per
// spec.md §7: EmptyGraph/OddCardinality are malformed-input errors (422);
// Cancelled reflects a caller-initiated abort, represented as 503 since
// net/http has no 499. UnreachableOdd is also fatal in this implementation
// (no partial result exists to return), so it maps alongside the other
// 422s rather than the soft 200-partial path the Disconnected diagnostic
// takes (that one never becomes an error at all: a disconnected graph
// solves successfully with RouteResult.UnreachedEdgeIDs populated).
func solveErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, routesolver.ErrEmptyGraph):
		return http.StatusUnprocessableEntity, "graph has no edges"
	case errors.Is(err, routesolver.ErrOddCardinality):
		return http.StatusUnprocessableEntity, "odd-degree vertex set has odd cardinality"
	case errors.Is(err, routesolver.ErrUnreachableOdd):
		return http.StatusUnprocessableEntity, "an odd-degree vertex is unreachable within its component"
	case errors.Is(err, routesolver.ErrCancelled):
		return http.StatusServiceUnavailable, "request was cancelled"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *RouteHandler) toSolveResponse(r routestore.StoredRoute) dto.SolveResponse {
	return dto.SolveResponse{
		ID:               r.ID,
		AreaName:         r.AreaName,
		RouteName:        r.RouteName,
		CreatedAt:        r.CreatedAt,
		Status:           string(r.Status),
		EdgeOrder:        r.Result.EdgeOrder,
		TotalDistance:    r.Result.TotalDistance,
		OriginalDistance: r.Result.OriginalDistance,
		EstimatedTimeMs:  routestore.EstimatedTimeMillis(r.Result.TotalDistance, h.VAvgKMH),
		Partial:          len(r.Result.UnreachedEdgeIDs) > 0,
		UnreachedEdgeIDs: r.Result.UnreachedEdgeIDs,
	}
}

func newRouteID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
