package routestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresRouteStore is the RouteStore adapter backed by database/sql over
// the pgx stdlib driver, storing RouteResult and SurveyProgress as JSONB
// alongside indexed metadata columns (spec.md §4.J).
type PostgresRouteStore struct {
	DB *sql.DB
}

// NewPostgresRouteStore wraps an already-opened *sql.DB (see OpenPostgres).
func NewPostgresRouteStore(db *sql.DB) *PostgresRouteStore {
	return &PostgresRouteStore{DB: db}
}

func (s *PostgresRouteStore) Save(ctx context.Context, r StoredRoute) error {
	resultJSON, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("routestore: marshal route result: %w", err)
	}

	const q = `
	INSERT INTO routes (id, area_name, route_name, created_at, status, result)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		area_name = EXCLUDED.area_name,
		route_name = EXCLUDED.route_name,
		status = EXCLUDED.status,
		result = EXCLUDED.result
	`
	if _, err := s.DB.ExecContext(ctx, q, r.ID, r.AreaName, r.RouteName, r.CreatedAt, r.Status, resultJSON); err != nil {
		return fmt.Errorf("routestore: save route %s: %w", r.ID, err)
	}
	return nil
}

func (s *PostgresRouteStore) Get(ctx context.Context, id string) (StoredRoute, error) {
	const q = `
	SELECT id, area_name, route_name, created_at, status, result
	FROM routes WHERE id = $1
	`
	row := s.DB.QueryRowContext(ctx, q, id)
	return scanRoute(row)
}

func (s *PostgresRouteStore) ListByArea(ctx context.Context, areaName string) ([]StoredRoute, error) {
	const q = `
	SELECT id, area_name, route_name, created_at, status, result
	FROM routes WHERE area_name = $1 ORDER BY created_at DESC
	`
	rows, err := s.DB.QueryContext(ctx, q, areaName)
	if err != nil {
		return nil, fmt.Errorf("routestore: list routes for area %s: %w", areaName, err)
	}
	defer rows.Close()

	out := make([]StoredRoute, 0, 16)
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routestore: row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresRouteStore) SaveProgress(ctx context.Context, p SurveyProgress) error {
	coveredJSON, err := json.Marshal(p.CoveredEdgeIDs)
	if err != nil {
		return fmt.Errorf("routestore: marshal covered edges: %w", err)
	}
	positionJSON, err := json.Marshal(p.LastPosition)
	if err != nil {
		return fmt.Errorf("routestore: marshal last position: %w", err)
	}

	const q = `
	INSERT INTO survey_progress (route_id, covered_edge_ids, last_position, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (route_id) DO UPDATE SET
		covered_edge_ids = EXCLUDED.covered_edge_ids,
		last_position = EXCLUDED.last_position,
		updated_at = EXCLUDED.updated_at
	`
	if _, err := s.DB.ExecContext(ctx, q, p.RouteID, coveredJSON, positionJSON, p.UpdatedAt); err != nil {
		return fmt.Errorf("routestore: save progress for route %s: %w", p.RouteID, err)
	}
	return nil
}

func (s *PostgresRouteStore) LoadProgress(ctx context.Context, routeID string) (SurveyProgress, error) {
	const q = `
	SELECT route_id, covered_edge_ids, last_position, updated_at
	FROM survey_progress WHERE route_id = $1
	`
	var p SurveyProgress
	var coveredJSON, positionJSON []byte

	row := s.DB.QueryRowContext(ctx, q, routeID)
	if err := row.Scan(&p.RouteID, &coveredJSON, &positionJSON, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SurveyProgress{}, ErrNotFound
		}
		return SurveyProgress{}, fmt.Errorf("routestore: load progress for route %s: %w", routeID, err)
	}

	if err := json.Unmarshal(coveredJSON, &p.CoveredEdgeIDs); err != nil {
		return SurveyProgress{}, fmt.Errorf("routestore: unmarshal covered edges: %w", err)
	}
	if err := json.Unmarshal(positionJSON, &p.LastPosition); err != nil {
		return SurveyProgress{}, fmt.Errorf("routestore: unmarshal last position: %w", err)
	}

	return p, nil
}

// rowScanner abstracts over *sql.Row and *sql.Rows, both of which satisfy it.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (StoredRoute, error) {
	var r StoredRoute
	var status string
	var resultJSON []byte

	if err := row.Scan(&r.ID, &r.AreaName, &r.RouteName, &r.CreatedAt, &status, &resultJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredRoute{}, ErrNotFound
		}
		return StoredRoute{}, fmt.Errorf("routestore: scan route row: %w", err)
	}
	r.Status = Status(status)

	if err := json.Unmarshal(resultJSON, &r.Result); err != nil {
		return StoredRoute{}, fmt.Errorf("routestore: unmarshal route result: %w", err)
	}

	return r, nil
}
