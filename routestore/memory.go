package routestore

import (
	"context"
	"sync"
)

// InMemoryRouteStore is a map+mutex RouteStore backing unit tests and local
// runs without a database, the way erenceh's mock distance provider backs
// handler tests without calling the real ORS API.
type InMemoryRouteStore struct {
	mu       sync.RWMutex
	routes   map[string]StoredRoute
	progress map[string]SurveyProgress
}

// NewInMemoryRouteStore returns an empty InMemoryRouteStore.
func NewInMemoryRouteStore() *InMemoryRouteStore {
	return &InMemoryRouteStore{
		routes:   make(map[string]StoredRoute),
		progress: make(map[string]SurveyProgress),
	}
}

func (s *InMemoryRouteStore) Save(_ context.Context, r StoredRoute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[r.ID] = r
	return nil
}

func (s *InMemoryRouteStore) Get(_ context.Context, id string) (StoredRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.routes[id]
	if !ok {
		return StoredRoute{}, ErrNotFound
	}
	return r, nil
}

func (s *InMemoryRouteStore) ListByArea(_ context.Context, areaName string) ([]StoredRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []StoredRoute
	for _, r := range s.routes {
		if r.AreaName == areaName {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *InMemoryRouteStore) SaveProgress(_ context.Context, p SurveyProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[p.RouteID] = p
	return nil
}

func (s *InMemoryRouteStore) LoadProgress(_ context.Context, routeID string) (SurveyProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[routeID]
	if !ok {
		return SurveyProgress{}, ErrNotFound
	}
	return p, nil
}
