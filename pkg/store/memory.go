package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process view store for development and testing.
type MemoryStore struct {
	mu    sync.RWMutex
	views map[string]View
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{views: make(map[string]View)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.views[id]
	if !ok {
		return nil, nil
	}
	// Copy so callers can't mutate stored state.
	view := stored
	view.Allocations = append(view.Allocations[:0:0], stored.Allocations...)
	return &view, nil
}

func (s *MemoryStore) Save(ctx context.Context, view *View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *view
	stored.Allocations = append(stored.Allocations[:0:0], view.Allocations...)
	s.views[view.ID] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.views, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]View, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID < views[j].ID
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
