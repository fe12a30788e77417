package order

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

type MemStore struct {
	mu   sync.RWMutex
	m    map[string]Order
	next uint64
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Order{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	o.ID = strconv.FormatUint(s.next, 10)
	s.m[o.ID] = o
	return o, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.m[id]
	return o, ok, nil
}

func (s *MemStore) List(ctx context.Context, customerID string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.m))
	for _, o := range s.m {
		if customerID != "" && o.CustomerID != customerID {
			continue
		}
		out = append(out, o)
	}

	// Assigned ids are decimal strings, so a numeric sort restores
	// creation order.
	sort.Slice(out, func(i, j int) bool {
		ni, _ := strconv.ParseUint(out[i].ID, 10, 64)
		nj, _ := strconv.ParseUint(out[j].ID, 10, 64)
		return ni < nj
	})
	return out, nil
}

func (s *MemStore) UpdateStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}

	o.Status = status
	s.m[id] = o
	return nil
}
