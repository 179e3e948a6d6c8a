// Package inmem is a map-backed history.Store, the in-memory
// counterpart to internal/history/sqlite, grounded on
// server/dao/inmem's repository style.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/symcalc/internal/history"
	"github.com/google/uuid"
)

type store struct {
	mu      sync.Mutex
	records map[uuid.UUID]history.Record
}

// New creates an empty, ready-to-use in-memory history.Store.
func New() history.Store {
	return &store{
		records: make(map[uuid.UUID]history.Record),
	}
}

func (s *store) Create(ctx context.Context, r history.Record) (history.Record, error) {
	newID, err := uuid.NewRandom()
	if err != nil {
		return history.Record{}, fmt.Errorf("could not generate ID: %w", err)
	}
	r.ID = newID
	r.Created = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
	return r, nil
}

func (s *store) GetByID(ctx context.Context, id uuid.UUID) (history.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return history.Record{}, history.ErrNotFound
	}
	return r, nil
}

func (s *store) GetAll(ctx context.Context) ([]history.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]history.Record, 0, len(s.records))
	for _, r := range s.records {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})
	return all, nil
}

func (s *store) Close() error {
	return nil
}
