package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/corpora/pkg/corpora/internalerr"
	"github.com/cognicore/corpora/pkg/corpora/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	reports map[string]store.Report
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		reports: make(map[string]store.Report),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveReport inserts or replaces a report.
func (s *Store) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report id is empty", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.ID] = copyReport(r)
	return nil
}

// GetReport returns a report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return store.Report{}, fmt.Errorf("%w: report %s", internalerr.ErrNotFound, id)
	}
	return copyReport(r), nil
}

// ListReports returns reports newest first. IDs are ULIDs, so ID order is
// creation order.
func (s *Store) ListReports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Report, 0, len(s.reports))
	for _, r := range s.reports {
		if kind != "" && r.Kind != kind {
			continue
		}
		out = append(out, copyReport(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyReport(r store.Report) store.Report {
	r.Items = append([]store.Item(nil), r.Items...)
	return r
}
