package store

import (
	"context"
	"time"
)

// Store persists generated reports. The corpus itself is never stored.
type Store interface {
	Close() error

	// SaveReport inserts or replaces a report keyed by ID.
	SaveReport(ctx context.Context, r Report) error
	// GetReport returns internalerr.ErrNotFound for unknown IDs.
	GetReport(ctx context.Context, id string) (Report, error)
	// ListReports returns the newest reports first. An empty kind matches
	// every kind; limit <= 0 means 10.
	ListReports(ctx context.Context, kind string, limit int) ([]Report, error)
}

// Report is one persisted analysis output.
type Report struct {
	ID        string
	Title     string
	Kind      string // token_counts, entity_counts, <key>_counts, statistics
	Pattern   string
	Items     []Item
	CreatedAt time.Time
}

// Item is a single key/frequency row of a report.
type Item struct {
	Key   string
	Count int
}

// DefaultListLimit applies when ListReports is called without a limit.
const DefaultListLimit = 10
