package report

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/corpora/pkg/corpora/analytics"
	"github.com/cognicore/corpora/pkg/corpora/store"
)

// Builder constructs reports with sortable unique IDs.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewBuilder creates a new report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Build creates a report from a frequency table. Items keep table order.
func (b *Builder) Build(title, kind, pattern string, t analytics.Table) store.Report {
	b.mu.Lock()
	now := b.now()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	r := store.Report{
		ID:        id,
		Title:     title,
		Kind:      kind,
		Pattern:   pattern,
		Items:     make([]store.Item, 0, len(t)),
		CreatedAt: now,
	}
	for _, it := range t {
		r.Items = append(r.Items, store.Item{Key: it.Key, Count: it.Count})
	}
	return r
}

// Table converts stored report items back into a frequency table.
func Table(r store.Report) analytics.Table {
	t := make(analytics.Table, 0, len(r.Items))
	for _, it := range r.Items {
		t = append(t, analytics.Item{Key: it.Key, Count: it.Count})
	}
	return t
}
