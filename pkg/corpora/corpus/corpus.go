package corpus

import (
	"fmt"
	"strings"

	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

// Entry is the corpus value for one document. Either field may be nil.
type Entry struct {
	Metadata map[string]any
	Doc      *ingest.Doc
}

// Record pairs a document identifier with its entry, as produced by loaders.
type Record struct {
	ID    string
	Entry Entry
}

// Corpus maps document identifiers to entries. Identifiers keep the slot of
// their first insertion so iteration is deterministic; later writes to the
// same identifier replace the entry (last write wins).
type Corpus struct {
	entries map[string]Entry
	order   []string
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{entries: make(map[string]Entry)}
}

// Put stores an entry, overwriting any entry with the same identifier.
// It reports whether an existing entry was replaced.
func (c *Corpus) Put(id string, e Entry) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, fmt.Errorf("%w: empty document identifier", internalerr.ErrInvalidInput)
	}
	_, exists := c.entries[id]
	if !exists {
		c.order = append(c.order, id)
	}
	c.entries[id] = e
	return exists, nil
}

// Merge stores every record and returns the identifiers that overwrote an
// existing entry. Records with empty identifiers are skipped.
func (c *Corpus) Merge(records []Record) (overwritten []string) {
	for _, r := range records {
		replaced, err := c.Put(r.ID, r.Entry)
		if err != nil {
			continue
		}
		if replaced {
			overwritten = append(overwritten, r.ID)
		}
	}
	return overwritten
}

// Get returns the entry for id.
func (c *Corpus) Get(id string) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// IDs returns identifiers in first-insertion order.
func (c *Corpus) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Each calls fn for every entry in first-insertion order.
func (c *Corpus) Each(fn func(id string, e Entry)) {
	if c == nil {
		return
	}
	for _, id := range c.order {
		fn(id, c.entries[id])
	}
}
