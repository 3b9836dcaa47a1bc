package analytics

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cognicore/corpora/pkg/corpora/corpus"
)

// Item is one row of a frequency table.
type Item struct {
	Key   string `json:"item"`
	Count int    `json:"frequency"`
}

// Table is an ordered frequency table with unique keys.
type Table []Item

// Total returns the sum of all counts.
func (t Table) Total() int {
	sum := 0
	for _, it := range t {
		sum += it.Count
	}
	return sum
}

// Map returns the table as key → count.
func (t Table) Map() map[string]int {
	out := make(map[string]int, len(t))
	for _, it := range t {
		out[it.Key] = it.Count
	}
	return out
}

// counter accumulates counts while remembering first-seen order.
type counter struct {
	index map[string]int
	items Table
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) inc(key string) {
	if i, ok := c.index[key]; ok {
		c.items[i].Count++
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, Item{Key: key, Count: 1})
}

func (c *counter) table() Table {
	if c.items == nil {
		return Table{}
	}
	return c.items
}

// TokenFrequencies counts token texts across every annotated document,
// skipping tokens whose category the policy excludes. Items appear in the
// order they were first seen while walking the corpus.
func TokenFrequencies(c *corpus.Corpus, p Policy) Table {
	m := p.matcher(TokenContent)
	counts := newCounter()
	c.Each(func(_ string, e corpus.Entry) {
		if e.Doc == nil {
			return
		}
		for _, tok := range e.Doc.Tokens {
			if m.skip(tok.Category) {
				continue
			}
			counts.inc(tok.Text)
		}
	})
	return counts.table()
}

// EntityFrequencies counts entity texts, skipping labels the policy excludes.
func EntityFrequencies(c *corpus.Corpus, p Policy) Table {
	m := p.matcher(EntityContent)
	counts := newCounter()
	c.Each(func(_ string, e corpus.Entry) {
		if e.Doc == nil {
			return
		}
		for _, ent := range e.Doc.Entities {
			if m.skip(ent.Label) {
				continue
			}
			counts.inc(ent.Text)
		}
	})
	return counts.table()
}

// MetadataFrequencies counts the values stored under key in each entry's
// metadata. Entries without metadata or without the key are skipped.
func MetadataFrequencies(c *corpus.Corpus, key string) Table {
	counts := newCounter()
	c.Each(func(_ string, e corpus.Entry) {
		if e.Metadata == nil {
			return
		}
		v, ok := e.Metadata[key]
		if !ok {
			return
		}
		counts.inc(FormatValue(v))
	})
	return counts.table()
}

// FormatValue renders a metadata value as a table key. Numbers keep their
// literal JSON form, so 2001 stays "2001" rather than "2001.000000".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case int, int64, int32, uint, uint64, uint32:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
