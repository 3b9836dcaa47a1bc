package analytics

import (
	"math"
	"strconv"

	"github.com/cognicore/corpora/pkg/corpora/corpus"
)

// Metadata keys reported by Summarize when present.
const (
	KeyPublicationYear = "publicationYear"
	KeyPageCount       = "pageCount"
)

// Range is the numeric span of a metadata field. Valid is false when no
// document carried a numeric value for it.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// Summary holds basic corpus statistics.
type Summary struct {
	Documents       int            `json:"documents"`
	Tokens          int            `json:"tokens"`
	UniqueTokens    int            `json:"unique_tokens"`
	Entities        int            `json:"entities"`
	UniqueEntities  int            `json:"unique_entities"`
	PublicationYear Range          `json:"publication_year"`
	PageCount       Range          `json:"page_count"`
	Languages       map[string]int `json:"languages,omitempty"`
}

// Summarize computes basic statistics using the given policies.
func Summarize(c *corpus.Corpus, tokens, entities Policy) Summary {
	tokenTable := TokenFrequencies(c, tokens)
	entityTable := EntityFrequencies(c, entities)

	s := Summary{
		Documents:       c.Len(),
		Tokens:          tokenTable.Total(),
		UniqueTokens:    len(tokenTable),
		Entities:        entityTable.Total(),
		UniqueEntities:  len(entityTable),
		PublicationYear: NumericRange(MetadataFrequencies(c, KeyPublicationYear)),
		PageCount:       NumericRange(MetadataFrequencies(c, KeyPageCount)),
	}

	c.Each(func(_ string, e corpus.Entry) {
		if e.Doc == nil || e.Doc.Language == "" {
			return
		}
		if s.Languages == nil {
			s.Languages = make(map[string]int)
		}
		s.Languages[e.Doc.Language]++
	})
	return s
}

// NumericRange returns the min and max of the table keys that parse as
// numbers. Non-numeric keys are ignored.
func NumericRange(t Table) Range {
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, it := range t {
		v, err := strconv.ParseFloat(it.Key, 64)
		if err != nil {
			continue
		}
		r.Valid = true
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	if !r.Valid {
		return Range{}
	}
	return r
}
