package ingest

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Taxonomy handles keyword-driven entity recognition
type Taxonomy struct {
	entities map[string]map[string][]string // label → name → keywords (lowercase)
}

// NewTaxonomy creates a new taxonomy from configuration
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		entities: make(map[string]map[string][]string),
	}
}

// AddEntity registers a named entity under a label with its keywords.
// The name itself is always matched.
func (t *Taxonomy) AddEntity(label, name string, keywords []string) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if t.entities[label] == nil {
		t.entities[label] = make(map[string][]string)
	}
	normalized := []string{strings.ToLower(name)}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && kw != normalized[0] {
			normalized = append(normalized, kw)
		}
	}
	t.entities[label][name] = normalized
}

// Labels returns all configured entity labels.
func (t *Taxonomy) Labels() []string {
	labels := make([]string, 0, len(t.entities))
	for l := range t.entities {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

var quantityPattern = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s?(?:kg|kilograms?|g|grams?|km|kilometers?|kilometres?|m|meters?|metres?|cm|mm|mi|miles?|ft|feet|foot|inch(?:es)?|lbs?|pounds?|tons?|tonnes?|acres?|hectares?|litres?|liters?|gallons?)\b`)

type span struct {
	start, end int
	entity     Entity
}

// ExtractEntities finds every keyword occurrence and quantity span in the
// text, ordered by position. Keyword matches report the entity's configured
// name. Overlapping matches keep the longest span.
func (t *Taxonomy) ExtractEntities(text string) []Entity {
	return t.extract(text, nil)
}

// extract is ExtractEntities with additional candidate spans competing in
// the same overlap resolution.
func (t *Taxonomy) extract(text string, extra []span) []Entity {
	lowerText := strings.ToLower(text)
	spans := append([]span(nil), extra...)

	for label, named := range t.entities {
		for name, keywords := range named {
			for _, kw := range keywords {
				for _, idx := range findAll(lowerText, kw) {
					spans = append(spans, span{start: idx, end: idx + len(kw), entity: Entity{Text: name, Label: label}})
				}
			}
		}
	}

	for _, loc := range quantityPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, span{start: loc[0], end: loc[1], entity: Entity{Text: text[loc[0]:loc[1]], Label: LabelQuantity}})
	}

	sort.Slice(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		if a.entity.Label != b.entity.Label {
			return a.entity.Label < b.entity.Label
		}
		return a.entity.Text < b.entity.Text
	})

	entities := make([]Entity, 0, len(spans))
	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		entities = append(entities, s.entity)
		lastEnd = s.end
	}
	return entities
}

// findAll returns byte offsets of kw in text at word boundaries.
func findAll(text, kw string) []int {
	if kw == "" {
		return nil
	}
	var out []int
	offset := 0
	for {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return out
		}
		start := offset + i
		end := start + len(kw)
		if isBoundary(text, start-1, true) && isBoundary(text, end, false) {
			out = append(out, start)
		}
		offset = start + 1
	}
}

func isBoundary(text string, pos int, before bool) bool {
	if pos < 0 || pos >= len(text) {
		return true
	}
	var r rune
	if before {
		r, _ = utf8.DecodeLastRuneInString(text[:pos+1])
	} else {
		r, _ = utf8.DecodeRuneInString(text[pos:])
	}
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}
