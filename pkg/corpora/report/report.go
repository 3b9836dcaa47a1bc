// Package report turns frequency tables into artifacts and persisted
// reports.
package report

import (
	"github.com/cognicore/corpora/pkg/corpora/analytics"
)

// Artifact and report kind names.
const (
	KindTokenCounts    = "token_counts"
	KindEntityCounts   = "entity_counts"
	KindTokenWordCloud = "token_wordcloud"
)

// MetadataKind names the artifact for a metadata key's frequency table.
func MetadataKind(key string) string {
	return key + "_counts"
}

// Renderer draws frequency tables to named artifacts. Tables arrive already
// reduced and in ascending frequency order.
type Renderer interface {
	BarChart(name string, t analytics.Table) error
	WordCloud(name string, t analytics.Table) error
}

// Nop discards everything.
type Nop struct{}

func (Nop) BarChart(string, analytics.Table) error  { return nil }
func (Nop) WordCloud(string, analytics.Table) error { return nil }
