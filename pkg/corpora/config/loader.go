package config

import (
	"fmt"
	"sort"

	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/stoplist"
)

// Loader loads the annotator resource files and constructs components
type Loader struct {
	StoplistPath   string
	DictPath       string
	TaxonomyPath   string
	DetectLanguage bool
	Languages      []string
}

// NewLoader returns a Loader for the annotator section of cfg.
func NewLoader(cfg AnnotatorConfig) *Loader {
	return &Loader{
		StoplistPath:   cfg.Stoplist,
		DictPath:       cfg.Dict,
		TaxonomyPath:   cfg.Taxonomy,
		DetectLanguage: cfg.DetectLanguage,
		Languages:      cfg.Languages,
	}
}

// Components holds all loaded configuration components
type Components struct {
	Lexicon  *stoplist.Manager
	Parser   *ingest.MultiTokenParser
	Taxonomy *ingest.Taxonomy
	Detector ingest.LanguageDetector
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Lexicon = stoplist.NewManager(sl.Terms)
	} else {
		comp.Lexicon = stoplist.NewManager(nil)
	}

	if l.DictPath != "" {
		entries, err := LoadDict(l.DictPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		comp.Parser = ingest.NewMultiTokenParser(entries)
	} else {
		comp.Parser = ingest.NewMultiTokenParser(nil)
	}

	comp.Taxonomy = ingest.NewTaxonomy()
	if l.TaxonomyPath != "" {
		taxConfig, err := LoadTaxonomy(l.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		// Registration order must not depend on map order.
		labels := make([]string, 0, len(taxConfig.Entities))
		for label := range taxConfig.Entities {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			entities := taxConfig.Entities[label]
			names := make([]string, 0, len(entities))
			for name := range entities {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				comp.Taxonomy.AddEntity(label, name, entities[name])
			}
		}
	}

	if l.DetectLanguage {
		d, err := ingest.NewLanguageDetector(l.Languages)
		if err != nil {
			return nil, fmt.Errorf("language detector: %w", err)
		}
		comp.Detector = d
	}

	return comp, nil
}

// Pipeline assembles the annotation pipeline from loaded components.
func (c *Components) Pipeline(maxLength int) *ingest.Pipeline {
	p := ingest.NewPipeline(nil, c.Lexicon, c.Parser, c.Taxonomy)
	if maxLength > 0 {
		p.SetMaxLength(maxLength)
	}
	if c.Detector != nil {
		p.SetLanguageDetector(c.Detector)
	}
	return p
}
