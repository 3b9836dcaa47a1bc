package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
	"github.com/cognicore/corpora/pkg/corpora/loader"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "corpora.yaml", "output:\n  dir: out\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Output.Format != FormatSVG {
		t.Errorf("Output.Format = %q, want svg", cfg.Output.Format)
	}
	if cfg.Analytics.TopK != DefaultTopK {
		t.Errorf("TopK = %d", cfg.Analytics.TopK)
	}
	if cfg.Annotator.MaxLength != ingest.DefaultMaxLength || cfg.Annotator.BuildMaxLength != loader.DefaultBuildMaxLength {
		t.Errorf("unexpected ceilings %+v", cfg.Annotator)
	}
	if cfg.Logging.Env != "development" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfigFile(t, "corpora.yaml", `annotator:
  max_length: 500
  build_max_length: 5000
  detect_language: true
  languages: [en, de]
analytics:
  top_k: 5
  token_exclude: ["*CONTENT*"]
  entity_exclude: [QUANTITY, LOC]
output:
  dir: charts
  format: xlsx
store:
  path: reports.db
logging:
  env: production
  level: debug
metrics:
  textfile: corpora.prom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Annotator.MaxLength != 500 || cfg.Annotator.BuildMaxLength != 5000 {
		t.Errorf("ceilings not read: %+v", cfg.Annotator)
	}
	if len(cfg.Annotator.Languages) != 2 || !cfg.Annotator.DetectLanguage {
		t.Errorf("languages not read: %+v", cfg.Annotator)
	}
	if cfg.Analytics.TopK != 5 || cfg.Output.Format != FormatXLSX || cfg.Store.Path != "reports.db" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Metrics.Textfile != "corpora.prom" || cfg.Logging.Env != "production" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.TokenPolicy().IsContentOnly() {
		t.Error("token policy should be content-only")
	}
	if excluded := cfg.EntityPolicy().Excluded(); len(excluded) != 2 {
		t.Errorf("entity exclusions = %v", excluded)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"format", "output:\n  format: png\n", "output.format"},
		{"env", "logging:\n  env: staging\n", "logging.env"},
		{"topk", "analytics:\n  top_k: -1\n", "top_k"},
		{"languages", "annotator:\n  detect_language: true\n  languages: [en]\n", "languages"},
		{"yaml", "output: [unclosed\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, "bad.yaml", tt.content))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadNormalizesCase(t *testing.T) {
	path := writeConfigFile(t, "mixed.yaml", "output:\n  format: XLSX\nlogging:\n  env: Production\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != FormatXLSX {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatXLSX)
	}
	if cfg.Logging.Env != "production" {
		t.Errorf("Logging.Env = %q, want production", cfg.Logging.Env)
	}

	cfg.Output.Format = "SVG"
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Validate should reject a format that was not normalized, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/corpora.yaml"); err == nil {
		t.Error("Should error on nonexistent file")
	}
}

func TestDefaultPolicies(t *testing.T) {
	cfg := Default()
	if cfg.TokenPolicy().IsContentOnly() || cfg.EntityPolicy().IsContentOnly() {
		t.Error("defaults should not be content-only")
	}
	if got := cfg.EntityPolicy().Excluded(); len(got) != 1 || got[0] != ingest.LabelQuantity {
		t.Errorf("default entity exclusions = %v", got)
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeConfigFile(t, "stoplist.yaml", `terms:
  - the
  - a
  - and
`)

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}
	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}
}

func TestLoadTaxonomy(t *testing.T) {
	path := writeConfigFile(t, "taxonomy.yaml", `entities:
  ORG:
    Acme Corp: [acme, acme corp]
  LOC:
    Paris: [paris]
`)

	tax, err := LoadTaxonomy(path)
	if err != nil {
		t.Fatalf("Failed to load taxonomy: %v", err)
	}
	if len(tax.Entities) != 2 {
		t.Errorf("Expected 2 labels, got %d", len(tax.Entities))
	}
	if kws := tax.Entities["ORG"]["Acme Corp"]; len(kws) != 2 {
		t.Errorf("Expected 2 keywords for Acme Corp, got %v", kws)
	}
}

func TestLoadDict(t *testing.T) {
	path := writeConfigFile(t, "dict.txt", `# comment
machine learning|ml|machine-learning|NOUN

new york|nyc|PROPN
bad line
`)

	entries, err := LoadDict(path)
	if err != nil {
		t.Fatalf("Failed to load dict: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	e := entries[0]
	if e.Canonical != "machine learning" || e.Category != "NOUN" || len(e.Variants) != 2 {
		t.Errorf("unexpected entry %+v", e)
	}
}
