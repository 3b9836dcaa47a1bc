package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/corpora/pkg/corpora/analytics"
	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
	"github.com/cognicore/corpora/pkg/corpora/loader"
)

// Config is the top-level corpora configuration file.
type Config struct {
	Annotator AnnotatorConfig `yaml:"annotator"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Output    OutputConfig    `yaml:"output"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// AnnotatorConfig points at the lexical resources of the annotator.
type AnnotatorConfig struct {
	MaxLength      int      `yaml:"max_length"`
	BuildMaxLength int      `yaml:"build_max_length"`
	Stoplist       string   `yaml:"stoplist"`
	Dict           string   `yaml:"dict"`
	Taxonomy       string   `yaml:"taxonomy"`
	DetectLanguage bool     `yaml:"detect_language"`
	Languages      []string `yaml:"languages"`
}

// AnalyticsConfig holds the reduction size and exclusion policies. An
// exclusion list containing "*CONTENT*" selects content-only counting.
type AnalyticsConfig struct {
	TopK          int      `yaml:"top_k"`
	TokenExclude  []string `yaml:"token_exclude"`
	EntityExclude []string `yaml:"entity_exclude"`
}

// OutputConfig selects where and how charts are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// StoreConfig enables report persistence when Path is set.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// MetricsConfig enables the Prometheus textfile dump when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Output formats.
const (
	FormatSVG  = "svg"
	FormatXLSX = "xlsx"
)

// DefaultTopK is the table size used when none is configured.
const DefaultTopK = 25

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Annotator.MaxLength == 0 {
		c.Annotator.MaxLength = ingest.DefaultMaxLength
	}
	if c.Annotator.BuildMaxLength == 0 {
		c.Annotator.BuildMaxLength = loader.DefaultBuildMaxLength
	}
	if c.Analytics.TopK == 0 {
		c.Analytics.TopK = DefaultTopK
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatSVG
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "development"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Logging.Env = strings.ToLower(strings.TrimSpace(c.Logging.Env))
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Annotator.MaxLength < 0 {
		errs = append(errs, errors.New("annotator.max_length must be positive"))
	}
	if c.Annotator.BuildMaxLength < 0 {
		errs = append(errs, errors.New("annotator.build_max_length must be positive"))
	}
	if c.Analytics.TopK < 0 {
		errs = append(errs, errors.New("analytics.top_k must be positive"))
	}
	switch c.Output.Format {
	case FormatSVG, FormatXLSX:
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of svg, xlsx", c.Output.Format))
	}
	switch c.Logging.Env {
	case "development", "production":
	default:
		errs = append(errs, fmt.Errorf("logging.env %q is not one of development, production", c.Logging.Env))
	}
	if c.Annotator.DetectLanguage && len(c.Annotator.Languages) == 1 {
		errs = append(errs, errors.New("annotator.languages needs at least two entries"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// TokenPolicy returns the configured token policy, or the default.
func (c *Config) TokenPolicy() analytics.Policy {
	if len(c.Analytics.TokenExclude) == 0 {
		return analytics.DefaultTokenPolicy()
	}
	return analytics.Exclude(c.Analytics.TokenExclude...)
}

// EntityPolicy returns the configured entity policy, or the default.
func (c *Config) EntityPolicy() analytics.Policy {
	if len(c.Analytics.EntityExclude) == 0 {
		return analytics.DefaultEntityPolicy()
	}
	return analytics.Exclude(c.Analytics.EntityExclude...)
}

// Taxonomy represents the taxonomy configuration
type Taxonomy struct {
	Entities map[string]map[string][]string `yaml:"entities"` // LABEL -> name -> keywords
}

// LoadTaxonomy loads taxonomy from a YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, err
	}

	return &tax, nil
}

// Stoplist represents extra closed-class words added to the lexicon
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// LoadDict loads the multi-token dictionary from a file
// Format: canonical|variant1|variant2|category
func LoadDict(path string) ([]ingest.DictEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries := []ingest.DictEntry{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		entries = append(entries, ingest.DictEntry{
			Canonical: parts[0],
			Variants:  parts[1 : len(parts)-1],
			Category:  parts[len(parts)-1],
		})
	}

	return entries, nil
}
