package corpora

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/corpora/pkg/corpora/analytics"
	"github.com/cognicore/corpora/pkg/corpora/corpus"
	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
	"github.com/cognicore/corpora/pkg/corpora/loader"
	"github.com/cognicore/corpora/pkg/corpora/report"
	"github.com/cognicore/corpora/pkg/corpora/store"
	"github.com/cognicore/corpora/pkg/corpora/store/memstore"
)

// DefaultTopK is used when Options.TopK is not positive.
const DefaultTopK = 25

// WordCloudWords caps the words handed to the renderer and persisted for a
// word cloud.
const WordCloudWords = 200

// Observer receives ingestion and report events.
type Observer interface {
	loader.Observer
	SetCorpusSize(n int)
	ReportWritten(kind string)
}

type nopObserver struct{}

func (nopObserver) FileLoaded(loader.Format) {}
func (nopObserver) RecordsLoaded(int)        {}
func (nopObserver) RecordsSkipped(int)       {}
func (nopObserver) BuildFailed()             {}
func (nopObserver) SetCorpusSize(int)        {}
func (nopObserver) ReportWritten(string)     {}

// Corpora is the main analytics facade. It owns one corpus per instance.
type Corpora struct {
	loader       *loader.Loader
	renderer     report.Renderer
	store        store.Store
	builder      *report.Builder
	logger       *zap.Logger
	observer     Observer
	topK         int
	tokenPolicy  analytics.Policy
	entityPolicy analytics.Policy

	corpus  *corpus.Corpus
	pattern string
}

// Options configures a Corpora instance
type Options struct {
	Annotator      ingest.Annotator
	Renderer       report.Renderer
	Store          store.Store
	Logger         *zap.Logger
	Observer       Observer
	TopK           int
	BuildMaxLength int
	TokenPolicy    *analytics.Policy // nil selects analytics.DefaultTokenPolicy
	EntityPolicy   *analytics.Policy // nil selects analytics.DefaultEntityPolicy
}

// New creates a Corpora instance with the given dependencies. Only the
// annotator is required.
func New(opts Options) (*Corpora, error) {
	if opts.Annotator == nil {
		return nil, fmt.Errorf("%w: annotator is required", internalerr.ErrInvalidInput)
	}

	c := &Corpora{
		renderer:     opts.Renderer,
		store:        opts.Store,
		builder:      report.NewBuilder(),
		logger:       opts.Logger,
		observer:     opts.Observer,
		topK:         opts.TopK,
		tokenPolicy:  analytics.DefaultTokenPolicy(),
		entityPolicy: analytics.DefaultEntityPolicy(),
		corpus:       corpus.New(),
	}
	if c.renderer == nil {
		c.renderer = report.Nop{}
	}
	if c.store == nil {
		c.store = memstore.New()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.topK <= 0 {
		c.topK = DefaultTopK
	}
	if opts.TokenPolicy != nil {
		c.tokenPolicy = *opts.TokenPolicy
	}
	if opts.EntityPolicy != nil {
		c.entityPolicy = *opts.EntityPolicy
	}

	c.loader = loader.New(opts.Annotator,
		loader.WithLogger(c.logger),
		loader.WithObserver(c.observer),
		loader.WithBuildMaxLength(opts.BuildMaxLength),
	)
	return c, nil
}

// Close cleanly shuts down the report store
func (c *Corpora) Close() error {
	return c.store.Close()
}

// Corpus returns the current corpus.
func (c *Corpora) Corpus() *corpus.Corpus { return c.corpus }

// Build loads every file matching pattern into the instance's corpus.
// Later builds add to the same corpus. On failure the documents loaded so
// far stay available and the returned error is a *loader.BuildError.
func (c *Corpora) Build(ctx context.Context, pattern string) error {
	c.logger.Info("loading corpus", zap.String("pattern", pattern))

	built, err := c.loader.BuildCorpus(ctx, pattern, c.corpus)
	if built != nil {
		c.corpus = built
	}
	c.pattern = pattern
	c.observer.SetCorpusSize(c.corpus.Len())
	return err
}

// Statistics summarizes the corpus under the configured policies.
func (c *Corpora) Statistics() analytics.Summary {
	return analytics.Summarize(c.corpus, c.tokenPolicy, c.entityPolicy)
}

// WordCount holds the reduced token and entity tables.
type WordCount struct {
	Tokens   analytics.Table `json:"tokens"`
	Entities analytics.Table `json:"entities"`
}

// WordCount charts the top-k tokens and entities and persists both tables.
func (c *Corpora) WordCount(ctx context.Context) (WordCount, error) {
	wc := WordCount{
		Tokens:   analytics.TopK(analytics.TokenFrequencies(c.corpus, c.tokenPolicy), c.topK),
		Entities: analytics.TopK(analytics.EntityFrequencies(c.corpus, c.entityPolicy), c.topK),
	}

	if err := c.publish(ctx, "Top tokens", report.KindTokenCounts, wc.Tokens, c.renderer.BarChart); err != nil {
		return wc, err
	}
	if err := c.publish(ctx, "Top entities", report.KindEntityCounts, wc.Entities, c.renderer.BarChart); err != nil {
		return wc, err
	}
	return wc, nil
}

// WordCloud renders a frequency-weighted cloud of the corpus tokens.
func (c *Corpora) WordCloud(ctx context.Context) (analytics.Table, error) {
	t := analytics.TopK(analytics.TokenFrequencies(c.corpus, c.tokenPolicy), WordCloudWords)
	if err := c.publish(ctx, "Token word cloud", report.KindTokenWordCloud, t, c.renderer.WordCloud); err != nil {
		return t, err
	}
	return t, nil
}

// MetadataFreq charts the value frequencies of one metadata key. The table
// is not reduced; it is ordered by ascending frequency.
func (c *Corpora) MetadataFreq(ctx context.Context, key string) (analytics.Table, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return analytics.Table{}, fmt.Errorf("%w: metadata key is empty", internalerr.ErrInvalidInput)
	}
	if strings.ContainsAny(key, `/\`) || key == ".." {
		return analytics.Table{}, fmt.Errorf("%w: metadata key %q names a path", internalerr.ErrInvalidInput, key)
	}

	t := analytics.MetadataFrequencies(c.corpus, key)
	t = analytics.TopK(t, len(t))
	title := fmt.Sprintf("%s frequencies", key)
	if err := c.publish(ctx, title, report.MetadataKind(key), t, c.renderer.BarChart); err != nil {
		return t, err
	}
	return t, nil
}

// Reports lists persisted reports, newest first.
func (c *Corpora) Reports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	return c.store.ListReports(ctx, kind, limit)
}

// Report returns one persisted report with its items as a frequency table.
// Unknown IDs give internalerr.ErrNotFound.
func (c *Corpora) Report(ctx context.Context, id string) (store.Report, analytics.Table, error) {
	r, err := c.store.GetReport(ctx, id)
	if err != nil {
		return store.Report{}, nil, err
	}
	return r, report.Table(r), nil
}

// publish renders one table and persists it as a report.
func (c *Corpora) publish(ctx context.Context, title, kind string, t analytics.Table, render func(string, analytics.Table) error) error {
	if err := render(kind, t); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	c.observer.ReportWritten(kind)

	r := c.builder.Build(title, kind, c.pattern, t)
	if err := c.store.SaveReport(ctx, r); err != nil {
		return fmt.Errorf("save %s report: %w", kind, err)
	}
	c.logger.Debug("report written", zap.String("kind", kind), zap.String("id", r.ID), zap.Int("items", len(t)))
	return nil
}
