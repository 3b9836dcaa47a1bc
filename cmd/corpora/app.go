package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cognicore/corpora/internal/logger"
	"github.com/cognicore/corpora/internal/metrics"
	"github.com/cognicore/corpora/pkg/corpora"
	"github.com/cognicore/corpora/pkg/corpora/config"
	"github.com/cognicore/corpora/pkg/corpora/report"
	"github.com/cognicore/corpora/pkg/corpora/report/svg"
	"github.com/cognicore/corpora/pkg/corpora/report/xlsx"
	"github.com/cognicore/corpora/pkg/corpora/store"
	"github.com/cognicore/corpora/pkg/corpora/store/memstore"
	"github.com/cognicore/corpora/pkg/corpora/store/sqlite"
)

// session holds everything built from flags and configuration for one run.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Ingest
	engine  *corpora.Corpora
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	s := &session{}

	return &cli.App{
		Name:   "corpora",
		Usage:  "build a corpus from text, JSONL and archives and report word, entity and metadata frequencies",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "file pattern to load (prompted when omitted)"},
			&cli.StringFlag{Name: "out-dir", Usage: "directory for charts"},
			&cli.StringFlag{Name: "format", Usage: "chart format: svg or xlsx"},
			&cli.IntFlag{Name: "top-k", Usage: "number of most frequent items to chart"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database for report history"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics to this textfile on exit"},
		},
		Before: s.setup,
		After:  s.teardown,
		Action: s.interactive,
		Commands: []*cli.Command{
			{
				Name:   "statistics",
				Usage:  "print basic corpus statistics",
				Action: s.statistics,
			},
			{
				Name:   "wordcount",
				Usage:  "chart the most frequent tokens and entities",
				Action: s.wordcount,
			},
			{
				Name:   "wordcloud",
				Usage:  "draw a token word cloud",
				Action: s.wordcloud,
			},
			{
				Name:  "metadatafreq",
				Usage: "chart the value frequencies of a metadata key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "metadata key", Required: true},
				},
				Action: s.metadatafreq,
			},
			{
				Name:  "report",
				Usage: "print statistics and top tables",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
				},
				Action: s.report,
			},
			{
				Name:  "history",
				Usage: "list reports saved in the database, or show one with --id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "print the items of this report"},
					&cli.StringFlag{Name: "kind", Usage: "only reports of this kind"},
					&cli.IntFlag{Name: "limit", Value: store.DefaultListLimit, Usage: "maximum reports"},
				},
				Action: s.history,
			},
		},
	}
}

// setup loads configuration, applies flag overrides and wires the engine.
func (s *session) setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if c.IsSet("out-dir") {
		cfg.Output.Dir = c.String("out-dir")
	}
	if c.IsSet("format") {
		cfg.Output.Format = strings.ToLower(c.String("format"))
	}
	if c.IsSet("top-k") {
		cfg.Analytics.TopK = c.Int("top-k")
	}
	if c.IsSet("db") {
		cfg.Store.Path = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("metrics-file") {
		cfg.Metrics.Textfile = c.String("metrics-file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg

	log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	s.log = log
	if c.Context == nil {
		c.Context = context.Background()
	}
	c.Context = logger.WithContext(c.Context, log)

	components, err := config.NewLoader(cfg.Annotator).Load()
	if err != nil {
		return fmt.Errorf("load annotator resources: %w", err)
	}

	var st store.Store = memstore.New()
	if cfg.Store.Path != "" {
		st, err = sqlite.OpenSQLite(c.Context, cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open report database: %w", err)
		}
	}

	var renderer report.Renderer = svg.New(cfg.Output.Dir)
	if cfg.Output.Format == config.FormatXLSX {
		renderer = xlsx.New(cfg.Output.Dir)
	}

	s.metrics = metrics.NewIngest()
	tokenPolicy, entityPolicy := cfg.TokenPolicy(), cfg.EntityPolicy()
	s.engine, err = corpora.New(corpora.Options{
		Annotator:      components.Pipeline(cfg.Annotator.MaxLength),
		Renderer:       renderer,
		Store:          st,
		Logger:         log,
		Observer:       s.metrics,
		TopK:           cfg.Analytics.TopK,
		BuildMaxLength: cfg.Annotator.BuildMaxLength,
		TokenPolicy:    &tokenPolicy,
		EntityPolicy:   &entityPolicy,
	})
	if err != nil {
		st.Close()
		return err
	}
	return nil
}

// teardown closes the store and flushes metrics.
func (s *session) teardown(c *cli.Context) error {
	var errs []error
	if s.engine != nil {
		errs = append(errs, s.engine.Close())
	}
	if s.metrics != nil && s.cfg != nil && s.cfg.Metrics.Textfile != "" {
		if err := s.metrics.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if s.log != nil {
		_ = s.log.Sync()
	}
	return errors.Join(errs...)
}

// build loads the pattern. A failed build is reported and the partial
// corpus is kept so analytics still run.
func (s *session) build(c *cli.Context, pattern string) {
	fmt.Fprintf(c.App.Writer, "Loading %s, this may take awhile!\n", pattern)
	if err := s.engine.Build(c.Context, pattern); err != nil {
		fmt.Fprintln(c.App.Writer, err)
		logger.FromContext(c.Context).Warn("continuing with partial corpus",
			zap.Int("documents", s.engine.Corpus().Len()))
	}
}

// oneShot builds the corpus for a subcommand, which needs --pattern.
func (s *session) oneShot(c *cli.Context) error {
	pattern := c.String("pattern")
	if pattern == "" {
		return errors.New("--pattern is required")
	}
	s.build(c, pattern)
	return nil
}

func (s *session) statistics(c *cli.Context) error {
	if err := s.oneShot(c); err != nil {
		return err
	}
	printStatistics(c.App.Writer, s.engine.Statistics())
	return nil
}

func (s *session) wordcount(c *cli.Context) error {
	if err := s.oneShot(c); err != nil {
		return err
	}
	return s.runWordCount(c)
}

func (s *session) wordcloud(c *cli.Context) error {
	if err := s.oneShot(c); err != nil {
		return err
	}
	return s.runWordCloud(c)
}

func (s *session) metadatafreq(c *cli.Context) error {
	if err := s.oneShot(c); err != nil {
		return err
	}
	return s.runMetadataFreq(c, c.String("key"))
}

func (s *session) runWordCount(c *cli.Context) error {
	wc, err := s.engine.WordCount(c.Context)
	if err != nil {
		return err
	}
	printTable(c.App.Writer, "Top tokens", wc.Tokens)
	printTable(c.App.Writer, "Top entities", wc.Entities)
	return nil
}

func (s *session) runWordCloud(c *cli.Context) error {
	t, err := s.engine.WordCloud(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Word cloud of %d words written to %s\n", len(t), s.cfg.Output.Dir)
	return nil
}

func (s *session) runMetadataFreq(c *cli.Context, key string) error {
	t, err := s.engine.MetadataFreq(c.Context, key)
	if err != nil {
		return err
	}
	printTable(c.App.Writer, key+" frequencies", t)
	return nil
}

func (s *session) history(c *cli.Context) error {
	if id := c.String("id"); id != "" {
		r, t, err := s.engine.Report(c.Context, id)
		if err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}
		printTable(c.App.Writer, fmt.Sprintf("%s [%s, %s]", r.Title, r.Kind, r.Pattern), t)
		return nil
	}
	reports, err := s.engine.Reports(c.Context, c.String("kind"), c.Int("limit"))
	if err != nil {
		return err
	}
	printHistory(c.App.Writer, reports)
	return nil
}
