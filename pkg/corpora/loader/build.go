package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/cognicore/corpora/pkg/corpora/corpus"
	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

// BuildError reports a corpus build that stopped early. The corpus returned
// alongside it holds everything loaded before the failure.
type BuildError struct {
	Pattern string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("couldn't load %s due to error %v", e.Pattern, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// BuildCorpus loads every file matching pattern into c, in sorted path
// order, dispatching on Classify. Colliding identifiers overwrite earlier
// entries. A nil c starts a new corpus. The annotator ceiling is raised for
// the whole build and restored afterwards. The first failing file stops the
// build; the partial corpus is still returned together with a *BuildError.
func (l *Loader) BuildCorpus(ctx context.Context, pattern string, c *corpus.Corpus) (*corpus.Corpus, error) {
	if c == nil {
		c = corpus.New()
	}

	err := ingest.WithMaxLength(l.annotator, l.buildMaxLength, func() error {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			l.logger.Warn("pattern matched no files", zap.String("pattern", pattern))
			return nil
		}
		sort.Strings(paths)

		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := l.load(path)
			l.merge(c, records)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		l.observer.BuildFailed()
		buildErr := &BuildError{Pattern: pattern, Err: err}
		l.logger.Error("corpus build failed", zap.String("pattern", pattern), zap.Error(err),
			zap.Int("documents", c.Len()))
		return c, buildErr
	}

	l.logger.Info("corpus built", zap.String("pattern", pattern), zap.Int("documents", c.Len()))
	return c, nil
}

// load dispatches one path to its loader.
func (l *Loader) load(path string) ([]corpus.Record, error) {
	format := Classify(path)
	var (
		records []corpus.Record
		err     error
	)
	switch format {
	case FormatArchive:
		records, err = l.ExpandAndLoad(path)
	case FormatRecords:
		records, err = l.LoadRecords(path)
	case FormatText:
		var rec corpus.Record
		rec, err = l.LoadText(path)
		if err == nil {
			records = []corpus.Record{rec}
		}
	default:
		l.logger.Warn("no loader for format", zap.String("path", path),
			zap.Error(fmt.Errorf("%w: %s", internalerr.ErrUnsupportedFormat, format)))
		return nil, nil
	}
	if err == nil {
		l.observer.FileLoaded(format)
	}
	return records, err
}

func (l *Loader) merge(c *corpus.Corpus, records []corpus.Record) {
	for _, id := range c.Merge(records) {
		l.logger.Debug("document identifier overwritten", zap.String("id", id))
	}
}
