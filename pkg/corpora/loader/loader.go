package loader

import (
	"go.uber.org/zap"

	"github.com/cognicore/corpora/pkg/corpora/ingest"
)

// DefaultBuildMaxLength is the annotator ceiling used while building a
// corpus; source documents often exceed the annotator's everyday limit.
const DefaultBuildMaxLength = 10_000_000

// Observer receives ingestion events. The metrics package implements it.
type Observer interface {
	FileLoaded(f Format)
	RecordsLoaded(n int)
	RecordsSkipped(n int)
	BuildFailed()
}

type nopObserver struct{}

func (nopObserver) FileLoaded(Format)  {}
func (nopObserver) RecordsLoaded(int)  {}
func (nopObserver) RecordsSkipped(int) {}
func (nopObserver) BuildFailed()       {}

// Loader turns matched files into corpus records using an annotator.
type Loader struct {
	annotator      ingest.Annotator
	logger         *zap.Logger
	observer       Observer
	buildMaxLength int
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithObserver sets the ingestion event observer.
func WithObserver(o Observer) Option {
	return func(ld *Loader) {
		if o != nil {
			ld.observer = o
		}
	}
}

// WithBuildMaxLength sets the annotator ceiling applied during BuildCorpus.
func WithBuildMaxLength(n int) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.buildMaxLength = n
		}
	}
}

// New creates a loader around the given annotator.
func New(a ingest.Annotator, opts ...Option) *Loader {
	ld := &Loader{
		annotator:      a,
		logger:         zap.NewNop(),
		observer:       nopObserver{},
		buildMaxLength: DefaultBuildMaxLength,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}
