package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cognicore/corpora/pkg/corpora/loader"
)

// Ingest holds corpus ingestion counters on a private registry and
// implements loader.Observer.
type Ingest struct {
	registry *prometheus.Registry

	filesTotal     *prometheus.CounterVec
	recordsTotal   prometheus.Counter
	skippedTotal   prometheus.Counter
	buildFailures  prometheus.Counter
	corpusDocs     prometheus.Gauge
	reportsWritten *prometheus.CounterVec
}

var _ loader.Observer = (*Ingest)(nil)

// NewIngest creates and registers the ingestion metrics.
func NewIngest() *Ingest {
	m := &Ingest{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "corpora",
				Name:      "files_loaded_total",
				Help:      "Files loaded into a corpus, by format",
			},
			[]string{"format"},
		),
		recordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corpora",
			Name:      "records_loaded_total",
			Help:      "Structured records loaded",
		}),
		skippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corpora",
			Name:      "records_skipped_total",
			Help:      "Structured-record lines skipped as malformed",
		}),
		buildFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corpora",
			Name:      "build_failures_total",
			Help:      "Corpus builds that stopped on an error",
		}),
		corpusDocs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "corpora",
			Name:      "corpus_documents",
			Help:      "Documents in the current corpus",
		}),
		reportsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "corpora",
				Name:      "reports_written_total",
				Help:      "Report artifacts written, by kind",
			},
			[]string{"kind"},
		),
	}
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.filesTotal, m.recordsTotal, m.skippedTotal,
		m.buildFailures, m.corpusDocs, m.reportsWritten)
	return m
}

// FileLoaded implements loader.Observer.
func (m *Ingest) FileLoaded(f loader.Format) { m.filesTotal.WithLabelValues(f.String()).Inc() }

// RecordsLoaded implements loader.Observer.
func (m *Ingest) RecordsLoaded(n int) { m.recordsTotal.Add(float64(n)) }

// RecordsSkipped implements loader.Observer.
func (m *Ingest) RecordsSkipped(n int) { m.skippedTotal.Add(float64(n)) }

// BuildFailed implements loader.Observer.
func (m *Ingest) BuildFailed() { m.buildFailures.Inc() }

// SetCorpusSize records the document count after a build.
func (m *Ingest) SetCorpusSize(n int) { m.corpusDocs.Set(float64(n)) }

// ReportWritten counts one written artifact.
func (m *Ingest) ReportWritten(kind string) { m.reportsWritten.WithLabelValues(kind).Inc() }

// WriteTextfile dumps every metric in the text exposition format for the
// node exporter textfile collector.
func (m *Ingest) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
