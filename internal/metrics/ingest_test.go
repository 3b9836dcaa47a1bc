package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cognicore/corpora/pkg/corpora/loader"
)

func TestIngestCounters(t *testing.T) {
	m := NewIngest()

	m.FileLoaded(loader.FormatText)
	m.FileLoaded(loader.FormatText)
	m.FileLoaded(loader.FormatArchive)
	m.RecordsLoaded(5)
	m.RecordsSkipped(2)
	m.BuildFailed()
	m.SetCorpusSize(7)
	m.ReportWritten("token_counts")

	if v := testutil.ToFloat64(m.filesTotal.WithLabelValues("text")); v != 2 {
		t.Errorf("text files = %v, want 2", v)
	}
	if v := testutil.ToFloat64(m.filesTotal.WithLabelValues("archive")); v != 1 {
		t.Errorf("archive files = %v, want 1", v)
	}
	if v := testutil.ToFloat64(m.recordsTotal); v != 5 {
		t.Errorf("records = %v, want 5", v)
	}
	if v := testutil.ToFloat64(m.skippedTotal); v != 2 {
		t.Errorf("skipped = %v, want 2", v)
	}
	if v := testutil.ToFloat64(m.buildFailures); v != 1 {
		t.Errorf("failures = %v, want 1", v)
	}
	if v := testutil.ToFloat64(m.corpusDocs); v != 7 {
		t.Errorf("documents = %v, want 7", v)
	}
	if v := testutil.ToFloat64(m.reportsWritten.WithLabelValues("token_counts")); v != 1 {
		t.Errorf("reports = %v, want 1", v)
	}
}

func TestIngestRegistriesAreIndependent(t *testing.T) {
	a, b := NewIngest(), NewIngest()
	a.BuildFailed()
	if v := testutil.ToFloat64(b.buildFailures); v != 0 {
		t.Errorf("second registry saw %v failures", v)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := NewIngest()
	m.RecordsLoaded(3)

	path := filepath.Join(t.TempDir(), "corpora.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "corpora_records_loaded_total 3") {
		t.Errorf("textfile missing counter:\n%s", data)
	}
}
