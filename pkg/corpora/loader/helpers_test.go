package loader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/corpora/pkg/corpora/ingest"
)

// fakeAnnotator records every call and the ceiling it saw.
type fakeAnnotator struct {
	max     int
	seenMax []int
	texts   []string
	failOn  string
}

func (f *fakeAnnotator) Annotate(text string) (ingest.Doc, error) {
	f.seenMax = append(f.seenMax, f.max)
	f.texts = append(f.texts, text)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return ingest.Doc{}, errors.New("annotator failure")
	}
	return ingest.Doc{Tokens: []ingest.Token{{Text: text, Category: ingest.NOUN}}}, nil
}

func (f *fakeAnnotator) MaxLength() int     { return f.max }
func (f *fakeAnnotator) SetMaxLength(n int) { f.max = n }

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type member struct {
	name, body string
}

func writeZip(t *testing.T, path string, members []member) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for _, m := range members {
		w, err := zw.Create(m.name)
		if err != nil {
			t.Fatalf("zip member: %v", err)
		}
		if _, err := w.Write([]byte(m.body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func writeTar(t *testing.T, path string, gz bool, members []member) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create tar: %v", err)
	}
	defer f.Close()

	var tw *tar.Writer
	var gw *gzip.Writer
	if gz {
		gw = gzip.NewWriter(f)
		tw = tar.NewWriter(gw)
	} else {
		tw = tar.NewWriter(f)
	}
	for _, m := range members {
		hdr := &tar.Header{Name: m.name, Mode: 0o644, Size: int64(len(m.body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(m.body)); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if gw != nil {
		if err := gw.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
	}
}

// isolateTemp points os.TempDir at a fresh directory so scratch leftovers
// can be detected.
func isolateTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return dir
}

func assertNoScratch(t *testing.T, tmp string) {
	t.Helper()
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("read tmp: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), scratchPrefix) {
			t.Errorf("scratch directory left behind: %s", e.Name())
		}
	}
}
