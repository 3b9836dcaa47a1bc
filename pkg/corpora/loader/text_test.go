package loader

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/cognicore/corpora/pkg/corpora/ingest"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "doc.txt", "cat cat dog")

	ld := New(ingest.NewPipeline(nil, nil, nil, nil))
	rec, err := ld.LoadText(path)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if rec.ID != path {
		t.Errorf("ID = %q, want %q", rec.ID, path)
	}
	if rec.Entry.Metadata != nil {
		t.Error("text documents carry no metadata")
	}
	if rec.Entry.Doc == nil || len(rec.Entry.Doc.Tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %+v", rec.Entry.Doc)
	}
}

func TestLoadTextMissingFile(t *testing.T) {
	ld := New(&fakeAnnotator{max: 10})

	_, err := ld.LoadText(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, internalerr.ErrUnreadableInput) {
		t.Fatalf("expected ErrUnreadableInput, got %v", err)
	}
}

func TestLoadTextHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "page.html", `<html><head><style>p{}</style><script>var x=1;</script></head>
<body><h1>Hello</h1><p>cats and <b>dogs</b></p></body></html>`)

	fake := &fakeAnnotator{max: 1000}
	if _, err := New(fake).LoadText(path); err != nil {
		t.Fatalf("LoadText: %v", err)
	}

	text := fake.texts[0]
	if strings.Contains(text, "var x") || strings.Contains(text, "p{}") || strings.Contains(text, "<") {
		t.Errorf("markup leaked into text: %q", text)
	}
	for _, want := range []string{"Hello", "cats and", "dogs"} {
		if !strings.Contains(text, want) {
			t.Errorf("text %q should contain %q", text, want)
		}
	}
}

func TestLoadTextReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc.txt", "page.html"} {
		t.Run(name, func(t *testing.T) {
			path := writeTestFile(t, dir, name, "<p>caf\xe9 \xff dog</p>")

			fake := &fakeAnnotator{max: 1000}
			if _, err := New(fake).LoadText(path); err != nil {
				t.Fatalf("LoadText: %v", err)
			}
			text := fake.texts[0]
			if !utf8.ValidString(text) {
				t.Errorf("annotated text is not valid UTF-8: %q", text)
			}
			if !strings.Contains(text, "dog") {
				t.Errorf("text %q lost its content", text)
			}
		})
	}
}

func TestLoadTextAnnotatorError(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "big.txt", strings.Repeat("word ", 10))

	p := ingest.NewPipeline(nil, nil, nil, nil)
	p.SetMaxLength(5)
	_, err := New(p).LoadText(path)
	if !errors.Is(err, internalerr.ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
}
