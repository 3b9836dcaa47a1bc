package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/cognicore/corpora/pkg/corpora/corpus"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

// LoadText annotates the contents of one text file. The identifier is the
// path itself. HTML files are reduced to their visible text first.
func (l *Loader) LoadText(path string) (corpus.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return corpus.Record{}, fmt.Errorf("%w: read %s: %v", internalerr.ErrUnreadableInput, path, err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text = stripHTML(data)
	}
	text = strings.ToValidUTF8(text, "�")

	doc, err := l.annotator.Annotate(text)
	if err != nil {
		return corpus.Record{}, fmt.Errorf("annotate %s: %w", path, err)
	}

	l.logger.Debug("loaded text document", zap.String("path", path), zap.Int("tokens", len(doc.Tokens)))
	return corpus.Record{ID: path, Entry: corpus.Entry{Doc: &doc}}, nil
}

// stripHTML returns the visible text of an HTML document, one text node per
// line. Script and style contents are dropped.
func stripHTML(data []byte) string {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		// Fallback to raw text if parsing fails
		return string(data)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(root)

	return buf.String()
}
