package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/corpora/pkg/corpora/corpus"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

// Recognized structured-record keys.
const (
	KeyID       = "id"
	KeyFullText = "fullText"
)

// LoadRecords reads one JSON object per line. Lines that are not valid JSON
// objects or lack id/fullText are skipped. Every field, id and fullText
// included, becomes metadata. On an annotation failure the records loaded so
// far are returned together with the error.
func (l *Loader) LoadRecords(path string) ([]corpus.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", internalerr.ErrUnreadableInput, path, err)
	}
	defer f.Close()

	var records []corpus.Record
	skipped := 0
	reader := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return records, fmt.Errorf("%w: read %s: %v", internalerr.ErrUnreadableInput, path, readErr)
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			id, meta, text, err := parseRecord(trimmed)
			if err != nil {
				skipped++
				l.logger.Warn("skipping record",
					zap.String("path", path), zap.Int("line", lineNo), zap.Error(err))
			} else {
				doc, err := l.annotator.Annotate(text)
				if err != nil {
					l.observer.RecordsLoaded(len(records))
					l.observer.RecordsSkipped(skipped)
					return records, fmt.Errorf("annotate %s line %d: %w", path, lineNo, err)
				}
				records = append(records, corpus.Record{ID: id, Entry: corpus.Entry{Metadata: meta, Doc: &doc}})
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	l.observer.RecordsLoaded(len(records))
	l.observer.RecordsSkipped(skipped)
	l.logger.Debug("loaded records", zap.String("path", path),
		zap.Int("records", len(records)), zap.Int("skipped", skipped))
	return records, nil
}

// parseRecord decodes one line into identifier, metadata and the text to
// annotate. All failures wrap internalerr.ErrMalformedRecord.
func parseRecord(line []byte) (string, map[string]any, string, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var meta map[string]any
	if err := dec.Decode(&meta); err != nil {
		return "", nil, "", fmt.Errorf("%w: %v", internalerr.ErrMalformedRecord, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", nil, "", fmt.Errorf("%w: trailing data after object", internalerr.ErrMalformedRecord)
	}
	if meta == nil {
		return "", nil, "", fmt.Errorf("%w: not an object", internalerr.ErrMalformedRecord)
	}

	rawID, hasID := meta[KeyID]
	rawText, hasText := meta[KeyFullText]
	if !hasID || !hasText {
		return "", nil, "", fmt.Errorf("%w: missing %q or %q", internalerr.ErrMalformedRecord, KeyID, KeyFullText)
	}

	id, ok := scalarString(rawID)
	if !ok || strings.TrimSpace(id) == "" {
		return "", nil, "", fmt.Errorf("%w: invalid %q", internalerr.ErrMalformedRecord, KeyID)
	}
	text, ok := joinFullText(rawText)
	if !ok {
		return "", nil, "", fmt.Errorf("%w: invalid %q", internalerr.ErrMalformedRecord, KeyFullText)
	}
	return id, meta, text, nil
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	}
	return "", false
}

// joinFullText joins text fragments with a single space. A bare string is
// accepted as a single fragment.
func joinFullText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []any:
		parts := make([]string, 0, len(val))
		for _, frag := range val {
			s, ok := scalarString(frag)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), true
	}
	return "", false
}
