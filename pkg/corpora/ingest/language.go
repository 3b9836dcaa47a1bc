package ingest

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

// LanguageDetector guesses the language of a text.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a lingua detector restricted to the given
// ISO 639-1 codes. An empty list loads every supported language.
func NewLanguageDetector(codes []string) (LanguageDetector, error) {
	builder := lingua.NewLanguageDetectorBuilder()
	if len(codes) == 0 {
		return &linguaDetector{detector: builder.FromAllLanguages().Build()}, nil
	}

	isoCodes := make([]lingua.IsoCode639_1, 0, len(codes))
	for _, c := range codes {
		code := lingua.GetIsoCode639_1FromValue(strings.ToLower(strings.TrimSpace(c)))
		if code == lingua.UnknownIsoCode639_1 {
			return nil, fmt.Errorf("%w: unknown language code %q", internalerr.ErrInvalidConfig, c)
		}
		isoCodes = append(isoCodes, code)
	}
	if len(isoCodes) < 2 {
		return nil, fmt.Errorf("%w: language detection needs at least two languages", internalerr.ErrInvalidConfig)
	}
	return &linguaDetector{detector: builder.FromIsoCodes639_1(isoCodes...).Build()}, nil
}

// Detect returns the lowercase ISO 639-1 code of the most likely language.
func (d *linguaDetector) Detect(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
