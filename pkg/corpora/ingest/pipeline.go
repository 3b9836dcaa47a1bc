package ingest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/corpora/pkg/corpora/internalerr"
	"github.com/cognicore/corpora/pkg/corpora/stoplist"
)

// Pipeline orchestrates the full annotation flow:
// text → tokenization → tagging → multi-token recognition → entities
type Pipeline struct {
	tokenizer *Tokenizer
	lexicon   *stoplist.Manager
	parser    *MultiTokenParser
	taxonomy  *Taxonomy
	languages LanguageDetector
	maxLength int
}

// NewPipeline creates an annotation pipeline with the given components.
// Nil components are replaced by empty ones.
func NewPipeline(tokenizer *Tokenizer, lexicon *stoplist.Manager, parser *MultiTokenParser, taxonomy *Taxonomy) *Pipeline {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	if lexicon == nil {
		lexicon = stoplist.NewManager(nil)
	}
	if parser == nil {
		parser = NewMultiTokenParser(nil)
	}
	if taxonomy == nil {
		taxonomy = NewTaxonomy()
	}
	return &Pipeline{
		tokenizer: tokenizer,
		lexicon:   lexicon,
		parser:    parser,
		taxonomy:  taxonomy,
		maxLength: DefaultMaxLength,
	}
}

// SetLanguageDetector enables language detection on annotated documents.
func (p *Pipeline) SetLanguageDetector(d LanguageDetector) {
	p.languages = d
}

// MaxLength implements Annotator.
func (p *Pipeline) MaxLength() int { return p.maxLength }

// SetMaxLength implements Annotator.
func (p *Pipeline) SetMaxLength(n int) { p.maxLength = n }

// Annotate runs a document through the full pipeline
func (p *Pipeline) Annotate(text string) (Doc, error) {
	if n := utf8.RuneCountInString(text); n > p.maxLength {
		return Doc{}, fmt.Errorf("%w: %d characters, limit %d", internalerr.ErrTextTooLong, n, p.maxLength)
	}

	raw := p.tokenizer.split(text)
	tokens := make([]Token, len(raw))
	for i, r := range raw {
		tokens[i] = Token{Text: r.text, Category: p.tag(r)}
	}

	var names []span
	if len(p.taxonomy.Labels()) == 0 {
		names = properNounSpans(text, raw, tokens)
	}

	doc := Doc{
		Tokens:   p.parser.Parse(tokens),
		Entities: p.taxonomy.extract(text, names),
	}
	if p.languages != nil && strings.TrimSpace(text) != "" {
		if lang, ok := p.languages.Detect(text); ok {
			doc.Language = lang
		}
	}
	return doc, nil
}

// tag assigns a coarse category to a raw token.
func (p *Pipeline) tag(r rawToken) string {
	switch r.kind {
	case kindSpace:
		return SPACE
	case kindNumber:
		return NUM
	case kindPunct:
		if isSymbol(r.text) {
			return SYM
		}
		return PUNCT
	}

	if isAcronym(r.text) {
		return PROPN
	}
	if cat, ok := p.lexicon.Category(r.text); ok {
		return cat
	}
	first, _ := utf8.DecodeRuneInString(r.text)
	if unicode.IsUpper(first) && !r.sentStart {
		return PROPN
	}
	if !unicode.IsLetter(first) {
		return X
	}
	return suffixCategory(strings.ToLower(r.text))
}

// properNounSpans turns each run of adjacent PROPN tokens into a NAME
// entity covering the run's source text.
func properNounSpans(text string, raw []rawToken, tagged []Token) []span {
	var spans []span
	for i := 0; i < len(raw); {
		if tagged[i].Category != PROPN {
			i++
			continue
		}
		j := i + 1
		for j < len(raw) && tagged[j].Category == PROPN {
			j++
		}
		start, end := raw[i].start, raw[j-1].end
		spans = append(spans, span{start: start, end: end, entity: Entity{Text: text[start:end], Label: LabelName}})
		i = j
	}
	return spans
}

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "less", "ical", "al", "ic"}

func suffixCategory(word string) string {
	if len(word) <= 4 {
		return NOUN
	}
	switch {
	case strings.HasSuffix(word, "ly"):
		return ADV
	case strings.HasSuffix(word, "ing"), strings.HasSuffix(word, "ed"), strings.HasSuffix(word, "ize"), strings.HasSuffix(word, "ise"):
		return VERB
	}
	for _, s := range adjectiveSuffixes {
		if strings.HasSuffix(word, s) {
			return ADJ
		}
	}
	return NOUN
}

// isAcronym matches all-caps words of two or more letters, e.g. "NASA".
func isAcronym(w string) bool {
	letters := 0
	for _, r := range w {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

func isSymbol(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSymbol(r) || strings.ContainsRune("#%&*@", r)
}
