package ingest

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	kindWord tokenKind = iota
	kindNumber
	kindPunct
	kindSpace
)

// rawToken is a token before tagging. start and end are byte offsets into
// the source text.
type rawToken struct {
	text       string
	kind       tokenKind
	sentStart  bool
	start, end int
}

// Tokenizer splits text into word, number, punctuation and whitespace tokens.
// A single space between tokens is not emitted; any other whitespace run is.
type Tokenizer struct{}

// NewTokenizer creates a new tokenizer
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

func (t *Tokenizer) split(text string) []rawToken {
	var tokens []rawToken
	var current strings.Builder
	sentStart := true
	wordStart := 0

	runes := make([]rune, 0, len(text))
	offs := make([]int, 0, len(text)+1)
	for i, r := range text {
		runes = append(runes, r)
		offs = append(offs, i)
	}
	offs = append(offs, len(text))

	flushWord := func(end int) {
		if current.Len() == 0 {
			return
		}
		word := text[wordStart:end]
		pieces := splitClitics(current.String())
		pos := wordStart
		for _, w := range pieces {
			tok := rawToken{text: w, kind: wordKind(w), sentStart: sentStart, start: wordStart, end: end}
			// Piece offsets are exact unless a curly apostrophe was normalized.
			if len(pieces) > 1 && !strings.ContainsRune(word, '’') {
				tok.start, tok.end = pos, pos+len(w)
				pos += len(w)
			}
			tokens = append(tokens, tok)
			sentStart = false
		}
		current.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if current.Len() == 0 {
				wordStart = offs[i]
			}
			current.WriteRune(r)
		case current.Len() > 0 && i+1 < len(runes) && isInnerJoiner(runes[i-1], r, runes[i+1]):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flushWord(offs[i])
			j := i
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			ws := string(runes[i:j])
			if ws != " " {
				tokens = append(tokens, rawToken{text: ws, kind: kindSpace, start: offs[i], end: offs[j]})
				if strings.ContainsRune(ws, '\n') {
					sentStart = true
				}
			}
			i = j - 1
		default:
			flushWord(offs[i])
			tokens = append(tokens, rawToken{text: string(r), kind: kindPunct, start: offs[i], end: offs[i+1]})
			if r == '.' || r == '!' || r == '?' {
				sentStart = true
			}
		}
	}
	flushWord(len(text))

	return tokens
}

// isInnerJoiner reports whether r stays inside the current word: hyphens and
// apostrophes between letters, decimal or thousands separators between digits.
func isInnerJoiner(prev, r, next rune) bool {
	switch r {
	case '-', '\'', '’':
		return unicode.IsLetter(next) || unicode.IsNumber(next)
	case '.', ',':
		return unicode.IsDigit(prev) && unicode.IsDigit(next)
	}
	return false
}

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// splitClitics separates English contractions: "don't" -> "do", "n't".
func splitClitics(word string) []string {
	word = strings.ReplaceAll(word, "’", "'")
	lower := strings.ToLower(word)
	for _, c := range clitics {
		if strings.HasSuffix(lower, c) && len(word) > len(c) {
			return []string{word[:len(word)-len(c)], word[len(word)-len(c):]}
		}
	}
	return []string{word}
}

func wordKind(w string) tokenKind {
	if isNumeric(w) {
		return kindNumber
	}
	return kindWord
}

// isNumeric returns true if the token is digits with optional separators.
func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}
