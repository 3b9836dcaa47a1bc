package ingest

import "strings"

// MultiTokenParser merges dictionary phrases into single tokens
type MultiTokenParser struct {
	dict   map[string]DictEntry // phrase -> entry
	maxLen int
}

// DictEntry represents a dictionary entry for a multi-token phrase
type DictEntry struct {
	Canonical string
	Category  string
	Variants  []string
}

// NewMultiTokenParser creates a new parser with the given dictionary
func NewMultiTokenParser(entries []DictEntry) *MultiTokenParser {
	dict := make(map[string]DictEntry)
	maxLen := 1
	for _, e := range entries {
		canonical := normalizePhrase(e.Canonical)
		dict[canonical] = e
		if l := phraseLen(canonical); l > maxLen {
			maxLen = l
		}
		for _, v := range e.Variants {
			variant := normalizePhrase(v)
			dict[variant] = e
			if l := phraseLen(variant); l > maxLen {
				maxLen = l
			}
		}
	}
	return &MultiTokenParser{dict: dict, maxLen: maxLen}
}

// Parse applies greedy longest-match over word tokens. A matched phrase,
// or a single word listed as an entry or variant, becomes one token with the
// entry's canonical text and category. Phrases never span punctuation or
// whitespace tokens.
func (p *MultiTokenParser) Parse(tokens []Token) []Token {
	if len(p.dict) == 0 {
		return tokens
	}
	result := make([]Token, 0, len(tokens))
	words := make([]string, 0, p.maxLen)
	ends := make([]int, 0, p.maxLen)
	i := 0

	for i < len(tokens) {
		if !isWord(tokens[i]) {
			result = append(result, tokens[i])
			i++
			continue
		}

		// ends[n-1] is the index just past the n-th word of the candidate.
		words, ends = words[:0], ends[:0]
		for j := i; j < len(tokens) && len(words) < p.maxLen && isWord(tokens[j]); j++ {
			words = append(words, strings.ToLower(tokens[j].Text))
			ends = append(ends, j+1)
		}

		matchEnd := 0
		var matched DictEntry
		for n := len(words); n >= 1; n-- {
			if entry, ok := p.dict[strings.Join(words[:n], " ")]; ok {
				matched = entry
				matchEnd = ends[n-1]
				break
			}
		}

		if matchEnd > 0 {
			cat := matched.Category
			if cat == "" {
				cat = tokens[i].Category
			}
			result = append(result, Token{Text: matched.Canonical, Category: cat})
			i = matchEnd
			continue
		}
		result = append(result, tokens[i])
		i++
	}

	return result
}

func isWord(t Token) bool {
	switch t.Category {
	case PUNCT, SPACE, SYM:
		return false
	}
	return true
}

func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

func phraseLen(phrase string) int {
	if phrase == "" {
		return 1
	}
	return len(strings.Fields(phrase))
}
