package stoplist

import "strings"

// Coarse function-word categories assigned by the lexicon.
const (
	DET   = "DET"
	ADP   = "ADP"
	PRON  = "PRON"
	CCONJ = "CCONJ"
	SCONJ = "SCONJ"
	AUX   = "AUX"
	PART  = "PART"
	INTJ  = "INTJ"
	ADV   = "ADV"
)

// Manager maps closed-class words to their coarse category.
// Words absent from the manager are open-class and left to the tagger.
type Manager struct {
	stops map[string]string
}

// NewManager creates a manager from the built-in English lexicon plus
// extra stopwords, which are tagged as PART unless already known.
func NewManager(extra []string) *Manager {
	m := &Manager{stops: make(map[string]string, len(english)+len(extra))}
	for cat, words := range english {
		for _, w := range words {
			m.stops[w] = cat
		}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := m.stops[w]; !ok {
			m.stops[w] = PART
		}
	}
	return m
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Category returns the closed-class category for a token.
func (m *Manager) Category(token string) (string, bool) {
	cat, ok := m.stops[strings.ToLower(token)]
	return cat, ok
}

var english = map[string][]string{
	DET: {
		"a", "an", "the", "this", "that", "these", "those", "each", "every",
		"some", "any", "no", "all", "both", "either", "neither", "another",
		"such", "what", "which", "whose",
	},
	ADP: {
		"about", "above", "across", "after", "against", "along", "among",
		"around", "at", "before", "behind", "below", "beneath", "beside",
		"between", "beyond", "by", "despite", "down", "during", "except",
		"for", "from", "in", "inside", "into", "near", "of", "off", "on",
		"onto", "out", "outside", "over", "past", "per", "since", "through",
		"throughout", "toward", "towards", "under", "until", "up", "upon",
		"via", "with", "within", "without",
	},
	PRON: {
		"i", "me", "my", "mine", "myself", "you", "your", "yours", "yourself",
		"yourselves", "he", "him", "his", "himself", "she", "her", "hers",
		"herself", "it", "its", "itself", "we", "us", "our", "ours",
		"ourselves", "they", "them", "their", "theirs", "themselves", "who",
		"whom", "someone", "something", "anyone", "anything", "everyone",
		"everything", "nobody", "nothing",
	},
	CCONJ: {"and", "or", "but", "nor", "yet", "so"},
	SCONJ: {
		"if", "because", "although", "though", "while", "whereas", "unless",
		"whether", "than", "as", "once", "when", "where",
	},
	AUX: {
		"am", "is", "are", "was", "were", "be", "been", "being", "have",
		"has", "had", "having", "do", "does", "did", "will", "would", "shall",
		"should", "can", "could", "may", "might", "must", "'s", "'re", "'ve",
		"'ll", "'d", "'m",
	},
	PART: {"not", "to", "n't", "'"},
	INTJ: {"oh", "hey", "yes", "ah", "wow", "hello"},
	ADV: {
		"very", "too", "also", "just", "only", "then", "there", "here",
		"now", "never", "always", "often", "again", "still", "even", "how",
		"why", "more", "most", "much",
	},
}
