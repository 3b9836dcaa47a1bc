package ingest

import (
	"reflect"
	"testing"
)

func tokenize(text string) []string {
	raw := NewTokenizer().split(text)
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = r.text
	}
	return out
}

func TestTokenizerBasic(t *testing.T) {
	tokens := tokenize("The quick brown fox jumps over the lazy dog.")
	expected := []string{"The", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog", "."}

	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("tokens = %q, want %q", tokens, expected)
	}
}

func TestTokenizerHyphens(t *testing.T) {
	tokens := tokenize("machine-learning and deep-learning")
	expected := []string{"machine-learning", "and", "deep-learning"}

	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("tokens = %q, want %q", tokens, expected)
	}
}

func TestTokenizerPreservesCase(t *testing.T) {
	tokens := tokenize("BERT GPT-4 Transformer")
	expected := []string{"BERT", "GPT-4", "Transformer"}

	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("tokens = %q, want %q", tokens, expected)
	}
}

func TestTokenizerWhitespace(t *testing.T) {
	tokens := tokenize("cat  dog\nbird")

	// single spaces are dropped, other runs are kept as tokens
	expected := []string{"cat", "  ", "dog", "\n", "bird"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("tokens = %q, want %q", tokens, expected)
	}
}

func TestTokenizerNumbers(t *testing.T) {
	tokens := tokenize("It costs 1,000.50 today, not 3.")
	expected := []string{"It", "costs", "1,000.50", "today", ",", "not", "3", "."}

	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("tokens = %q, want %q", tokens, expected)
	}
}

func TestTokenizerContractions(t *testing.T) {
	tokens := tokenize("don't it's")
	expected := []string{"do", "n't", "it", "'s"}

	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("tokens = %q, want %q", tokens, expected)
	}
}

func TestTokenizerSentenceStart(t *testing.T) {
	raw := NewTokenizer().split("Cats sleep. Dogs bark")

	starts := map[string]bool{}
	for _, r := range raw {
		starts[r.text] = r.sentStart
	}
	if !starts["Cats"] || !starts["Dogs"] {
		t.Errorf("sentence-initial words should be marked: %+v", raw)
	}
	if starts["sleep"] || starts["bark"] {
		t.Errorf("inner words should not be marked: %+v", raw)
	}
}

func TestTokenizerEmpty(t *testing.T) {
	if tokens := tokenize(""); len(tokens) != 0 {
		t.Errorf("empty text should give no tokens, got %q", tokens)
	}
}

func TestTokenizerOffsets(t *testing.T) {
	text := "Señor  Bob's café, NASA"
	for _, r := range NewTokenizer().split(text) {
		if got := text[r.start:r.end]; got != r.text {
			t.Errorf("token %q spans %q", r.text, got)
		}
	}

	curly := "it’s"
	raw := NewTokenizer().split(curly)
	if len(raw) != 2 || raw[0].start != 0 || raw[1].end != len(curly) {
		t.Errorf("normalized clitics should span the whole word, got %+v", raw)
	}
}
