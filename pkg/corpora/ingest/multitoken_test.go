package ingest

import "testing"

func TestMultiTokenParserMergesPhrase(t *testing.T) {
	parser := NewMultiTokenParser([]DictEntry{
		{Canonical: "New York", Category: PROPN, Variants: []string{"nyc"}},
		{Canonical: "machine learning", Category: NOUN},
	})

	tokens := []Token{
		{"I", "PRON"}, {"love", NOUN}, {"new", ADJ}, {"york", NOUN},
		{"and", "CCONJ"}, {"machine", NOUN}, {"learning", VERB},
	}
	got := parser.Parse(tokens)

	want := []Token{
		{"I", "PRON"}, {"love", NOUN}, {"New York", PROPN},
		{"and", "CCONJ"}, {"machine learning", NOUN},
	}
	if len(got) != len(want) {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMultiTokenParserLongestMatch(t *testing.T) {
	parser := NewMultiTokenParser([]DictEntry{
		{Canonical: "united states", Category: PROPN},
		{Canonical: "united states of america", Category: PROPN},
	})

	tokens := []Token{{"United", PROPN}, {"States", PROPN}, {"of", "ADP"}, {"America", PROPN}}
	got := parser.Parse(tokens)

	if len(got) != 1 || got[0].Text != "united states of america" {
		t.Errorf("expected longest match, got %+v", got)
	}
}

func TestMultiTokenParserDoesNotCrossPunctuation(t *testing.T) {
	parser := NewMultiTokenParser([]DictEntry{{Canonical: "new york", Category: PROPN}})

	tokens := []Token{{"new", ADJ}, {".", PUNCT}, {"york", NOUN}}
	got := parser.Parse(tokens)

	if len(got) != 3 {
		t.Errorf("phrase should not span punctuation, got %+v", got)
	}
}

func TestMultiTokenParserKeepsCategoryWhenEmpty(t *testing.T) {
	parser := NewMultiTokenParser([]DictEntry{{Canonical: "ice cream"}})

	got := parser.Parse([]Token{{"ice", NOUN}, {"cream", NOUN}})
	if len(got) != 1 || got[0].Category != NOUN {
		t.Errorf("expected merged NOUN token, got %+v", got)
	}
}

func TestMultiTokenParserEmptyDict(t *testing.T) {
	parser := NewMultiTokenParser(nil)
	tokens := []Token{{"a", "DET"}, {"cat", NOUN}}

	if got := parser.Parse(tokens); len(got) != 2 {
		t.Errorf("empty dictionary should not change tokens, got %+v", got)
	}
}

func TestMultiTokenParserSingleWordVariants(t *testing.T) {
	parser := NewMultiTokenParser([]DictEntry{
		{Canonical: "colour", Category: NOUN, Variants: []string{"color"}},
		{Canonical: "New York", Category: PROPN},
	})

	tokens := []Token{{"Color", PROPN}, {"of", "ADP"}, {"new", ADJ}, {"york", NOUN}, {"colour", ADJ}}
	got := parser.Parse(tokens)

	want := []Token{{"colour", NOUN}, {"of", "ADP"}, {"New York", PROPN}, {"colour", NOUN}}
	if len(got) != len(want) {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
