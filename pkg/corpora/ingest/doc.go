package ingest

// Universal coarse part-of-speech tags emitted by the tagger.
const (
	NOUN  = "NOUN"
	VERB  = "VERB"
	ADJ   = "ADJ"
	ADV   = "ADV"
	PROPN = "PROPN"
	NUM   = "NUM"
	PUNCT = "PUNCT"
	SPACE = "SPACE"
	SYM   = "SYM"
	X     = "X"
)

// Entity labels emitted by the recognizer.
const (
	LabelOrg      = "ORG"
	LabelLoc      = "LOC"
	LabelPerson   = "PERSON"
	LabelGPE      = "GPE"
	LabelQuantity = "QUANTITY"
	// LabelName marks runs of proper nouns when no taxonomy is configured.
	LabelName = "NAME"
)

// Token is a single annotated token.
type Token struct {
	Text     string
	Category string
}

// Entity is a labeled span of text.
type Entity struct {
	Text  string
	Label string
}

// Doc is an annotated document: ordered tokens and ordered entities.
type Doc struct {
	Tokens   []Token
	Entities []Entity
	Language string // ISO 639-1, empty when detection is off or inconclusive
}
