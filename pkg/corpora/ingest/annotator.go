package ingest

// DefaultMaxLength is the default annotator input ceiling in characters.
const DefaultMaxLength = 1_000_000

// Annotator turns raw text into an annotated document. Implementations
// expose a mutable input ceiling so callers can raise it for large inputs.
type Annotator interface {
	Annotate(text string) (Doc, error)
	MaxLength() int
	SetMaxLength(n int)
}

// WithMaxLength raises the annotator's ceiling to at least n for the
// duration of fn and restores the previous value on every exit path,
// including panics.
func WithMaxLength(a Annotator, n int, fn func() error) error {
	prev := a.MaxLength()
	if n > prev {
		a.SetMaxLength(n)
	}
	defer a.SetMaxLength(prev)
	return fn()
}
