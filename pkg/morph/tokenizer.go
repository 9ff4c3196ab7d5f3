// Package morph defines the morphological tokenizer contract used to build
// the morphological annotation layer.
package morph

// Token is one morphological unit.
type Token interface {
	// Surface is the token text as it appears in the input.
	Surface() string
	// BaseForm is the dictionary form of the token.
	BaseForm() string
	// PartOfSpeech is the classification sequence, most general first.
	PartOfSpeech() []string
}

// Tokenizer splits text into ordered tokens. The concatenated surfaces must
// equal a prefix of the input.
//
// A Tokenizer is not required to be safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

// Factory constructs a Tokenizer. It is called at most once per worker.
type Factory func() (Tokenizer, error)
