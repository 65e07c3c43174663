package hmm

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySentence   = errors.New("cannot decode an empty sentence")
	ErrEmptyVocabulary = errors.New("cannot train with an empty vocabulary")
	ErrNoStartTag      = errors.New("training corpus has no sentence-boundary lines")
)

// UnknownWordError reports a decode-time token missing from the
// vocabulary. The decoder never substitutes unknown-word classes itself;
// that normalization belongs to the preprocessing side.
type UnknownWordError struct {
	Word     string
	Position int
}

func (e UnknownWordError) Error() string {
	return fmt.Sprintf("word %q at position %d is not in the vocabulary", e.Word, e.Position)
}

// LengthMismatchError reports Score being called with unequal sequences.
type LengthMismatchError struct {
	Words int
	Tags  int
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("got %d words but %d tags", e.Words, e.Tags)
}
