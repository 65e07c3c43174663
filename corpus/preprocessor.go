package corpus

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// StartTag is the sentence-boundary pseudo-tag. Boundary lines carry it
	// in the training corpus, and the estimator seeds transition counting
	// with it.
	StartTag = "--s--"

	// BoundaryWord stands in for the empty word on a boundary line.
	BoundaryWord = "--n--"

	UnknownWord      = "--unk--"
	UnknownDigitWord = "--unk_digit--"
	UnknownPunctWord = "--unk_punct--"
	UnknownUpperWord = "--unk_upper--"
	UnknownNounWord  = "--unk_noun--"
	UnknownVerbWord  = "--unk_verb--"
	UnknownAdjWord   = "--unk_adj--"
	UnknownAdvWord   = "--unk_adv--"
)

var (
	nounSuffixes = []string{"action", "age", "ance", "cy", "dom", "ee", "ence", "er", "hood", "ion", "ism", "ist", "ity", "ling", "ment", "ness", "or", "ry", "scape", "ship", "ty"}
	verbSuffixes = []string{"ate", "ify", "ise", "ize"}
	adjSuffixes  = []string{"able", "ese", "ful", "i", "ian", "ible", "ic", "ish", "ive", "less", "ly", "ous"}
	advSuffixes  = []string{"ward", "wards", "wise"}
)

// MalformedLineError reports a training line that does not split into a
// word and a tag. Training aborts on the first one.
type MalformedLineError struct {
	Line string
}

func (e MalformedLineError) Error() string {
	return fmt.Sprintf("corpus line %q is not a word/tag pair", e.Line)
}

// Preprocessor maps a raw corpus line to a (word, tag) pair consistent
// with the supplied vocabulary.
type Preprocessor func(line string, vocab Vocabulary) (word string, tag string, err error)

// ReadWordTag is the default Preprocessor. Blank lines are sentence
// boundaries and become the (BoundaryWord, StartTag) pair; any other line
// must hold exactly a word and a tag separated by whitespace. Words absent
// from the vocabulary are replaced with their unknown class.
func ReadWordTag(line string, vocab Vocabulary) (string, string, error) {
	if len(strings.TrimSpace(line)) == 0 {
		return BoundaryWord, StartTag, nil
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", MalformedLineError{Line: line}
	}

	word, tag := fields[0], fields[1]
	if !vocab.Contains(word) {
		word = classifyUnknown(word)
	}
	return word, tag, nil
}

// NormalizeWord prepares a decode-time token for the model: known words
// pass through, everything else maps to its unknown class. The class words
// themselves have to be in the vocabulary for this to help.
func NormalizeWord(word string, vocab Vocabulary) string {
	if vocab.Contains(word) {
		return word
	}
	return classifyUnknown(word)
}

func classifyUnknown(word string) string {
	var hasDigit, hasPunct, hasUpper bool
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasPunct = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	switch {
	case hasDigit:
		return UnknownDigitWord
	case hasPunct:
		return UnknownPunctWord
	case hasUpper:
		return UnknownUpperWord
	case hasAnySuffix(word, nounSuffixes):
		return UnknownNounWord
	case hasAnySuffix(word, verbSuffixes):
		return UnknownVerbWord
	case hasAnySuffix(word, adjSuffixes):
		return UnknownAdjWord
	case hasAnySuffix(word, advSuffixes):
		return UnknownAdvWord
	}
	return UnknownWord
}

func hasAnySuffix(word string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}
