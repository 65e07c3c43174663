package corpus

import (
	"text2phenotype.com/hmt/utils"
	"sort"
)

// Vocabulary maps a word to its dense index in [0, len). Indices are
// assigned once at construction and never change afterwards.
type Vocabulary map[string]int

func NewVocabulary(words []string) Vocabulary {
	unique := make(map[string]bool, len(words))
	for _, word := range words {
		unique[word] = true
	}

	sorted := make([]string, 0, len(unique))
	for word := range unique {
		sorted = append(sorted, word)
	}
	sort.Strings(sorted)

	vocab := make(Vocabulary, len(sorted))
	for i, word := range sorted {
		vocab[word] = i
	}
	return vocab
}

// LoadVocabulary reads a word-per-line vocabulary file. Index assignment
// follows NewVocabulary, not file order, so the same word set always
// produces the same indices.
func LoadVocabulary(filePath string) (Vocabulary, error) {
	words, err := utils.ReadList(filePath)
	if err != nil {
		return nil, err
	}
	return NewVocabulary(words), nil
}

func (vocab Vocabulary) Index(word string) (int, bool) {
	idx, ok := vocab[word]
	return idx, ok
}

func (vocab Vocabulary) Contains(word string) bool {
	_, ok := vocab[word]
	return ok
}

func (vocab Vocabulary) Size() int {
	return len(vocab)
}
