package hmm

import (
	"text2phenotype.com/hmt/corpus"
	"text2phenotype.com/hmt/utils"
	"sort"
	"strconv"
)

// DefaultAlpha is the additive smoothing constant applied to both the
// transition and the emission counts.
const DefaultAlpha = 0.001

type tagPair struct {
	prev string
	curr string
}

type tagWord struct {
	tag  string
	word string
}

// Model is a first-order HMM over tags and words. Tags are kept in sorted
// order; a tag's index into Transition and Emission never changes for the
// lifetime of the model.
//
// A trained model is immutable. Predict allocates its own trellis per
// call and only reads the matrices, so concurrent Predict calls against
// one model are safe without locking.
type Model struct {
	Tags       []string          `json:"tags"`
	Alpha      float64           `json:"alpha"`
	Transition [][]float64       `json:"transition"`
	Emission   [][]float64       `json:"emission"`
	Vocab      corpus.Vocabulary `json:"vocab"`

	tagIndex map[string]int
	startIdx int

	transitionCounts map[tagPair]int
	emissionCounts   map[tagWord]int
	tagCounts        map[string]int
}

// Train builds a model from a tagged corpus in one counting pass followed
// by smoothing. The corpus is treated as a single continuous stream: the
// preprocessor is expected to surface sentence boundaries as
// sentinel-tagged lines, they are not detected here.
func Train(lines []string, vocab corpus.Vocabulary, prep corpus.Preprocessor, alpha float64) (*Model, error) {
	if vocab.Size() == 0 {
		return nil, ErrEmptyVocabulary
	}

	model := Model{
		Alpha:            alpha,
		Vocab:            vocab,
		transitionCounts: make(map[tagPair]int),
		emissionCounts:   make(map[tagWord]int),
		tagCounts:        make(map[string]int),
	}

	prevTag := corpus.StartTag
	for _, line := range lines {
		word, tag, err := prep(line, vocab)
		if err != nil {
			return nil, err
		}
		model.transitionCounts[tagPair{prev: prevTag, curr: tag}]++
		model.emissionCounts[tagWord{tag: tag, word: word}]++
		model.tagCounts[tag]++
		prevTag = tag
	}

	if err := model.indexTags(); err != nil {
		return nil, err
	}
	model.buildTransition()
	model.buildEmission()
	return &model, nil
}

// indexTags finalizes the tagset: distinct observed tags, sorted, with the
// sorted position as the row/column index.
func (m *Model) indexTags() error {
	m.Tags = make([]string, 0, len(m.tagCounts))
	for tag := range m.tagCounts {
		m.Tags = append(m.Tags, tag)
	}
	sort.Strings(m.Tags)
	return m.reindex()
}

func (m *Model) reindex() error {
	m.tagIndex = make(map[string]int, len(m.Tags))
	for i, tag := range m.Tags {
		m.tagIndex[tag] = i
	}
	startIdx, ok := m.tagIndex[corpus.StartTag]
	if !ok {
		return ErrNoStartTag
	}
	m.startIdx = startIdx
	return nil
}

func (m *Model) buildTransition() {
	numTags := len(m.Tags)
	m.Transition = make([][]float64, numTags)
	for i, prev := range m.Tags {
		row := make([]float64, numTags)
		denom := m.Alpha*float64(numTags) + float64(m.tagCounts[prev])
		for j, curr := range m.Tags {
			count := m.transitionCounts[tagPair{prev: prev, curr: curr}]
			row[j] = (float64(count) + m.Alpha) / denom
		}
		m.Transition[i] = row
	}
}

func (m *Model) buildEmission() {
	vocabSize := m.Vocab.Size()
	m.Emission = make([][]float64, len(m.Tags))
	for i, tag := range m.Tags {
		row := make([]float64, vocabSize)
		denom := m.Alpha*float64(vocabSize) + float64(m.tagCounts[tag])
		for word, w := range m.Vocab {
			count := m.emissionCounts[tagWord{tag: tag, word: word}]
			row[w] = (float64(count) + m.Alpha) / denom
		}
		m.Emission[i] = row
	}
}

func (m *Model) NumTags() int {
	return len(m.Tags)
}

// Fingerprint identifies the trained parameters well enough to tell
// models apart in result metadata and cache keys.
func (m *Model) Fingerprint() uint64 {
	parts := make([]string, 0, len(m.Tags)+2)
	parts = append(parts, m.Tags...)
	parts = append(parts,
		strconv.Itoa(m.Vocab.Size()),
		strconv.FormatFloat(m.Alpha, 'g', -1, 64))
	return utils.HashStrings(parts)
}
