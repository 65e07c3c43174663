package hmm

import "math"

// Predict decodes the most probable tag sequence for the sentence. Every
// word must be in the vocabulary; callers normalize unknown words before
// getting here. Output length equals input length.
func (m *Model) Predict(words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, ErrEmptySentence
	}

	wordIdx := make([]int, len(words))
	for i, word := range words {
		idx, ok := m.Vocab.Index(word)
		if !ok {
			return nil, UnknownWordError{Word: word, Position: i}
		}
		wordIdx[i] = idx
	}

	bestProbs, bestPaths := m.viterbiForward(wordIdx)
	return m.viterbiBackward(bestProbs, bestPaths), nil
}

// viterbiForward fills the trellis left to right with best
// log-probabilities and backpointers.
func (m *Model) viterbiForward(words []int) ([][]float64, [][]int) {
	numTags := len(m.Tags)
	bestProbs := make([][]float64, numTags)
	bestPaths := make([][]int, numTags)
	for i := 0; i < numTags; i++ {
		bestProbs[i] = make([]float64, len(words))
		bestPaths[i] = make([]int, len(words))
	}

	// Column 0 starts from the sentinel row. The zero check only fires on
	// matrices that were not smoothed by Train, e.g. loaded from a file.
	for i := 0; i < numTags; i++ {
		if m.Transition[m.startIdx][i] == 0 {
			bestProbs[i][0] = math.Inf(-1)
			continue
		}
		bestProbs[i][0] = math.Log(m.Transition[m.startIdx][i]) + math.Log(m.Emission[i][words[0]])
	}

	// Strict > with k scanned in ascending tag order keeps the first tag
	// reaching the maximum, so ties always resolve the same way.
	for t := 1; t < len(words); t++ {
		for j := 0; j < numTags; j++ {
			bestProb := math.Inf(-1)
			bestPath := 0
			for k := 0; k < numTags; k++ {
				prob := bestProbs[k][t-1] + math.Log(m.Transition[k][j]) + math.Log(m.Emission[j][words[t]])
				if prob > bestProb {
					bestProb = prob
					bestPath = k
				}
			}
			bestProbs[j][t] = bestProb
			bestPaths[j][t] = bestPath
		}
	}

	return bestProbs, bestPaths
}

// viterbiBackward picks the best final state and follows backpointers to
// recover the tag sequence in sentence order.
func (m *Model) viterbiBackward(bestProbs [][]float64, bestPaths [][]int) []string {
	last := len(bestProbs[0]) - 1

	bestProb := math.Inf(-1)
	z := 0
	for k := 0; k < len(m.Tags); k++ {
		if bestProbs[k][last] > bestProb {
			bestProb = bestProbs[k][last]
			z = k
		}
	}

	tags := make([]string, last+1)
	tags[last] = m.Tags[z]
	for t := last; t >= 1; t-- {
		z = bestPaths[z][t]
		tags[t-1] = m.Tags[z]
	}
	return tags
}
