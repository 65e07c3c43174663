package hmm

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// LoadModelFromFile reads a serialized model. Matrices come in as-is, so
// files produced by other tooling may hold unsmoothed probabilities; the
// decoder's zero guard covers that. Count tables are not serialized.
func LoadModelFromFile(modelFilePath string) (*Model, error) {
	buf, err := ioutil.ReadFile(modelFilePath)
	if err != nil {
		return nil, err
	}

	var m Model
	if err = json.Unmarshal(buf, &m); err != nil {
		return nil, err
	}
	if err = m.reindex(); err != nil {
		return nil, err
	}
	if err = m.checkDimensions(); err != nil {
		return nil, fmt.Errorf("model file %q: %w", modelFilePath, err)
	}
	return &m, nil
}

// checkDimensions verifies the matrices agree with the tagset and the
// vocabulary. Files written by other tooling can carry ragged or truncated
// rows, and the decoder indexes the matrices without bounds checks.
func (m *Model) checkDimensions() error {
	numTags := len(m.Tags)
	if len(m.Transition) != numTags {
		return fmt.Errorf("transition matrix has %d rows, want %d", len(m.Transition), numTags)
	}
	for i, row := range m.Transition {
		if len(row) != numTags {
			return fmt.Errorf("transition row %d has %d entries, want %d", i, len(row), numTags)
		}
	}
	if len(m.Emission) != numTags {
		return fmt.Errorf("emission matrix has %d rows, want %d", len(m.Emission), numTags)
	}
	vocabSize := m.Vocab.Size()
	for i, row := range m.Emission {
		if len(row) != vocabSize {
			return fmt.Errorf("emission row %d has %d entries, want %d", i, len(row), vocabSize)
		}
	}
	return nil
}

func SaveModelToFile(m *Model, modelFilePath string) error {
	buf, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(modelFilePath, buf, 0644)
}
