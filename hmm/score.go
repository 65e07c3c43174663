package hmm

// Score decodes the test words and returns per-token accuracy against the
// gold tags. Sequence lengths must match; that is checked before any
// decoding work happens.
func (m *Model) Score(words []string, tags []string) (float64, error) {
	if len(words) != len(tags) {
		return 0, LengthMismatchError{Words: len(words), Tags: len(tags)}
	}

	predicted, err := m.Predict(words)
	if err != nil {
		return 0, err
	}

	matches := 0
	for i, tag := range predicted {
		if tag == tags[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(tags)), nil
}
