package corpus

import "text2phenotype.com/hmt/utils"

// ReadCorpus loads a tagged corpus file keeping blank boundary lines.
func ReadCorpus(filePath string) ([]string, error) {
	return utils.ReadLines(filePath)
}

// SplitWordsTags runs the preprocessor over test corpus lines and returns
// the parallel word and gold-tag sequences used for evaluation.
func SplitWordsTags(lines []string, vocab Vocabulary, prep Preprocessor) ([]string, []string, error) {
	words := make([]string, 0, len(lines))
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		word, tag, err := prep(line, vocab)
		if err != nil {
			return nil, nil, err
		}
		words = append(words, word)
		tags = append(tags, tag)
	}
	return words, tags, nil
}
