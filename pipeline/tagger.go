package pipeline

import (
	"text2phenotype.com/hmt/corpus"
	"text2phenotype.com/hmt/hmm"
	"text2phenotype.com/hmt/logger"
	"text2phenotype.com/hmt/types"
	"text2phenotype.com/hmt/utils"
	"github.com/rs/zerolog"
	"sync"
)

type Tagger func(in <-chan types.Sentence) <-chan types.Sentence

// NewHMMTagger decodes a tag per non-newline token. Words missing from
// the model vocabulary are normalized to their unknown class first; the
// decoder itself refuses out-of-vocabulary words. A sentence that still
// fails to decode passes through untagged.
func NewHMMTagger(model *hmm.Model) Tagger {
	hmtLogger := logger.NewLogger("HMM tagger")

	return func(in <-chan types.Sentence) <-chan types.Sentence {
		out := make(chan types.Sentence)

		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {
				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					tagSentence(model, &sent, &hmtLogger)
					out <- sent
				}(sent)
			}

			wg.Wait()
		}()

		return out
	}
}

func tagSentence(model *hmm.Model, sent *types.Sentence, hmtLogger *zerolog.Logger) {
	if len(sent.Tokens) == 0 {
		return
	}

	words := make([]string, 0, len(sent.Tokens))
	wordsIndex := make([]int, 0, len(sent.Tokens))
	for i, token := range sent.Tokens {
		if token.IsNewline {
			continue
		}
		words = append(words, corpus.NormalizeWord(*token.Text, model.Vocab))
		wordsIndex = append(wordsIndex, i)
	}
	if len(words) == 0 {
		return
	}

	tags, err := model.Predict(words)
	if err != nil {
		hmtLogger.Error().Err(err).
			Int32("sentence_begin", sent.Begin).
			Msg("Failed to decode sentence, leaving it untagged")
		return
	}

	for i, tag := range tags {
		tokenIndex := wordsIndex[i]
		sent.Tokens[tokenIndex].Tag = utils.GlobalStringStore().GetPointer(tag)
	}
}
