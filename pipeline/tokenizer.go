package pipeline

import (
	"text2phenotype.com/hmt/logger"
	"text2phenotype.com/hmt/tokenizer"
	"text2phenotype.com/hmt/types"
	"sync"
)

type Tokenizer func(in <-chan types.Sentence) <-chan types.Sentence

func NewTokenizer() (Tokenizer, error) {
	tokenize := tokenizer.NewTokenizer()
	hmtLogger := logger.NewLogger("Tokenizer")

	return func(in <-chan types.Sentence) <-chan types.Sentence {
		out := make(chan types.Sentence)

		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {
				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					if err := tokenize(&sent); err != nil {
						hmtLogger.Error().Err(err)
					}
					out <- sent
				}(sent)
			}

			wg.Wait()
		}()

		return out
	}, nil
}
