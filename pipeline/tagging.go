package pipeline

import (
	"text2phenotype.com/hmt/hmm"
	"text2phenotype.com/hmt/logger"
	"text2phenotype.com/hmt/types"
	"text2phenotype.com/hmt/utils"
	"errors"
	"fmt"
	"sync"
)

type TaggingParams struct {
	Model  *hmm.Model
	Config types.Configuration
}

// Tagging assembles the tagging pipeline: sentence detection,
// tokenization, HMM decoding, response building. The model is trained (or
// loaded) before this point and is only read from here on, so any number
// of requests may run through the pipeline concurrently.
//
// When the profile enables the result cache feature, responses are kept
// in memory keyed by the request text and profile request params. Decoding
// is deterministic, so a cache hit returns exactly what a fresh run would.
func Tagging(params TaggingParams) (Pipeline, error) {
	hmtLogger := logger.NewLogger("HMM tagging pipeline")

	if params.Model == nil {
		return nil, errors.New("tagging pipeline needs a trained model")
	}

	sentenceDetector := NewSentenceDetector()
	tokenize, err := NewTokenizer()
	if err != nil {
		hmtLogger.Err(err).Msg("Failed to create tokenizer")
		return nil, err
	}
	tagger := NewHMMTagger(params.Model)
	buildResponse := NewTagResponseBuilder(params.Model.Fingerprint())

	hmtLogger.Info().
		Int("num_tags", params.Model.NumTags()).
		Int("vocab_size", params.Model.Vocab.Size()).
		Msg("Tagging pipeline ready")

	ppln := func(request Request) <-chan string {
		responseChan := make(chan string, 1)
		pplnLog := hmtLogger.With().Str("tid", request.Tid).Logger()
		pplnLog.Info().Msg("Started tagging pipeline")

		go func() {
			in := make(chan string, 1)

			sd := sentenceDetector(in)
			tok := tokenize(sd)
			tagged := tagger(tok)
			res := buildResponse(tagged, request)

			in <- request.Text
			close(in)

			responseChan <- <-res
			pplnLog.Info().Msg("Finished tagging pipeline")
		}()

		return responseChan
	}

	if params.Config.CheckFeature(types.ResultCacheFeature) {
		hmtLogger.Info().Msg("Result cache enabled")
		return withResultCache(ppln, params.Config.RequestParams), nil
	}
	return ppln, nil
}

func withResultCache(ppln Pipeline, rParams types.RequestParams) Pipeline {
	var cache sync.Map
	paramsHash := rParams.GetHashCode()

	return func(request Request) <-chan string {
		key := fmt.Sprintf("%d_%d", paramsHash, utils.HashString(request.Text))
		if cached, ok := cache.Load(key); ok {
			out := make(chan string, 1)
			out <- cached.(string)
			close(out)
			return out
		}

		out := make(chan string, 1)
		go func() {
			defer close(out)
			response := <-ppln(request)
			cache.Store(key, response)
			out <- response
		}()
		return out
	}
}
