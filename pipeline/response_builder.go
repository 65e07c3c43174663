package pipeline

import (
	"text2phenotype.com/hmt/logger"
	"text2phenotype.com/hmt/types"
	"encoding/json"
	"sort"
	"strconv"
)

type TokenResult struct {
	Text  string `json:"text"`
	Tag   string `json:"tag,omitempty"`
	Begin int32  `json:"begin"`
	End   int32  `json:"end"`
}

type SentenceResult struct {
	Text   string        `json:"text"`
	Begin  int32         `json:"begin"`
	End    int32         `json:"end"`
	Tokens []TokenResult `json:"tokens"`
}

type TagResponse struct {
	Tid       string           `json:"tid"`
	Model     string           `json:"model"`
	Sentences []SentenceResult `json:"sentences"`
}

// NewTagResponseBuilder drains the tagged sentence channel and marshals
// the response. Upstream stages reorder sentences, so they get sorted
// back into document order here.
func NewTagResponseBuilder(modelFingerprint uint64) func(in <-chan types.Sentence, request Request) <-chan string {
	hmtLogger := logger.NewLogger("Tag response builder")
	model := strconv.FormatUint(modelFingerprint, 16)

	return func(in <-chan types.Sentence, request Request) <-chan string {
		out := make(chan string, 1)

		go func() {
			defer close(out)
			response := TagResponse{
				Tid:       request.Tid,
				Model:     model,
				Sentences: []SentenceResult{},
			}

			for sent := range in {
				result := SentenceResult{
					Begin:  sent.Begin,
					End:    sent.End,
					Tokens: make([]TokenResult, 0, len(sent.Tokens)),
				}
				if sent.Text != nil {
					result.Text = *sent.Text
				}
				for _, token := range sent.Tokens {
					if token.IsNewline {
						continue
					}
					tokenResult := TokenResult{
						Text:  *token.Text,
						Begin: token.Begin,
						End:   token.End,
					}
					if token.Tag != nil {
						tokenResult.Tag = *token.Tag
					}
					result.Tokens = append(result.Tokens, tokenResult)
				}
				response.Sentences = append(response.Sentences, result)
			}

			sort.Slice(response.Sentences, func(i, j int) bool {
				return response.Sentences[i].Begin < response.Sentences[j].Begin
			})

			buf, err := json.Marshal(response)
			if err != nil {
				hmtLogger.Err(err).Str("tid", request.Tid).Msg("Failed to marshal response")
			}
			out <- string(buf)
		}()

		return out
	}
}
