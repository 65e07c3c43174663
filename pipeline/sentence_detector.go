package pipeline

import (
	"text2phenotype.com/hmt/types"
	"strings"
)

// NewSentenceDetector splits incoming text into line sentences with spans
// into the original document. Blank lines carry no tokens and are skipped.
func NewSentenceDetector() func(in <-chan string) <-chan types.Sentence {
	return func(in <-chan string) <-chan types.Sentence {
		out := make(chan types.Sentence)

		go func() {
			defer close(out)
			for text := range in {
				begin := 0
				for begin <= len(text) {
					lineEnd := strings.IndexByte(text[begin:], '\n')
					end := len(text)
					if lineEnd >= 0 {
						end = begin + lineEnd
					}

					line := text[begin:end]
					if len(strings.TrimSpace(line)) > 0 {
						out <- types.Sentence{
							Span: types.Span{
								Begin: int32(begin),
								End:   int32(end),
								Text:  &line,
							},
						}
					}

					if lineEnd < 0 {
						break
					}
					begin = end + 1
				}
			}
		}()

		return out
	}
}
