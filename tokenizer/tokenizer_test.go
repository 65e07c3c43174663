package tokenizer

import (
	"text2phenotype.com/hmt/types"
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, text string) *types.Sentence {
	t.Helper()
	sent := &types.Sentence{
		Span: types.Span{Begin: 0, End: int32(len(text)), Text: &text},
	}
	require.NoError(t, NewTokenizer()(sent))
	return sent
}

func TestTokenizerClassesAndSpans(t *testing.T) {
	sent := tokenize(t, "The cat sat, 42 times.\n")

	var got []string
	for _, token := range sent.Tokens {
		got = append(got, *token.Text)
	}
	require.Equal(t, []string{"The", "cat", "sat", ",", "42", "times", ".", "\n"}, got)

	require.True(t, sent.Tokens[0].IsWord)
	require.True(t, sent.Tokens[3].IsPunct)
	require.True(t, sent.Tokens[4].IsNumber)
	require.True(t, sent.Tokens[7].IsNewline)

	// Spans index back into the original text.
	require.Equal(t, int32(4), sent.Tokens[1].Begin)
	require.Equal(t, int32(7), sent.Tokens[1].End)
}

func TestTokenizerSentenceOffset(t *testing.T) {
	text := "cat"
	sent := &types.Sentence{
		Span: types.Span{Begin: 10, End: 13, Text: &text},
	}
	require.NoError(t, NewTokenizer()(sent))
	require.Len(t, sent.Tokens, 1)
	require.Equal(t, int32(10), sent.Tokens[0].Begin)
	require.Equal(t, int32(13), sent.Tokens[0].End)
}

func TestTokenizerApostrophes(t *testing.T) {
	sent := tokenize(t, "didn't")
	require.Len(t, sent.Tokens, 1)
	require.Equal(t, "didn't", *sent.Tokens[0].Text)
}

func TestTokenizerNoText(t *testing.T) {
	require.Error(t, NewTokenizer()(&types.Sentence{}))
}
