package tokenizer

import (
	"text2phenotype.com/hmt/types"
	"errors"
	"unicode"
	"unicode/utf8"
)

// NewTokenizer returns a word-level tokenizer filling sent.Tokens with
// spans into the original text. Words, numbers and punctuation become
// separate tokens; newlines get their own token so later stages can skip
// them without losing position information.
func NewTokenizer() func(sent *types.Sentence) error {
	return func(sent *types.Sentence) error {
		if sent.Text == nil {
			return errors.New("sentence has no text")
		}

		text := *sent.Text
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			switch {
			case r == '\n':
				sent.Tokens = append(sent.Tokens, makeToken(sent, text, i, i+size, func(t *types.Token) {
					t.IsNewline = true
				}))
				i += size
			case unicode.IsSpace(r):
				i += size
			case unicode.IsLetter(r):
				end := scanWhile(text, i, isWordRune)
				sent.Tokens = append(sent.Tokens, makeToken(sent, text, i, end, func(t *types.Token) {
					t.IsWord = true
				}))
				i = end
			case unicode.IsDigit(r):
				end := scanWhile(text, i, unicode.IsDigit)
				sent.Tokens = append(sent.Tokens, makeToken(sent, text, i, end, func(t *types.Token) {
					t.IsNumber = true
				}))
				i = end
			default:
				sent.Tokens = append(sent.Tokens, makeToken(sent, text, i, i+size, func(t *types.Token) {
					t.IsPunct = true
				}))
				i += size
			}
		}
		return nil
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\''
}

func scanWhile(text string, from int, pred func(rune) bool) int {
	i := from
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !pred(r) {
			break
		}
		i += size
	}
	return i
}

func makeToken(sent *types.Sentence, text string, begin int, end int, mark func(*types.Token)) *types.Token {
	tokenText := text[begin:end]
	token := &types.Token{
		Span: types.Span{
			Begin: sent.Begin + int32(begin),
			End:   sent.Begin + int32(end),
			Text:  &tokenText,
		},
	}
	mark(token)
	return token
}
