package types

type Token struct {
	Span
	Tag       *string
	IsPunct   bool
	IsWord    bool
	IsNumber  bool
	IsNewline bool
}
