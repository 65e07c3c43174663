package types

type Span struct {
	Begin int32
	End   int32
	Text  *string
}
