package types

// Position is a zero-based line/column location inside a note's text.
type Position struct {
	Line int
	Ch   int
}
