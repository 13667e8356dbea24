package token

import "fmt"

// Pos locates a node or error in the input stream. Off is the absolute byte
// offset; Line and Col are zero based.
type Pos struct {
	Off  int64
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("offset %d (line=%d, col=%d)", p.Off, p.Line, p.Col)
}
