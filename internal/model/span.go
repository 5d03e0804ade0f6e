package model

import "fmt"

// Span locates a directive payload in its source file. It is a plain value,
// not a reference into parser state, so validators can carry spans across
// passes freely.
type Span struct {
	File      string
	Line      int
	Col       int
	Offset    int
	EndOffset int
}

// IsValid reports whether the span points at real source.
func (s Span) IsValid() bool { return s.Line > 0 }

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Col)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}
