package mozdoc

import (
	"errors"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
)

var (
	ErrMalformedHeader = errors.New("malformed @-moz-document header")
	ErrUnmatchedBrace  = errors.New("unmatched brace in @-moz-document block")
)

// ParseError is returned when source cannot be split into document sections.
// Either kind makes the whole source unusable - there are no partial results.
type ParseError struct {
	Kind    ErrorKind
	Msg     string
	Offset  int // byte offset in source
	Line    int // 1-based
	Col     int // 1-based
	Context string
}

func newParseError(src string, offset int, kind ErrorKind, format string, args ...any) *ParseError {
	line, col, context := parse.Position(strings.NewReader(src), offset)
	return &ParseError{
		Kind:    kind,
		Msg:     fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Col:     col,
		Context: context,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Col, e.Msg)
}

// Is allows errors.Is(err, ErrMalformedHeader) and friends.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedHeader:
		return e.Kind == ErrorKindMalformedHeader
	case ErrUnmatchedBrace:
		return e.Kind == ErrorKindUnmatchedBrace
	}
	return false
}
