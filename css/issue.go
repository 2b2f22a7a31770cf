package css

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Issue is a single syntax problem found in stylesheet.
type Issue struct {
	Offset int // byte offset in source
	Line   int // 1-based
	Col    int // 1-based
	Msg    string
}

func (i *Issue) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", i.Line, i.Col, i.Msg)
}

// Issues extracts all issues from error returned by Check in the order they
// were found.
func Issues(err error) []*Issue {
	var out []*Issue
	for _, e := range multierr.Errors(err) {
		var i *Issue
		if errors.As(e, &i) {
			out = append(out, i)
		}
	}
	return out
}
