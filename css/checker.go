// Package css checks that stylesheet is well formed enough to be served as
// is: every bracket is balanced and there are no broken strings, urls or
// comments. It does not know anything about properties or selectors.
package css

import (
	"bytes"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Checker validates stylesheet syntax.
type Checker struct {
	log *zap.Logger
}

// NewChecker creates a new CSS checker.
func NewChecker(log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{log: log.Named("css-checker")}
}

type opener struct {
	closer byte
	at     position
	text   string
}

// Check tokenizes data and returns all problems found combined into a single
// error (use Issues to get them back), or nil if stylesheet is fine.
// The optional source parameter identifies what's being checked (for debug logging).
func (c *Checker) Check(data []byte, source ...string) error {
	log := c.log
	if len(source) > 0 && source[0] != "" {
		log = log.With(zap.String("source", source[0]))
	}
	log.Debug("Checking CSS", zap.Int("bytes", len(data)))

	var (
		errs error
		open []opener
		pos  = newPosition()
	)

	report := func(at position, format string, args ...any) {
		issue := &Issue{Offset: at.offset, Line: at.line, Col: at.col, Msg: fmt.Sprintf(format, args...)}
		log.Debug("CSS issue", zap.Error(issue))
		errs = multierr.Append(errs, issue)
	}

	lexer := css.NewLexer(parse.NewInput(bytes.NewReader(data)))
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				report(pos, "%v", err)
			}
			for i := len(open) - 1; i >= 0; i-- {
				report(open[i].at, "%q is never closed", open[i].text)
			}
			return errs

		case css.LeftBraceToken:
			open = append(open, opener{closer: '}', at: pos, text: "{"})
		case css.LeftBracketToken:
			open = append(open, opener{closer: ']', at: pos, text: "["})
		case css.LeftParenthesisToken, css.FunctionToken:
			open = append(open, opener{closer: ')', at: pos, text: string(text)})

		case css.RightBraceToken, css.RightBracketToken, css.RightParenthesisToken:
			closer := text[0]
			switch {
			case len(open) == 0:
				report(pos, "unexpected %q", closer)
			case open[len(open)-1].closer != closer:
				top := open[len(open)-1]
				report(pos, "unexpected %q, %q opened at line %d, column %d is not closed", closer, top.text, top.at.line, top.at.col)
				// recover when closer matches something further down
				for i := len(open) - 2; i >= 0; i-- {
					if open[i].closer == closer {
						open = open[:i]
						break
					}
				}
			default:
				open = open[:len(open)-1]
			}

		case css.BadStringToken:
			report(pos, "string contains unescaped line break")
		case css.BadURLToken:
			report(pos, "malformed url")
		case css.StringToken:
			if !closedString(text) {
				report(pos, "unterminated string")
			}
		case css.CommentToken:
			if len(text) < 4 || !bytes.HasSuffix(text, []byte("*/")) {
				report(pos, "unterminated comment")
			}
		}
		pos.advance(text)
	}
}

// closedString reports whether string token ends with its unescaped opening quote.
func closedString(text []byte) bool {
	if len(text) < 2 || text[len(text)-1] != text[0] {
		return false
	}
	slashes := 0
	for i := len(text) - 2; i > 0 && text[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}
