package css

import "unicode/utf8"

// position follows tokens and keeps line and column of the current offset,
// counting them the way parse.Position does: "\n", "\r", "\r\n", U+2028 and
// U+2029 break lines, columns are in runes.
type position struct {
	offset int
	line   int
	col    int
	cr     bool
}

func newPosition() position {
	return position{line: 1, col: 1}
}

func (p *position) advance(text []byte) {
	p.offset += len(text)
	for len(text) > 0 {
		r, n := utf8.DecodeRune(text)
		switch {
		case r == '\n' && p.cr:
			// second half of "\r\n"
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			p.line++
			p.col = 1
		default:
			p.col++
		}
		p.cr = r == '\r'
		text = text[n:]
	}
}
