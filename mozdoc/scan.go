package mozdoc

import "strings"

// skipComment returns position right after the comment starting at pos, or
// pos itself when there is no comment there. Comments do not nest and an
// unterminated comment runs to the end of input.
func skipComment(src string, pos int) int {
	if !strings.HasPrefix(src[pos:], "/*") {
		return pos
	}
	if end := strings.Index(src[pos+2:], "*/"); end >= 0 {
		return pos + 2 + end + 2
	}
	return len(src)
}

// skipString returns position right after the quoted string starting at pos,
// or pos itself when src[pos] is not a quote. Backslash protects the next
// byte. Unterminated string runs to the end of input.
func skipString(src string, pos int) int {
	end, _ := scanString(src, pos)
	return end
}

// scanString is skipString which also reports whether closing quote was found.
func scanString(src string, pos int) (int, bool) {
	if pos >= len(src) {
		return pos, false
	}
	quote := src[pos]
	if quote != '"' && quote != '\'' {
		return pos, false
	}
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	return len(src), false
}

// skipProtected skips a comment or a string at pos. Every scan looking for
// structural characters must call it first.
func skipProtected(src string, pos int) int {
	if next := skipComment(src, pos); next != pos {
		return next
	}
	return skipString(src, pos)
}

// skipSpace skips whitespace and comments.
func skipSpace(src string, pos int) int {
	for pos < len(src) {
		if isSpace(src[pos]) {
			pos++
			continue
		}
		next := skipComment(src, pos)
		if next == pos {
			break
		}
		pos = next
	}
	return pos
}

// stripComments returns src with all comment spans removed. Strings are kept
// intact, so "/*" inside quotes is not a comment.
func stripComments(src string) string {
	var sb strings.Builder
	for pos := 0; pos < len(src); {
		if next := skipComment(src, pos); next != pos {
			pos = next
			continue
		}
		next := skipString(src, pos)
		if next == pos {
			next++
		}
		sb.WriteString(src[pos:next])
		pos = next
	}
	return sb.String()
}

// isBlank reports whether text has nothing but whitespace and comments.
func isBlank(text string) bool {
	return strings.TrimSpace(stripComments(text)) == ""
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
