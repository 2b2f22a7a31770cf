package mozdoc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// parseRuleList parses comma separated conditions which follow the
// @-moz-document keyword starting at pos. It returns rules in declaration
// order and position of the opening brace of the block.
func parseRuleList(src string, pos int) ([]Rule, int, error) {
	var rules []Rule
	for {
		rule, next, err := parseRule(src, pos)
		if err != nil {
			return nil, 0, err
		}
		rules = append(rules, rule)

		pos = skipSpace(src, next)
		if pos >= len(src) {
			return nil, 0, newParseError(src, pos, ErrorKindMalformedHeader, `unexpected end of input, expected "," or "{"`)
		}
		switch src[pos] {
		case ',':
			pos++
		case '{':
			return rules, pos, nil
		default:
			return nil, 0, newParseError(src, pos, ErrorKindMalformedHeader, `unexpected %s, expected "," or "{"`, describe(src, pos))
		}
	}
}

// parseRule parses single "name(value)" condition.
func parseRule(src string, pos int) (Rule, int, error) {
	pos = skipSpace(src, pos)

	start := pos
	for pos < len(src) && isIdentChar(src[pos]) {
		pos++
	}
	if start == pos {
		return Rule{}, 0, newParseError(src, pos, ErrorKindMalformedHeader, "unexpected %s, expected condition name", describe(src, pos))
	}
	name := src[start:pos]
	typ, err := ParseRuleType(name)
	if err != nil {
		return Rule{}, 0, newParseError(src, start, ErrorKindMalformedHeader, "unknown condition %q", name)
	}

	pos = skipSpace(src, pos)
	if pos >= len(src) || src[pos] != '(' {
		return Rule{}, 0, newParseError(src, pos, ErrorKindMalformedHeader, `unexpected %s, expected "(" after %s`, describe(src, pos), name)
	}
	pos = skipSpace(src, pos+1)

	var value string
	if pos < len(src) && (src[pos] == '"' || src[pos] == '\'') {
		end, closed := scanString(src, pos)
		if !closed {
			return Rule{}, 0, newParseError(src, pos, ErrorKindMalformedHeader, "unterminated string in %s condition", name)
		}
		value = unescape(src[pos+1 : end-1])
		pos = end
	} else {
		start = pos
		pos = scanBare(src, pos)
		value = src[start:pos]
	}

	pos = skipSpace(src, pos)
	if pos >= len(src) || src[pos] != ')' {
		return Rule{}, 0, newParseError(src, pos, ErrorKindMalformedHeader, `unexpected %s, expected ")" to close %s condition`, describe(src, pos), name)
	}
	return Rule{Type: typ, Value: value}, pos + 1, nil
}

// scanBare returns end of unquoted condition value. Escaped characters never
// terminate the value, the value itself is kept as is. Comment ends the value
// and is left for skipSpace.
func scanBare(src string, pos int) int {
	for pos < len(src) {
		switch c := src[pos]; {
		case c == '\\':
			pos += 2
		case c == ')' || c == ',' || c == '{' || c == '}' || isSpace(c):
			return pos
		case skipComment(src, pos) != pos:
			return pos
		default:
			pos++
		}
	}
	return len(src)
}

// unescape resolves CSS escapes in quoted string content.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch c = s[i]; {
		case c == '\n' || c == '\f':
			// line continuation
		case c == '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case isHex(c):
			j := i
			for j < len(s) && j-i < 6 && isHex(s[j]) {
				j++
			}
			cp, _ := strconv.ParseUint(s[i:j], 16, 32)
			r := rune(cp)
			if cp == 0 || cp > unicode.MaxRune || !utf8.ValidRune(r) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
			// single whitespace terminates hex escape
			if j < len(s) && isSpace(s[j]) {
				if s[j] == '\r' && j+1 < len(s) && s[j+1] == '\n' {
					j++
				}
				j++
			}
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// describe names whatever is found at pos for error messages.
func describe(src string, pos int) string {
	if pos >= len(src) {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(src[pos:])
	return strconv.QuoteRune(r)
}
