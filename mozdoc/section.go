package mozdoc

import (
	"fmt"
	"io"
	"strings"
)

// Rule is a single document condition, e.g. domain(example.com).
type Rule struct {
	Type  RuleType
	Value string // unquoted and unescaped
}

// String returns CSS representation of the rule with value always quoted.
func (r Rule) String() string {
	return r.Type.String() + `("` + escapeDoubleQuoted(r.Value) + `")`
}

// Section is either Global or Scoped.
type Section interface {
	section()
}

// Global is source text outside of any @-moz-document block, kept verbatim.
type Global struct {
	Code string
}

// Scoped is the body of @-moz-document block, kept verbatim. Block applies
// when any of the Rules matches.
type Scoped struct {
	Rules []Rule
	Code  string
}

func (Global) section() {}
func (Scoped) section() {}

// CodeOf returns raw code of any section.
func CodeOf(s Section) string {
	switch s := s.(type) {
	case Global:
		return s.Code
	case Scoped:
		return s.Code
	default:
		return ""
	}
}

// Globals returns global sections in source order.
func Globals(sections []Section) []Global {
	var out []Global
	for _, s := range sections {
		if g, ok := s.(Global); ok {
			out = append(out, g)
		}
	}
	return out
}

// ScopedFor returns scoped sections having at least one rule of requested
// type, in source order.
func ScopedFor(sections []Section, t RuleType) []Scoped {
	var out []Scoped
	for _, s := range sections {
		sc, ok := s.(Scoped)
		if !ok {
			continue
		}
		for _, r := range sc.Rules {
			if r.Type == t {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}

// Render writes sections back as a single stylesheet. Splitting the result
// produces the same sections.
func Render(w io.Writer, sections []Section) (int64, error) {
	var total int64
	for _, s := range sections {
		var (
			n   int
			err error
		)
		switch s := s.(type) {
		case Global:
			n, err = io.WriteString(w, s.Code)
		case Scoped:
			rules := make([]string, 0, len(s.Rules))
			for _, r := range s.Rules {
				rules = append(rules, r.String())
			}
			n, err = fmt.Fprintf(w, "%s %s {%s}", keyword, strings.Join(rules, ", "), s.Code)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// escapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Line breaks become hex escapes since CSS strings cannot contain them raw.
// Bytes which are not valid UTF-8 are kept as is.
func escapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r\f") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		case '\f':
			b.WriteString(`\c `)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
