package mozdoc

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w strings.Builder
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *treeWriter) text(depth int, label, value string) {
	tw.w.WriteString(strings.Repeat("  ", depth))
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

// Dump returns indented outline of sections for debug report.
func Dump(sections []Section) string {
	tw := &treeWriter{}
	tw.line(0, "sections: %d", len(sections))
	for i, s := range sections {
		switch s := s.(type) {
		case Global:
			tw.line(1, "#%d global", i+1)
		case Scoped:
			tw.line(1, "#%d scoped, rules: %d", i+1, len(s.Rules))
			for _, r := range s.Rules {
				tw.text(2, r.Type.String(), r.Value)
			}
		}
		tw.text(2, "code", CodeOf(s))
	}
	return tw.w.String()
}
