package mozdoc

import (
	"strings"

	"go.uber.org/zap"
)

const keyword = "@-moz-document"

type splitState int

const (
	stateTop    splitState = iota // global text, looking for keyword
	stateHeader                   // conditions list
	stateBody                     // block body, looking for matching brace
)

// Parser splits stylesheet source into global and scoped sections.
// It keeps no state between calls and could be shared.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new splitter.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("mozdoc")}
}

// ParseMozDocsForCode splits source into sections without any logging.
func ParseMozDocsForCode(src string) ([]Section, error) {
	return NewParser(nil).Split(src)
}

// Split walks source once and returns its sections in source order. Global
// sections which have nothing but whitespace and comments are dropped.
// The optional source parameter identifies what's being split (for debug logging).
func (p *Parser) Split(src string, source ...string) ([]Section, error) {
	log := p.log
	if len(source) > 0 && source[0] != "" {
		log = log.With(zap.String("source", source[0]))
	}
	log.Debug("Splitting stylesheet", zap.Int("bytes", len(src)))

	var (
		sections    []Section
		rules       []Rule
		state       = stateTop
		pos, global int
	)
	for {
		switch state {
		case stateTop:
			at := findKeyword(src, pos)
			if at < 0 {
				sections = p.appendGlobal(log, sections, src[global:])
				log.Debug("Stylesheet split", zap.Int("sections", len(sections)))
				return sections, nil
			}
			sections = p.appendGlobal(log, sections, src[global:at])
			pos, state = at+len(keyword), stateHeader

		case stateHeader:
			var (
				open int
				err  error
			)
			if rules, open, err = parseRuleList(src, pos); err != nil {
				log.Debug("Unable to parse block header", zap.Error(err))
				return nil, err
			}
			pos, state = open+1, stateBody

		case stateBody:
			end, err := matchBlock(src, pos)
			if err != nil {
				log.Debug("Unable to find end of block", zap.Error(err))
				return nil, err
			}
			sections = append(sections, Scoped{Rules: rules, Code: src[pos:end]})
			log.Debug("Scoped section", zap.Stringers("rules", rules), zap.Int("bytes", end-pos))
			pos, global, state = end+1, end+1, stateTop
		}
	}
}

func (p *Parser) appendGlobal(log *zap.Logger, sections []Section, code string) []Section {
	if isBlank(code) {
		if len(code) > 0 {
			log.Debug("Dropping blank global section", zap.Int("bytes", len(code)))
		}
		return sections
	}
	log.Debug("Global section", zap.Int("bytes", len(code)))
	return append(sections, Global{Code: code})
}

// findKeyword returns position of the next @-moz-document keyword outside of
// comments, strings and any global rule blocks, or -1.
func findKeyword(src string, pos int) int {
	depth := 0
	for pos < len(src) {
		if next := skipProtected(src, pos); next != pos {
			pos = next
			continue
		}
		switch src[pos] {
		case '\\':
			pos++
		case '{':
			depth++
		case '}':
			// stray braces are not our business here
			if depth > 0 {
				depth--
			}
		case '@':
			if depth == 0 && isKeywordAt(src, pos) {
				return pos
			}
		}
		pos++
	}
	return -1
}

func isKeywordAt(src string, pos int) bool {
	if !strings.HasPrefix(src[pos:], keyword) {
		return false
	}
	end := pos + len(keyword)
	return end >= len(src) || !isIdentChar(src[end])
}

// matchBlock returns position of the brace closing the block whose body
// starts at pos.
func matchBlock(src string, pos int) (int, error) {
	open := pos - 1
	depth := 1
	for pos < len(src) {
		if next := skipProtected(src, pos); next != pos {
			pos = next
			continue
		}
		switch src[pos] {
		case '\\':
			pos++
		case '{':
			depth++
		case '}':
			if depth--; depth == 0 {
				return pos, nil
			}
		}
		pos++
	}
	return 0, newParseError(src, open, ErrorKindUnmatchedBrace, "block is never closed")
}
