package usage

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// AttrKind classifies a component attribute.
type AttrKind int

// Attribute kinds
const (
	AttrText       AttrKind = iota // name="literal" or name=literal
	AttrExpression                 // name={expr} or {name}
	AttrEvent                      // on:event
	AttrOther                      // spreads, directives, boolean attributes, mixed text
)

// Attribute is one attribute of a component invocation.
type Attribute struct {
	Kind   AttrKind
	Name   string
	Value  string // text, or expression source without braces
	Line   int
	Column int
}

// Invocation is a component tag found in markup.
type Invocation struct {
	Component  string
	Attributes []Attribute
	Line       int
	Column     int
}

// SyntaxError reports malformed markup at a 1-based position.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// templateScanner walks Svelte markup. It does not build a DOM; it only
// needs tag boundaries and attributes, so it skips comments, script and
// style blocks and {...} blocks while tracking positions.
type templateScanner struct {
	src        string
	pos        int
	lineStarts []int
	found      []Invocation
}

// ScanTemplate returns every component invocation in a Svelte source, in
// document order. Components are tags starting with an uppercase letter or
// containing a dot (<Icons.Check>).
func ScanTemplate(src string) ([]Invocation, error) {
	s := &templateScanner{src: src, lineStarts: []int{0}}
	for i, r := range src {
		if r == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.found, nil
}

func (s *templateScanner) position(offset int) (int, int) {
	line := sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > offset })
	return line, offset - s.lineStarts[line-1] + 1
}

func (s *templateScanner) errorf(offset int, format string, args ...any) error {
	line, col := s.position(offset)
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (s *templateScanner) hasPrefixFold(prefix string) bool {
	return len(s.src)-s.pos >= len(prefix) && strings.EqualFold(s.src[s.pos:s.pos+len(prefix)], prefix)
}

func (s *templateScanner) run() error {
	for s.pos < len(s.src) {
		switch {
		case strings.HasPrefix(s.src[s.pos:], "<!--"):
			end := strings.Index(s.src[s.pos+4:], "-->")
			if end < 0 {
				return s.errorf(s.pos, "unterminated comment")
			}
			s.pos += 4 + end + 3

		case s.src[s.pos] == '{':
			end, err := s.skipBraces(s.pos)
			if err != nil {
				return err
			}
			s.pos = end

		case strings.HasPrefix(s.src[s.pos:], "</"):
			end := strings.IndexByte(s.src[s.pos:], '>')
			if end < 0 {
				return s.errorf(s.pos, "unterminated closing tag")
			}
			s.pos += end + 1

		case s.src[s.pos] == '<' && s.pos+1 < len(s.src) && isNameStart(rune(s.src[s.pos+1])):
			if err := s.tag(); err != nil {
				return err
			}

		default:
			s.pos++
		}
	}
	return nil
}

func (s *templateScanner) tag() error {
	start := s.pos
	s.pos++
	nameStart := s.pos
	for s.pos < len(s.src) && isNameChar(rune(s.src[s.pos])) {
		s.pos++
	}
	name := s.src[nameStart:s.pos]

	attrs, selfClosing, err := s.attributes(start)
	if err != nil {
		return err
	}

	if isComponentName(name) {
		line, col := s.position(start)
		s.found = append(s.found, Invocation{Component: name, Attributes: attrs, Line: line, Column: col})
	}

	lower := strings.ToLower(name)
	if !selfClosing && (lower == "script" || lower == "style") {
		closing := "</" + lower
		for s.pos < len(s.src) && !s.hasPrefixFold(closing) {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return s.errorf(start, "unterminated <%s> block", lower)
		}
	}
	return nil
}

// attributes consumes attributes up to and including the end of the tag.
func (s *templateScanner) attributes(tagStart int) ([]Attribute, bool, error) {
	var attrs []Attribute
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, false, s.errorf(tagStart, "unterminated tag")
		}

		switch {
		case s.src[s.pos] == '>':
			s.pos++
			return attrs, false, nil
		case strings.HasPrefix(s.src[s.pos:], "/>"):
			s.pos += 2
			return attrs, true, nil
		case s.src[s.pos] == '{':
			attr, err := s.braceAttribute()
			if err != nil {
				return nil, false, err
			}
			attrs = append(attrs, attr)
			continue
		case s.src[s.pos] == '/':
			s.pos++
			continue
		}

		attrStart := s.pos
		for s.pos < len(s.src) && !isAttrNameEnd(s.src[s.pos]) {
			s.pos++
		}
		if s.pos == attrStart {
			return nil, false, s.errorf(s.pos, "unexpected %q in tag", s.src[s.pos])
		}
		line, col := s.position(attrStart)
		attr := Attribute{Kind: AttrOther, Name: s.src[attrStart:s.pos], Line: line, Column: col}

		s.skipSpace()
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			s.skipSpace()
			if err := s.attributeValue(&attr); err != nil {
				return nil, false, err
			}
		}

		switch {
		case strings.HasPrefix(attr.Name, "on:"):
			attr.Kind = AttrEvent
			event := strings.TrimPrefix(attr.Name, "on:")
			if i := strings.IndexByte(event, '|'); i >= 0 {
				event = event[:i]
			}
			attr.Name = event
		case strings.Contains(attr.Name, ":"):
			attr.Kind = AttrOther
		}
		attrs = append(attrs, attr)
	}
}

// braceAttribute handles {name} shorthands and {...spread} attributes.
func (s *templateScanner) braceAttribute() (Attribute, error) {
	start := s.pos
	end, err := s.skipBraces(start)
	if err != nil {
		return Attribute{}, err
	}
	s.pos = end
	line, col := s.position(start)
	inner := strings.TrimSpace(s.src[start+1 : end-1])
	if strings.HasPrefix(inner, "...") {
		return Attribute{Kind: AttrOther, Name: inner, Line: line, Column: col}, nil
	}
	return Attribute{Kind: AttrExpression, Name: inner, Value: inner, Line: line, Column: col}, nil
}

func (s *templateScanner) attributeValue(attr *Attribute) error {
	if s.pos >= len(s.src) {
		return s.errorf(s.pos, "missing value for attribute %s", attr.Name)
	}

	switch q := s.src[s.pos]; q {
	case '"', '\'':
		start := s.pos
		end := strings.IndexByte(s.src[s.pos+1:], q)
		if end < 0 {
			return s.errorf(start, "unterminated attribute value")
		}
		value := s.src[start+1 : start+1+end]
		s.pos = start + 1 + end + 1
		attr.Kind, attr.Value = classifyQuoted(value)
		return nil

	case '{':
		start := s.pos
		end, err := s.skipBraces(start)
		if err != nil {
			return err
		}
		s.pos = end
		attr.Kind = AttrExpression
		attr.Value = s.src[start+1 : end-1]
		return nil

	default:
		start := s.pos
		for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && s.src[s.pos] != '>' &&
			!strings.HasPrefix(s.src[s.pos:], "/>") {
			s.pos++
		}
		attr.Kind = AttrText
		attr.Value = s.src[start:s.pos]
		return nil
	}
}

// classifyQuoted treats "{expr}" as an expression, plain text as text and
// text mixed with expressions as something that cannot be recorded.
func classifyQuoted(value string) (AttrKind, string) {
	if !strings.Contains(value, "{") {
		return AttrText, value
	}
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") &&
		strings.Count(trimmed, "{") == 1 && strings.Count(trimmed, "}") == 1 {
		return AttrExpression, trimmed[1 : len(trimmed)-1]
	}
	return AttrOther, value
}

// skipBraces returns the offset just past the brace that closes the one at
// start, honoring JS strings, template literals and comments.
func (s *templateScanner) skipBraces(start int) (int, error) {
	depth := 0
	i := start
	for i < len(s.src) {
		c := s.src[i]
		switch {
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			i++
			if depth == 0 {
				return i, nil
			}
		case c == '"' || c == '\'':
			end, ok := skipString(s.src, i)
			if !ok {
				return 0, s.errorf(i, "unterminated string")
			}
			i = end
		case c == '`':
			end, err := s.skipTemplateLiteral(i)
			if err != nil {
				return 0, err
			}
			i = end
		case strings.HasPrefix(s.src[i:], "//"):
			nl := strings.IndexByte(s.src[i:], '\n')
			if nl < 0 {
				return 0, s.errorf(start, "unterminated expression")
			}
			i += nl + 1
		case strings.HasPrefix(s.src[i:], "/*"):
			end := strings.Index(s.src[i+2:], "*/")
			if end < 0 {
				return 0, s.errorf(i, "unterminated comment")
			}
			i += 2 + end + 2
		default:
			i++
		}
	}
	return 0, s.errorf(start, "unterminated expression")
}

func (s *templateScanner) skipTemplateLiteral(start int) (int, error) {
	i := start + 1
	for i < len(s.src) {
		switch {
		case s.src[i] == '\\':
			i += 2
		case s.src[i] == '`':
			return i + 1, nil
		case strings.HasPrefix(s.src[i:], "${"):
			end, err := s.skipBraces(i + 1)
			if err != nil {
				return 0, err
			}
			i = end
		default:
			i++
		}
	}
	return 0, s.errorf(start, "unterminated template literal")
}

func skipString(src string, start int) (int, bool) {
	q := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case q:
			return i + 1, true
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

func (s *templateScanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isAttrNameEnd(c byte) bool {
	return isSpace(c) || c == '=' || c == '>' || c == '/' || c == '"' || c == '\'' || c == '{'
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' || r == ':'
}

func isComponentName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0])) || (strings.Contains(name, ".") && !strings.Contains(name, ":"))
}
