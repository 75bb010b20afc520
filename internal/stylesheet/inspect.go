// Package stylesheet reads generated stylesheets back into an inventory of
// rules and media blocks.
package stylesheet

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is one "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a ruleset. Classes holds the unescaped class names of its
// selector ("sm:gap-0"); Media is the enclosing query, empty at the root.
type Rule struct {
	Selector     string
	Classes      []string
	Media        string
	Declarations []Declaration
}

// MediaBlock is one @media block and the number of rules inside it.
type MediaBlock struct {
	Query string
	Rules int
}

// Inventory is everything Inspect found, in source order.
type Inventory struct {
	Rules []Rule
	Media []MediaBlock
}

// Classes returns every class name, sorted and deduplicated.
func (inv *Inventory) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range inv.Rules {
		for _, c := range r.Classes {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Lookup returns the rule declaring class inside media ("" for the root).
func (inv *Inventory) Lookup(class, media string) (Rule, bool) {
	for _, r := range inv.Rules {
		if r.Media != media {
			continue
		}
		for _, c := range r.Classes {
			if c == class {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// ClassRules counts the rules that target at least one class.
func (inv *Inventory) ClassRules() int {
	n := 0
	for _, r := range inv.Rules {
		if len(r.Classes) > 0 {
			n++
		}
	}
	return n
}

type token struct {
	tt   css.TokenType
	text string
}

type inspector struct {
	lexer *css.Lexer
	inv   *Inventory
}

// Inspect tokenizes css and returns its inventory. Nesting is limited to
// rules inside @media blocks, which is all the generator writes.
func Inspect(src string) (*Inventory, error) {
	s := &inspector{
		lexer: css.NewLexer(parse.NewInputString(src)),
		inv:   &Inventory{},
	}

	media := ""
	inMedia := false
	var prelude []token

	for {
		tt, text := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("inspect stylesheet: %w", err)
			}
			if inMedia {
				return nil, fmt.Errorf("inspect stylesheet: unterminated @media %s", media)
			}
			return s.inv, nil

		case css.CommentToken:
			continue

		case css.LeftBraceToken:
			if len(prelude) > 0 && prelude[0].tt == css.AtKeywordToken {
				if prelude[0].text != "@media" || inMedia {
					return nil, fmt.Errorf("inspect stylesheet: unsupported block %s", joinTokens(prelude))
				}
				media = joinTokens(prelude[1:])
				inMedia = true
				s.inv.Media = append(s.inv.Media, MediaBlock{Query: media})
				prelude = nil
				continue
			}
			decls, err := s.declarations()
			if err != nil {
				return nil, err
			}
			s.inv.Rules = append(s.inv.Rules, Rule{
				Selector:     unescape(joinTokens(prelude)),
				Classes:      classNames(prelude),
				Media:        media,
				Declarations: decls,
			})
			if inMedia {
				s.inv.Media[len(s.inv.Media)-1].Rules++
			}
			prelude = nil

		case css.RightBraceToken:
			if !inMedia {
				return nil, errors.New("inspect stylesheet: unexpected }")
			}
			inMedia = false
			media = ""

		case css.SemicolonToken:
			prelude = nil

		case css.WhitespaceToken:
			if len(prelude) > 0 {
				prelude = append(prelude, token{tt, " "})
			}

		default:
			prelude = append(prelude, token{tt, string(text)})
		}
	}
}

// declarations reads property: value pairs up to the closing brace.
func (s *inspector) declarations() ([]Declaration, error) {
	var out []Declaration
	var prop string
	var value []string

	flush := func() {
		if prop != "" && len(value) > 0 {
			out = append(out, Declaration{Property: prop, Value: strings.TrimSpace(strings.Join(value, ""))})
		}
		prop = ""
		value = nil
	}

	for {
		tt, text := s.lexer.Next()
		switch {
		case tt == css.ErrorToken:
			return nil, errors.New("inspect stylesheet: unterminated rule")
		case tt == css.RightBraceToken:
			flush()
			return out, nil
		case tt == css.LeftBraceToken:
			return nil, errors.New("inspect stylesheet: nested rule outside @media")
		case tt == css.SemicolonToken:
			flush()
		case tt == css.CommentToken:
		case tt == css.IdentToken && prop == "":
			prop = string(text)
		case tt == css.ColonToken && prop != "" && value == nil:
		case prop != "":
			value = append(value, string(text))
		}
	}
}

// classNames extracts the class selectors of a prelude. A class starting
// with a digit ("2xl:gap-0") lexes as a dimension after the dot.
func classNames(prelude []token) []string {
	var out []string
	for i, t := range prelude {
		switch {
		case t.tt == css.DelimToken && t.text == "." && i+1 < len(prelude) && prelude[i+1].tt == css.IdentToken:
			out = append(out, unescape(prelude[i+1].text))
		case (t.tt == css.DimensionToken || t.tt == css.NumberToken) && strings.HasPrefix(t.text, "."):
			out = append(out, unescape(t.text[1:]))
		}
	}
	return out
}

func joinTokens(ts []token) string {
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.text)
	}
	return strings.TrimSpace(b.String())
}

// unescape resolves CSS escapes: "\:" becomes ":" and hex escapes become
// their code point.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[j])
			i = j
			continue
		}
		r, err := strconv.ParseUint(s[i+1:j], 16, 32)
		if err != nil {
			b.WriteString(s[i:j])
		} else {
			b.WriteRune(rune(r))
		}
		if j < len(s) && s[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
