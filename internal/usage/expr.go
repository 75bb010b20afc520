package usage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// parseExpression parses the source of a {...} attribute. It is wrapped in
// parentheses so object literals are not read as blocks.
func parseExpression(src string) (js.IExpr, error) {
	ast, err := js.Parse(parse.NewInputString("("+src+")"), js.Options{})
	if err != nil {
		return nil, err
	}
	if len(ast.List) != 1 {
		return nil, fmt.Errorf("expected a single expression")
	}
	stmt, ok := ast.List[0].(*js.ExprStmt)
	if !ok {
		return nil, fmt.Errorf("expected an expression, got %T", ast.List[0])
	}
	return unwrap(stmt.Value), nil
}

func unwrap(e js.IExpr) js.IExpr {
	for {
		g, ok := e.(*js.GroupExpr)
		if !ok {
			return e
		}
		e = g.X
	}
}

// observe turns an attribute expression into the observations it proves.
// Conditionals contribute every literal outcome, chained or nested; arrays
// and object literals become breakpoint observations; anything else (an
// identifier, a call) proves nothing and yields none.
func observe(e js.IExpr) []Observation {
	e = unwrap(e)

	if v, ok := literal(e); ok {
		return []Observation{Scalar(v)}
	}

	switch n := e.(type) {
	case *js.CondExpr:
		return append(observeOutcomes(n.X), observeOutcomes(n.Y)...)

	case *js.ArrayExpr:
		o := Observation{Shape: ShapeList}
		for _, el := range n.List {
			v := ""
			if el.Value != nil && !el.Spread {
				v, _ = literal(unwrap(el.Value))
			}
			o.Items = append(o.Items, v)
		}
		return []Observation{o}

	case *js.ObjectExpr:
		o := Observation{Shape: ShapeMap}
		for _, p := range n.List {
			if p.Spread || p.Name == nil || p.Name.Computed != nil || p.Init != nil {
				continue
			}
			v, ok := literal(unwrap(p.Value))
			if !ok {
				continue
			}
			o.Keys = append(o.Keys, propertyKey(p.Name.Literal))
			o.Values = append(o.Values, v)
		}
		return []Observation{o}
	}

	return nil
}

// observeOutcomes keeps only scalar outcomes of a conditional branch.
func observeOutcomes(e js.IExpr) []Observation {
	e = unwrap(e)
	if c, ok := e.(*js.CondExpr); ok {
		return observe(c)
	}
	if v, ok := literal(e); ok {
		return []Observation{Scalar(v)}
	}
	return nil
}

// literal returns the string form of a string, number or substitution-free
// template literal, as String(value) would render it.
func literal(e js.IExpr) (string, bool) {
	switch n := e.(type) {
	case *js.LiteralExpr:
		switch n.TokenType {
		case js.StringToken:
			return unquote(string(n.Data)), true
		case js.DecimalToken, js.IntegerToken, js.HexadecimalToken, js.OctalToken, js.BinaryToken:
			return formatNumber(string(n.Data))
		}

	case *js.TemplateExpr:
		if n.Tag == nil && len(n.List) == 0 {
			return unquote(string(n.Tail)), true
		}

	case *js.UnaryExpr:
		if n.Op == js.NegToken {
			if lit, ok := unwrap(n.X).(*js.LiteralExpr); ok && lit.TokenType != js.StringToken {
				if v, ok := literal(lit); ok {
					if v == "0" {
						return v, true
					}
					return "-" + v, true
				}
			}
		}
	}
	return "", false
}

func formatNumber(s string) (string, bool) {
	s = strings.ReplaceAll(s, "_", "")
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func propertyKey(l js.LiteralExpr) string {
	switch l.TokenType {
	case js.StringToken:
		return unquote(string(l.Data))
	case js.IdentifierToken:
		return string(l.Data)
	}
	if v, ok := formatNumber(string(l.Data)); ok {
		return v
	}
	return string(l.Data)
}

// unquote strips the delimiters of a JS string or template literal and
// resolves simple escapes.
func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
