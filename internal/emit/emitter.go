// Package emit turns the prop catalog, a theme and recorded usage into the
// generated artifacts: Svelte class directives, stylesheet rules, TypeScript
// declarations and component sources.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/theme"
	"github.com/yacobolo/sysgen/internal/usage"
)

// Emitter generates classes and styles for one theme. With Optimize set,
// only values recorded in Usage survive.
type Emitter struct {
	Theme    *theme.Theme
	Optimize bool
	Usage    *usage.Cache
}

// New returns an Emitter.
func New(th *theme.Theme, optimize bool, cache *usage.Cache) *Emitter {
	if th == nil {
		th = theme.New()
	}
	return &Emitter{Theme: th, Optimize: optimize, Usage: cache}
}

// ClassCondition is one generated class and the JS expression that turns it
// on. Breakpoint is empty for the non-responsive class.
type ClassCondition struct {
	Breakpoint string
	ClassName  string
	Expr       string
}

// QualifiedName is the class as it appears in markup ("sm:gap-0").
func (c ClassCondition) QualifiedName() string {
	if c.Breakpoint == "" {
		return c.ClassName
	}
	return c.Breakpoint + ":" + c.ClassName
}

// Directive renders the condition as a Svelte class directive.
func (c ClassCondition) Directive() string {
	return fmt.Sprintf("class:%s={%s}", c.QualifiedName(), c.Expr)
}

// target is one class a prop can generate: the keys that select it and the
// CSS value it applies.
type target struct {
	className string
	path      string   // dotted nested scale prefix
	keys      []string // bare keys, discovery order
	value     string
}

func (t target) usageKeys() []string {
	out := make([]string, len(t.keys))
	for i, k := range t.keys {
		out[i] = qualify(t.path, k)
	}
	return out
}

func qualify(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// targets lists the classes of p. A scale the theme declares wins over the
// prop's keyword values; without either the prop contributes nothing.
func (e *Emitter) targets(p props.Prop) []target {
	if p.Scale != "" {
		if s, ok := e.Theme.Scale(p.Scale); ok {
			groups := theme.Resolve(s)
			out := make([]target, 0, len(groups))
			for _, g := range groups {
				prefix := p.ClassPrefix()
				if len(g.Path) > 0 {
					prefix += "-" + strings.Join(g.Path, "-")
				}
				out = append(out, target{
					className: theme.KebabCase(prefix + "-" + g.Keys[0]),
					path:      g.KeyPath(),
					keys:      g.Keys,
					value:     p.FormatValue(theme.Transform(g.Value, p.Transform)),
				})
			}
			return out
		}
	}

	out := make([]target, 0, len(p.Values))
	for _, v := range p.Values {
		out = append(out, target{
			className: theme.KebabCase(p.ClassPrefix() + "-" + v),
			keys:      []string{v},
			value:     p.FormatValue(v),
		})
	}
	return out
}

// used reports whether identifier was recorded with any key of t at bp.
func (e *Emitter) used(identifier string, t target, bp string) bool {
	if identifier == "" {
		return false
	}
	for _, k := range t.usageKeys() {
		if e.Usage.Used(identifier, k, bp) {
			return true
		}
	}
	return false
}

// ClassConditions returns the class directives of p: for every target the
// non-responsive class followed by one class per breakpoint, in breakpoint
// order. In optimize mode each class, and each name or alias clause inside
// it, needs recorded usage at its breakpoint.
func (e *Emitter) ClassConditions(p props.Prop) []ClassCondition {
	var out []ClassCondition
	for _, t := range e.targets(p) {
		nameUsed := e.used(p.Name, t, usage.BreakpointAll)
		aliasUsed := e.used(p.Alias, t, usage.BreakpointAll)
		if !e.Optimize || nameUsed || aliasUsed {
			out = append(out, ClassCondition{
				ClassName: t.className,
				Expr:      e.expression(p, t, "", -1, nameUsed, aliasUsed),
			})
		}

		for i, bp := range e.Theme.Breakpoints {
			nameUsed := e.used(p.Name, t, bp.Name)
			aliasUsed := e.used(p.Alias, t, bp.Name)
			if e.Optimize && !nameUsed && !aliasUsed {
				continue
			}
			out = append(out, ClassCondition{
				Breakpoint: bp.Name,
				ClassName:  t.className,
				Expr:       e.expression(p, t, bp.Name, i, nameUsed, aliasUsed),
			})
		}
	}
	return out
}

func (e *Emitter) expression(p props.Prop, t target, bp string, index int, nameUsed, aliasUsed bool) string {
	var clauses []string
	for _, key := range t.keys {
		clauses = append(clauses, e.conditions(p, t.path, key, bp, index, nameUsed, aliasUsed)...)
	}
	return strings.Join(clauses, " || ")
}

// conditions compares the run-time value of the prop name and alias with
// key. Top-level numeric keys coerce the run-time value with String() so 1
// and '1' both match; nested keys compare against the dotted path.
func (e *Emitter) conditions(p props.Prop, path, key, bp string, index int, nameUsed, aliasUsed bool) []string {
	var operands []string
	responsive := bp != ""

	identifiers := []struct {
		name string
		used bool
	}{{p.Name, nameUsed}, {p.Alias, aliasUsed}}

	for _, id := range identifiers {
		if id.name == "" || (e.Optimize && !id.used) {
			continue
		}
		if responsive {
			operands = append(operands, id.name+"?."+member(bp), fmt.Sprintf("%s?.[%d]", id.name, index))
		} else {
			operands = append(operands, id.name)
		}
	}

	literal := jsString(qualify(path, key))
	coerce := path == "" && theme.IsNumeric(key)

	out := make([]string, len(operands))
	for i, op := range operands {
		if coerce {
			op = "String(" + op + ")"
		}
		out[i] = op + " === " + literal
	}
	return out
}

// member renders an optional-chaining member access: ".sm" for identifiers,
// "['2xl']" otherwise.
func member(name string) string {
	if isIdentifier(name) {
		return name
	}
	return "[" + jsString(name) + "]"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// jsString quotes s as a single-quoted JS string literal.
func jsString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// jsNumber renders a numeric key as a TS number literal.
func jsNumber(key string) string {
	f, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return key
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
