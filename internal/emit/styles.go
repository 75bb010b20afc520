package emit

import (
	"fmt"
	"strings"

	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/usage"
)

// Style is one utility rule: a class and the declarations it applies.
type Style struct {
	Prop        string
	ClassName   string
	Properties  []string
	Value       string
	Breakpoints usage.Set // keys the rule is emitted for, BreakpointAll included
}

// Declarations renders "prop: value" pairs.
func (s Style) Declarations() []string {
	out := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		out[i] = p + ": " + s.Value
	}
	return out
}

// Styles returns the rules of p. Without optimize every rule applies at
// every breakpoint; with it a rule keeps only the breakpoints where the name
// or alias was recorded and disappears when there are none.
func (e *Emitter) Styles(p props.Prop) []Style {
	var out []Style
	for _, t := range e.targets(p) {
		bps := make(usage.Set)
		keys := append([]string{usage.BreakpointAll}, e.Theme.Breakpoints.Names()...)
		for _, bp := range keys {
			if !e.Optimize || e.used(p.Name, t, bp) || e.used(p.Alias, t, bp) {
				bps.Add(bp)
			}
		}
		if len(bps) == 0 {
			continue
		}
		out = append(out, Style{
			Prop:        p.Name,
			ClassName:   t.className,
			Properties:  p.CSSProperties(),
			Value:       t.value,
			Breakpoints: bps,
		})
	}
	return out
}

// CollisionError reports two props generating the same class with different
// declarations.
type CollisionError struct {
	ClassName string
	First     string
	Second    string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("class %q is generated by both %s and %s", e.ClassName, e.First, e.Second)
}

// collisionGuard remembers which prop produced each class.
type collisionGuard struct {
	owners map[string]string
	decls  map[string]string
}

func newCollisionGuard() *collisionGuard {
	return &collisionGuard{owners: make(map[string]string), decls: make(map[string]string)}
}

// claim registers className for prop. It reports false for an exact
// duplicate that should be skipped.
func (g *collisionGuard) claim(className, prop, decl string) (bool, error) {
	owner, ok := g.owners[className]
	if !ok {
		g.owners[className] = prop
		g.decls[className] = decl
		return true, nil
	}
	if g.decls[className] == decl {
		return false, nil
	}
	return false, &CollisionError{ClassName: className, First: owner, Second: prop}
}

var baseRules = []string{
	"button {\n  appearance: none;\n  -webkit-appearance: none;\n}",
	"table {\n  border-collapse: collapse;\n}",
}

// Selector escapes a qualified class name for use in CSS (".sm\:gap-0").
func Selector(qualified string) string {
	return "." + strings.ReplaceAll(qualified, ":", `\:`)
}

func writeRule(b *strings.Builder, indent, selector string, decls []string) {
	b.WriteString(indent + selector + " {\n")
	for _, d := range decls {
		b.WriteString(indent + "  " + d + ";\n")
	}
	b.WriteString(indent + "}\n")
}

// Stylesheet renders the base rules, the utility rules of every prop in the
// given categories, and one @media block per breakpoint holding the
// breakpoint-prefixed rules.
func (e *Emitter) Stylesheet(categories []props.Category) (string, error) {
	return e.StylesheetFor(props.InCategories(categories))
}

// StylesheetFor renders the stylesheet of an explicit prop list.
func (e *Emitter) StylesheetFor(ps []props.Prop) (string, error) {
	guard := newCollisionGuard()
	var root []Style
	for _, p := range ps {
		for _, s := range e.Styles(p) {
			keep, err := guard.claim(s.ClassName, s.Prop, strings.Join(s.Declarations(), ";"))
			if err != nil {
				return "", err
			}
			if keep {
				root = append(root, s)
			}
		}
	}

	var b strings.Builder
	for _, r := range baseRules {
		b.WriteString(r + "\n\n")
	}

	for _, s := range root {
		if s.Breakpoints.Has(usage.BreakpointAll) {
			writeRule(&b, "", Selector(s.ClassName), s.Declarations())
		}
	}

	for _, bp := range e.Theme.Breakpoints {
		var block strings.Builder
		for _, s := range root {
			if s.Breakpoints.Has(bp.Name) {
				writeRule(&block, "  ", Selector(bp.Name+":"+s.ClassName), s.Declarations())
			}
		}
		if block.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n@media (min-width: %s) {\n%s}\n", bp.MinWidth, block.String())
	}

	return b.String(), nil
}
