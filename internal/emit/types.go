package emit

import (
	"sort"
	"strings"

	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/theme"
)

// ResponsiveType is the helper every component prop is typed with.
const ResponsiveType = "Responsive"

// ScaleTypeName names the union type of a scale ("space" -> "SpaceValues").
func ScaleTypeName(scale string) string {
	return theme.UpperCamelCase(scale) + "Values"
}

// ValuesTypeName names the union type of a keyword prop.
func ValuesTypeName(prop string) string {
	return theme.UpperCamelCase(prop) + "Values"
}

// PropTypeName returns the union type a component prop is declared with:
// the scale type when the theme has the scale, the keyword type otherwise.
func (e *Emitter) PropTypeName(p props.Prop) string {
	if p.Scale != "" {
		if _, ok := e.Theme.Scale(p.Scale); ok {
			return ScaleTypeName(p.Scale)
		}
	}
	return ValuesTypeName(p.Name)
}

// valueUsed reports whether key was recorded for the prop's name or alias
// at any breakpoint.
func (e *Emitter) valueUsed(p props.Prop, key string) bool {
	for _, id := range p.Identifiers() {
		if len(e.Usage.Values(id)[key]) > 0 {
			return true
		}
	}
	return false
}

// TypeDecl is one exported union type.
type TypeDecl struct {
	Name    string
	Members []string
}

func (d TypeDecl) String() string {
	return "export type " + d.Name + " = " + strings.Join(d.Members, " | ") + ";"
}

// TypeDecls returns the union types of the catalog: keyword props first in
// catalog order, then the scales the catalog references in theme order.
// Numeric scale keys appear as number and string literals, all numbers
// before all strings. In optimize mode unions keep only recorded values and
// empty unions are dropped.
func (e *Emitter) TypeDecls() []TypeDecl {
	var out []TypeDecl

	for _, p := range props.All() {
		if len(p.Values) == 0 {
			continue
		}
		var members []string
		for _, v := range p.Values {
			if e.Optimize && !e.valueUsed(p, v) {
				continue
			}
			members = append(members, jsString(v))
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, TypeDecl{Name: ValuesTypeName(p.Name), Members: members})
	}

	referenced := make(map[string]bool)
	for _, s := range props.Scales() {
		referenced[s] = true
	}

	for _, name := range e.Theme.ScaleNames() {
		if !referenced[name] {
			continue
		}
		s, _ := e.Theme.Scale(name)
		bound := props.ForScale(name)

		topLevel := topLevelKeys(s)
		var numbers, strs []string
		for _, key := range theme.LeafKeys(s) {
			if e.Optimize && !e.anyValueUsed(bound, key) {
				continue
			}
			// nested paths like "0.5" are compared as strings by the classes
			if topLevel[key] && theme.IsNumeric(key) {
				numbers = append(numbers, jsNumber(key))
			}
			strs = append(strs, jsString(key))
		}
		if len(strs) == 0 {
			continue
		}
		out = append(out, TypeDecl{Name: ScaleTypeName(name), Members: append(numbers, strs...)})
	}

	return out
}

// topLevelKeys returns the keys of s that are not under a nested scale.
func topLevelKeys(s *theme.Scale) map[string]bool {
	out := make(map[string]bool)
	for _, g := range theme.Resolve(s) {
		if len(g.Path) > 0 {
			continue
		}
		for _, k := range g.Keys {
			out[k] = true
		}
	}
	return out
}

func (e *Emitter) anyValueUsed(bound []props.Prop, key string) bool {
	for _, p := range bound {
		if e.valueUsed(p, key) {
			return true
		}
	}
	return false
}

// responsiveDecl renders the Responsive helper for the theme's breakpoints.
func (e *Emitter) responsiveDecl() string {
	names := e.Theme.Breakpoints.Names()
	if len(names) == 0 {
		return "export type " + ResponsiveType + "<T> = T;"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = jsString(n)
	}
	return "export type " + ResponsiveType + "<T> = T | T[] | Partial<Record<" + strings.Join(quoted, " | ") + ", T>>;"
}

// Types renders types.d.ts.
func (e *Emitter) Types() string {
	decls := e.TypeDecls()
	lines := make([]string, 0, len(decls)+1)
	lines = append(lines, e.responsiveDecl())
	for _, d := range decls {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n\n") + "\n"
}

// typeNames returns the declared type names, for import checks.
func (e *Emitter) typeNames() map[string]bool {
	out := map[string]bool{ResponsiveType: true}
	for _, d := range e.TypeDecls() {
		out[d.Name] = true
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
