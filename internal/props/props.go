// Package props holds the static catalog of style props exposed by generated
// components. Each prop maps to one or more CSS properties and is backed by a
// theme scale, a fixed keyword list, or both.
package props

import (
	"sort"
	"strings"

	"github.com/yacobolo/sysgen/internal/theme"
)

// Category groups props for component exposure.
type Category string

// Prop categories
const (
	CategoryBorders    Category = "borders"
	CategoryColors     Category = "colors"
	CategoryFlex       Category = "flex"
	CategoryGrid       Category = "grid"
	CategoryLayout     Category = "layout"
	CategoryPosition   Category = "position"
	CategoryRadii      Category = "radii"
	CategorySizes      Category = "sizes"
	CategorySpace      Category = "space"
	CategoryTypography Category = "typography"
)

// Prop describes a style attribute of a generated component.
type Prop struct {
	Name          string                // "marginTop"
	Alias         string                // "mt"
	Category      Category              // CategorySpace
	Scale         string                // "space"
	Values        []string              // fixed keywords when not scale driven
	CSSProps      []string              // defaults to kebab(Name)
	ValueTemplate string                // "span ${value}"
	Transform     theme.TransformPolicy // pixels unless set
}

// CSSProperties returns the physical CSS properties the prop writes.
func (p Prop) CSSProperties() []string {
	if len(p.CSSProps) > 0 {
		return p.CSSProps
	}
	return []string{theme.KebabCase(p.Name)}
}

// FormatValue wraps a CSS value with the prop's value template, if any.
func (p Prop) FormatValue(value string) string {
	if p.ValueTemplate == "" {
		return value
	}
	return strings.ReplaceAll(p.ValueTemplate, "${value}", value)
}

// ClassPrefix is the leading segment of every class the prop generates.
func (p Prop) ClassPrefix() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// Identifiers returns the name followed by the alias when present.
func (p Prop) Identifiers() []string {
	if p.Alias == "" {
		return []string{p.Name}
	}
	return []string{p.Name, p.Alias}
}

// HasData reports whether the prop can generate anything at all.
func (p Prop) HasData() bool {
	return p.Scale != "" || len(p.Values) > 0
}

var (
	byName     = make(map[string]Prop, len(catalog))
	byAlias    = make(map[string]Prop, len(catalog))
	byCategory = make(map[Category][]Prop)
)

func init() {
	for _, p := range catalog {
		byName[p.Name] = p
		if p.Alias != "" {
			byAlias[p.Alias] = p
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
}

// All returns every prop in catalog order.
func All() []Prop {
	out := make([]Prop, len(catalog))
	copy(out, catalog)
	return out
}

// ByName looks up a prop by its canonical name.
func ByName(name string) (Prop, bool) {
	p, ok := byName[name]
	return p, ok
}

// ByAlias looks up a prop by its shorthand.
func ByAlias(alias string) (Prop, bool) {
	p, ok := byAlias[alias]
	return p, ok
}

// Lookup resolves either a name or an alias.
func Lookup(identifier string) (Prop, bool) {
	if p, ok := byName[identifier]; ok {
		return p, true
	}
	return ByAlias(identifier)
}

// ByCategory returns the props of one category in catalog order.
func ByCategory(category Category) []Prop {
	return byCategory[category]
}

// InCategories returns the props of several categories, in the given order.
func InCategories(categories []Category) []Prop {
	var out []Prop
	for _, c := range categories {
		out = append(out, byCategory[c]...)
	}
	return out
}

// Categories returns every category that has props, sorted.
func Categories() []Category {
	out := make([]Category, 0, len(byCategory))
	for c := range byCategory {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns every prop name and alias, sorted.
func Names() []string {
	out := make([]string, 0, len(byName)+len(byAlias))
	for n := range byName {
		out = append(out, n)
	}
	for a := range byAlias {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Scales returns the distinct scale names referenced by the catalog, in
// first-reference order.
func Scales() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range catalog {
		if p.Scale == "" || seen[p.Scale] {
			continue
		}
		seen[p.Scale] = true
		out = append(out, p.Scale)
	}
	return out
}

// ForScale returns every prop bound to the named scale.
func ForScale(scale string) []Prop {
	var out []Prop
	for _, p := range catalog {
		if p.Scale == scale {
			out = append(out, p)
		}
	}
	return out
}
