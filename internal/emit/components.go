package emit

import (
	"fmt"
	"strings"

	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/theme"
	"github.com/yacobolo/sysgen/internal/usage"
)

// Events are the DOM events every generated component forwards.
var Events = []string{
	"click", "dblclick",
	"focus", "blur",
	"keydown", "keyup", "keypress",
	"mousedown", "mouseup", "mouseenter", "mouseleave", "mouseover", "mouseout",
	"submit", "change", "input",
}

// DefaultTag is rendered when neither the theme nor the component names one.
const DefaultTag = "div"

// ComponentSpec declares one generated component.
type ComponentSpec struct {
	Name       string
	Filename   string
	Categories []props.Category
	As         string
	Defaults   []theme.PropDefault
	Source     string // set for derived components: the standard component wrapped
}

// Derived reports whether the component wraps a standard component.
func (s ComponentSpec) Derived() bool { return s.Source != "" }

// Default returns the declared default for a prop identifier.
func (s ComponentSpec) Default(identifier string) (*theme.Node, bool) {
	for _, d := range s.Defaults {
		if d.Name == identifier {
			return d.Value, true
		}
	}
	return nil, false
}

// StandardComponents returns Box, Flex and Text.
func StandardComponents() []ComponentSpec {
	all := props.Categories()
	return []ComponentSpec{
		{Name: "Box", Filename: "Box.svelte", Categories: all},
		{
			Name: "Flex", Filename: "Flex.svelte", Categories: all,
			Defaults: []theme.PropDefault{{Name: "display", Value: &theme.Node{Kind: theme.StringNode, Value: "flex"}}},
		},
		{Name: "Text", Filename: "Text.svelte", Categories: all, As: "p"},
	}
}

// Specs returns the standard components followed by the theme's
// components. A theme entry named like a standard component customizes it
// instead of adding a new one; an entry with extends becomes a derived
// component.
func Specs(th *theme.Theme) []ComponentSpec {
	specs := StandardComponents()
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.Name] = i
	}

	for _, c := range th.Components {
		if i, ok := index[c.Name]; ok {
			s := &specs[i]
			if c.As != "" {
				s.As = c.As
			}
			s.Defaults = mergeDefaults(s.Defaults, c.Props)
			continue
		}

		spec := ComponentSpec{
			Name:       c.Name,
			Filename:   c.Name + ".svelte",
			Categories: props.Categories(),
			As:         c.As,
			Defaults:   c.Props,
			Source:     c.Extends,
		}
		index[c.Name] = len(specs)
		specs = append(specs, spec)
	}
	return specs
}

func mergeDefaults(base, overrides []theme.PropDefault) []theme.PropDefault {
	out := append([]theme.PropDefault(nil), base...)
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if out[i].Name == o.Name {
				out[i] = o
				replaced = true
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

// SeedComponents converts specs into the component declarations the usage
// detector seeds from, so built-in defaults count as usage.
func SeedComponents(specs []ComponentSpec) []theme.Component {
	out := make([]theme.Component, 0, len(specs))
	for _, s := range specs {
		if len(s.Defaults) == 0 {
			continue
		}
		out = append(out, theme.Component{Name: s.Name, As: s.As, Extends: s.Source, Props: s.Defaults})
	}
	return out
}

// File is one generated output file, named relative to the output directory.
type File struct {
	Name    string
	Content string
}

// ManifestEntry records a generated component.
type ManifestEntry struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// Bundle is the output of Components.
type Bundle struct {
	Files    []File
	Manifest []ManifestEntry
}

// Components renders every component as a .svelte file with its .d.ts
// declaration, plus index.js and types.d.ts. Events are consulted only in
// optimize mode.
func (e *Emitter) Components(specs []ComponentSpec, events *usage.EventCache) (*Bundle, error) {
	byName := make(map[string]ComponentSpec, len(specs))
	for _, s := range specs {
		byName[s.Name] = s
	}

	b := &Bundle{}
	declared := e.typeNames()

	for _, spec := range specs {
		if spec.Derived() {
			source, ok := byName[spec.Source]
			if !ok || source.Derived() {
				return nil, fmt.Errorf("component %s: cannot extend %q", spec.Name, spec.Source)
			}
			b.Files = append(b.Files,
				File{Name: spec.Filename, Content: e.derivedSource(spec, events)},
				File{Name: spec.Filename + ".d.ts", Content: derivedDeclaration(spec)},
			)
		} else {
			r, err := e.renderComponent(spec, specs, events, declared)
			if err != nil {
				return nil, err
			}
			b.Files = append(b.Files, r...)
		}
		b.Manifest = append(b.Manifest, ManifestEntry{Name: spec.Name, Filename: spec.Filename})
	}

	var index strings.Builder
	for _, spec := range specs {
		fmt.Fprintf(&index, "export { default as %s } from './%s'\n", spec.Name, spec.Filename)
	}
	b.Files = append(b.Files,
		File{Name: "index.js", Content: index.String()},
		File{Name: "types.d.ts", Content: e.Types()},
	)

	return b, nil
}

type propExport struct {
	identifier string
	value      string
	typeName   string
}

func (e *Emitter) renderComponent(spec ComponentSpec, specs []ComponentSpec, events *usage.EventCache, declared map[string]bool) ([]File, error) {
	guard := newCollisionGuard()
	var exports []propExport
	var directives []string
	required := make(map[string]bool)

	for _, p := range props.InCategories(spec.Categories) {
		if !e.hasData(p) {
			continue
		}
		nameUsed := e.Usage.HasUsage(p.Name)
		aliasUsed := p.Alias != "" && e.Usage.HasUsage(p.Alias)
		if e.Optimize && !nameUsed && !aliasUsed {
			continue
		}

		typeName := e.PropTypeName(p)
		if !declared[typeName] {
			typeName = ""
		}
		for _, id := range p.Identifiers() {
			if e.Optimize && !e.Usage.HasUsage(id) {
				continue
			}
			value := "undefined"
			if n, ok := spec.Default(id); ok {
				value = jsLiteral(n)
			}
			exports = append(exports, propExport{identifier: id, value: value, typeName: typeName})
			if typeName != "" {
				required[typeName] = true
			}
		}

		for _, cc := range e.ClassConditions(p) {
			keep, err := guard.claim(cc.QualifiedName(), p.Name, cc.Expr)
			if err != nil {
				return nil, fmt.Errorf("component %s: %w", spec.Name, err)
			}
			if keep {
				directives = append(directives, cc.Directive())
			}
		}
	}

	tag := spec.As
	if tag == "" {
		tag = DefaultTag
	}

	var src strings.Builder
	src.WriteString("<script>\n")
	fmt.Fprintf(&src, "  export let as = %s\n", jsString(tag))
	src.WriteString("  export let testId = undefined\n")
	for _, x := range exports {
		fmt.Fprintf(&src, "  export let %s = %s\n", x.identifier, x.value)
	}
	src.WriteString("</script>\n\n<svelte:element\n  this={as}\n  {...$$restProps}\n")
	for _, d := range directives {
		src.WriteString("  " + d + "\n")
	}
	src.WriteString("  data-testid={testId}\n")
	for _, ev := range e.forwardedEvents(spec, specs, events) {
		src.WriteString("  on:" + ev + "\n")
	}
	src.WriteString(">\n  <slot />\n</svelte:element>\n")

	var decl strings.Builder
	decl.WriteString("import { SvelteComponentTyped } from 'svelte'\n")
	if len(exports) > 0 {
		required[ResponsiveType] = true
		fmt.Fprintf(&decl, "import type { %s } from './types'\n", strings.Join(sortedKeys(required), ", "))
	}
	fmt.Fprintf(&decl, "\nexport interface %sProps {\n  as?: string\n  testId?: string\n", spec.Name)
	for _, x := range exports {
		t := "string | number"
		if x.typeName != "" {
			t = x.typeName
		}
		fmt.Fprintf(&decl, "  %s?: %s<%s>\n", x.identifier, ResponsiveType, t)
	}
	decl.WriteString("  [attribute: string]: unknown\n}\n\n")
	fmt.Fprintf(&decl, "export default class %s extends SvelteComponentTyped<%sProps, Record<string, Event>, { default: {} }> {}\n",
		spec.Name, spec.Name)

	return []File{
		{Name: spec.Filename, Content: src.String()},
		{Name: spec.Filename + ".d.ts", Content: decl.String()},
	}, nil
}

// hasData reports whether p can generate anything against the theme.
func (e *Emitter) hasData(p props.Prop) bool {
	if p.Scale != "" {
		if _, ok := e.Theme.Scale(p.Scale); ok {
			return true
		}
	}
	return len(p.Values) > 0
}

// forwardedEvents lists the events a component forwards. In optimize mode
// an event survives when it was recorded for the component or for one of
// the components derived from it.
func (e *Emitter) forwardedEvents(spec ComponentSpec, specs []ComponentSpec, events *usage.EventCache) []string {
	if !e.Optimize {
		return Events
	}
	var out []string
	for _, ev := range Events {
		used := events.Has(spec.Name, ev)
		for _, s := range specs {
			if s.Source == spec.Name && events.Has(s.Name, ev) {
				used = true
			}
		}
		if used {
			out = append(out, ev)
		}
	}
	return out
}

func (e *Emitter) derivedSource(spec ComponentSpec, events *usage.EventCache) string {
	var src strings.Builder
	fmt.Fprintf(&src, "<script>\n  import %s from './%s.svelte'\n</script>\n\n<%s\n", spec.Source, spec.Source, spec.Source)
	if spec.As != "" {
		fmt.Fprintf(&src, "  as={%s}\n", jsString(spec.As))
	}
	for _, d := range spec.Defaults {
		fmt.Fprintf(&src, "  %s={%s}\n", d.Name, jsLiteral(d.Value))
	}
	src.WriteString("  {...$$restProps}\n")
	for _, ev := range Events {
		if !e.Optimize || events.Has(spec.Name, ev) {
			src.WriteString("  on:" + ev + "\n")
		}
	}
	fmt.Fprintf(&src, ">\n  <slot />\n</%s>\n", spec.Source)
	return src.String()
}

func derivedDeclaration(spec ComponentSpec) string {
	return fmt.Sprintf(`import { SvelteComponentTyped } from 'svelte'
import type { %[2]sProps } from './%[2]s.svelte'

export type %[1]sProps = %[2]sProps

export default class %[1]s extends SvelteComponentTyped<%[1]sProps, Record<string, Event>, { default: {} }> {}
`, spec.Name, spec.Source)
}

// jsLiteral renders a theme default as a JS expression. Scalars become
// strings, so the defaults compare like template literals do.
func jsLiteral(n *theme.Node) string {
	if n == nil {
		return "undefined"
	}
	switch n.Kind {
	case theme.StringNode, theme.NumberNode:
		return jsString(n.Value)
	case theme.BoolNode:
		return n.Value
	case theme.ListNode:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			items[i] = jsLiteral(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case theme.MapNode:
		fields := make([]string, len(n.Keys))
		for i, k := range n.Keys {
			key := k
			if !isIdentifier(k) {
				key = jsString(k)
			}
			fields[i] = key + ": " + jsLiteral(n.Values[i])
		}
		return "{ " + strings.Join(fields, ", ") + " }"
	}
	return "undefined"
}
