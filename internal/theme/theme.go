// Package theme models design-token themes: ordered scales, breakpoints and
// per-component defaults. It decodes YAML, JSON and TOML documents without
// losing key order, flattens scales into leaf groups and turns raw scale
// values into CSS-ready text.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved top-level theme keys. Everything else is a scale.
const (
	KeyBreakpoints = "breakpoints"
	KeyComponents  = "components"
)

// Reserved keys of an aliased array scale written as a mapping.
const (
	keyArrayValues  = "$values"
	keyArrayAliases = "$aliases"
)

// Value is a leaf scale value. Raw holds the text exactly as it will be
// transformed; Numeric records whether it was written as a number.
type Value struct {
	Raw     string
	Numeric bool
}

// String returns the raw text.
func (v Value) String() string { return v.Raw }

// Kind distinguishes array scales from object scales.
type Kind int

// Scale kinds
const (
	KindObject Kind = iota
	KindArray
)

// Entry is one keyed member of a scale: either a leaf value or a nested scale.
type Entry struct {
	Key    string
	Value  Value
	Nested *Scale
}

// Alias names an array index with an extra key (e.g. gaps.sm = gaps[0]).
type Alias struct {
	Name  string
	Index int
}

// Scale is an ordered, possibly nested, set of design values.
type Scale struct {
	Kind    Kind
	Entries []Entry
	Aliases []Alias
}

// Len returns the number of direct entries, aliases excluded.
func (s *Scale) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// entry returns the direct entry stored under key.
func (s *Scale) entry(key string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e, true
		}
	}
	if s.Kind == KindArray {
		for _, a := range s.Aliases {
			if a.Name == key {
				return s.entry(strconv.Itoa(a.Index))
			}
		}
	}
	return Entry{}, false
}

// Lookup resolves a dotted key path such as "modes.light.text".
func (s *Scale) Lookup(path string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	current := s
	parts := strings.Split(path, ".")
	for i, part := range parts {
		e, ok := current.entry(part)
		if !ok {
			return Value{}, false
		}
		if i == len(parts)-1 {
			return e.Value, e.Nested == nil
		}
		if e.Nested == nil {
			return Value{}, false
		}
		current = e.Nested
	}
	return Value{}, false
}

// Breakpoint is a named minimum viewport width.
type Breakpoint struct {
	Name     string
	MinWidth string
}

// Breakpoints are ordered by declaration; index order drives positional
// (array) responsive values.
type Breakpoints []Breakpoint

// Names returns the breakpoint names in order.
func (b Breakpoints) Names() []string {
	out := make([]string, len(b))
	for i, bp := range b {
		out[i] = bp.Name
	}
	return out
}

// Index returns the position of a breakpoint, or -1.
func (b Breakpoints) Index(name string) int {
	for i, bp := range b {
		if bp.Name == name {
			return i
		}
	}
	return -1
}

// PropDefault is a default prop value declared for a component. The value
// keeps its document shape so arrays and objects can be treated as
// responsive values.
type PropDefault struct {
	Name  string
	Value *Node
}

// Component holds the theme's declaration for one component.
type Component struct {
	Name    string
	As      string // tag override
	Extends string // standard component this one wraps
	Props   []PropDefault
}

// Prop returns the default declared for a prop name.
func (c Component) Prop(name string) (*Node, bool) {
	for _, p := range c.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Theme is a fully built theme document.
type Theme struct {
	Breakpoints Breakpoints
	Components  []Component
	scales      map[string]*Scale
	order       []string
}

// New returns an empty theme.
func New() *Theme {
	return &Theme{scales: make(map[string]*Scale)}
}

// Scale returns a named scale.
func (t *Theme) Scale(name string) (*Scale, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.scales[name]
	return s, ok
}

// SetScale adds or replaces a scale, keeping first-declaration order.
func (t *Theme) SetScale(name string, s *Scale) {
	if _, ok := t.scales[name]; !ok {
		t.order = append(t.order, name)
	}
	t.scales[name] = s
}

// ScaleNames returns scale names in declaration order.
func (t *Theme) ScaleNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Component looks up a component declaration by name.
func (t *Theme) Component(name string) (Component, bool) {
	if t == nil {
		return Component{}, false
	}
	for _, c := range t.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// WithDefaults returns a copy of t where every scale of def that t does not
// declare is taken from def. Breakpoints fall back the same way; components
// are never inherited.
func (t *Theme) WithDefaults(def *Theme) *Theme {
	out := New()
	out.Breakpoints = t.Breakpoints
	out.Components = t.Components
	if len(out.Breakpoints) == 0 && def != nil {
		out.Breakpoints = def.Breakpoints
	}
	for _, name := range t.order {
		out.SetScale(name, t.scales[name])
	}
	if def != nil {
		for _, name := range def.order {
			if _, ok := out.scales[name]; !ok {
				out.SetScale(name, def.scales[name])
			}
		}
	}
	return out
}

// ShapeError reports scale data that is neither a value nor a collection.
type ShapeError struct {
	Scale string
	Path  string
	Kind  NodeKind
	Pos   string
}

func (e *ShapeError) Error() string {
	loc := e.Scale
	if e.Path != "" {
		loc += "." + e.Path
	}
	msg := fmt.Sprintf("scale %s: unexpected %s", loc, e.Kind)
	if e.Pos != "" {
		msg += " at " + e.Pos
	}
	return msg
}

// FromNode builds a theme from a decoded document. It does not run schema
// validation; Build does both.
func FromNode(root *Node) (*Theme, error) {
	t := New()
	if root == nil {
		return t, nil
	}
	if root.Kind != MapNode {
		return nil, fmt.Errorf("theme must be a mapping, got %s", root.Kind)
	}

	for i, key := range root.Keys {
		value := root.Values[i]

		switch key {
		case KeyBreakpoints:
			bps, err := breakpointsFromNode(value)
			if err != nil {
				return nil, err
			}
			t.Breakpoints = bps

		case KeyComponents:
			components, err := componentsFromNode(value)
			if err != nil {
				return nil, err
			}
			t.Components = components

		default:
			if value.IsFalsy() {
				continue
			}
			scale, err := scaleFromNode(key, "", value)
			if err != nil {
				return nil, err
			}
			t.SetScale(key, scale)
		}
	}

	return t, nil
}

func breakpointsFromNode(n *Node) (Breakpoints, error) {
	if n.IsFalsy() {
		return nil, nil
	}
	if n.Kind != MapNode {
		return nil, fmt.Errorf("breakpoints must be a mapping, got %s", n.Kind)
	}
	bps := make(Breakpoints, 0, len(n.Keys))
	for i, name := range n.Keys {
		v := n.Values[i]
		switch v.Kind {
		case StringNode:
			bps = append(bps, Breakpoint{Name: name, MinWidth: v.Value})
		case NumberNode:
			bps = append(bps, Breakpoint{Name: name, MinWidth: Transform(Value{Raw: v.Value, Numeric: true}, TransformPixels)})
		default:
			return nil, fmt.Errorf("breakpoint %s: expected a CSS length, got %s", name, v.Kind)
		}
	}
	return bps, nil
}

func componentsFromNode(n *Node) ([]Component, error) {
	if n.IsFalsy() {
		return nil, nil
	}
	if n.Kind != MapNode {
		return nil, fmt.Errorf("components must be a mapping, got %s", n.Kind)
	}
	components := make([]Component, 0, len(n.Keys))
	for i, name := range n.Keys {
		decl := n.Values[i]
		c := Component{Name: name}
		if decl.Kind != MapNode {
			return nil, fmt.Errorf("component %s: expected a mapping of props, got %s", name, decl.Kind)
		}
		for j, prop := range decl.Keys {
			value := decl.Values[j]
			switch prop {
			case "as":
				c.As = value.Value
			case "extends":
				c.Extends = value.Value
			default:
				c.Props = append(c.Props, PropDefault{Name: prop, Value: value})
			}
		}
		components = append(components, c)
	}
	return components, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func scaleFromNode(name, path string, n *Node) (*Scale, error) {
	switch n.Kind {
	case ListNode:
		return arrayScale(name, path, n.Items, nil)

	case MapNode:
		if values, ok := n.Get(keyArrayValues); ok {
			if values.Kind != ListNode {
				return nil, &ShapeError{Scale: name, Path: joinPath(path, keyArrayValues), Kind: values.Kind, Pos: values.Position()}
			}
			aliases, _ := n.Get(keyArrayAliases)
			return arrayScale(name, path, values.Items, aliases)
		}

		s := &Scale{Kind: KindObject}
		for i, key := range n.Keys {
			entry, skip, err := entryFromNode(name, joinPath(path, key), key, n.Values[i])
			if err != nil {
				return nil, err
			}
			if !skip {
				s.Entries = append(s.Entries, entry)
			}
		}
		return s, nil

	default:
		return nil, &ShapeError{Scale: name, Path: path, Kind: n.Kind, Pos: n.Position()}
	}
}

func arrayScale(name, path string, items []*Node, aliases *Node) (*Scale, error) {
	s := &Scale{Kind: KindArray}
	present := make(map[int]bool, len(items))

	for i, item := range items {
		key := strconv.Itoa(i)
		entry, skip, err := entryFromNode(name, joinPath(path, key), key, item)
		if err != nil {
			return nil, err
		}
		if !skip {
			s.Entries = append(s.Entries, entry)
			present[i] = true
		}
	}

	if aliases == nil || aliases.Kind == NullNode {
		return s, nil
	}
	if aliases.Kind != MapNode {
		return nil, &ShapeError{Scale: name, Path: joinPath(path, keyArrayAliases), Kind: aliases.Kind, Pos: aliases.Position()}
	}
	for i, alias := range aliases.Keys {
		target := aliases.Values[i]
		idx, err := strconv.Atoi(target.Value)
		if target.Kind != NumberNode || err != nil || idx < 0 || idx >= len(items) {
			return nil, fmt.Errorf("scale %s: alias %q must point at an index of $values", joinPath(name, path), alias)
		}
		if !present[idx] {
			continue
		}
		s.Aliases = append(s.Aliases, Alias{Name: alias, Index: idx})
	}
	return s, nil
}

func entryFromNode(name, path, key string, n *Node) (Entry, bool, error) {
	if n.IsFalsy() {
		return Entry{}, true, nil
	}
	switch n.Kind {
	case StringNode:
		return Entry{Key: key, Value: Value{Raw: n.Value}}, false, nil
	case NumberNode:
		return Entry{Key: key, Value: Value{Raw: n.Value, Numeric: true}}, false, nil
	case ListNode, MapNode:
		nested, err := scaleFromNode(name, path, n)
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Key: key, Nested: nested}, false, nil
	default:
		return Entry{}, false, &ShapeError{Scale: name, Path: path, Kind: n.Kind, Pos: n.Position()}
	}
}
