// Package usage records which prop values and event handlers a project's
// Svelte templates actually use. The records drive optimize mode: classes,
// styles, props and types with no recorded usage are left out of the output.
package usage

import (
	"fmt"
	"sort"
)

// BreakpointAll is the breakpoint key for values that apply at every width.
const BreakpointAll = "all"

// ArrayMode selects how array-valued template attributes are recorded.
type ArrayMode string

// Array modes
const (
	// ArrayPositional spreads array elements across breakpoints by index,
	// the same way theme component defaults are seeded.
	ArrayPositional ArrayMode = "positional"
	// ArrayAll records every element under BreakpointAll.
	ArrayAll ArrayMode = "all"
)

// ParseArrayMode validates a configured array mode. Empty means positional.
func ParseArrayMode(s string) (ArrayMode, error) {
	switch ArrayMode(s) {
	case "", ArrayPositional:
		return ArrayPositional, nil
	case ArrayAll:
		return ArrayAll, nil
	default:
		return "", fmt.Errorf("invalid array mode %q: must be %q or %q", s, ArrayPositional, ArrayAll)
	}
}

// Set is a set of strings.
type Set map[string]struct{}

// Add inserts v.
func (s Set) Add(v string) { s[v] = struct{}{} }

// Has reports whether v is present.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Breakpoints maps a breakpoint key (or BreakpointAll) to observed values.
type Breakpoints map[string]Set

// Entry maps a component name to its breakpoint usage for one prop.
type Entry map[string]Breakpoints

// Catalog maps a prop name to its per-component usage.
type Catalog map[string]Entry

// Add records value for prop on component at breakpoint.
func (c Catalog) Add(prop, component, breakpoint, value string) {
	entry, ok := c[prop]
	if !ok {
		entry = make(Entry)
		c[prop] = entry
	}
	bps, ok := entry[component]
	if !ok {
		bps = make(Breakpoints)
		entry[component] = bps
	}
	set, ok := bps[breakpoint]
	if !ok {
		set = make(Set)
		bps[breakpoint] = set
	}
	set.Add(value)
}

// Merge adds every record of other into c.
func (c Catalog) Merge(other Catalog) {
	for prop, entry := range other {
		for component, bps := range entry {
			for bp, values := range bps {
				for v := range values {
					c.Add(prop, component, bp, v)
				}
			}
		}
	}
}

// Shape is the form of an observed prop value.
type Shape int

// Observation shapes
const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeMap
)

// Observation is one literal prop value: a scalar, a list of per-breakpoint
// values, or a mapping from breakpoint name to value. Every member is already
// normalized to a string; an empty list item is a hole (a non-literal
// element) and keeps the positions of the items after it.
type Observation struct {
	Shape  Shape
	Value  string
	Items  []string
	Keys   []string
	Values []string
}

// Scalar returns a scalar observation.
func Scalar(v string) Observation {
	return Observation{Shape: ShapeScalar, Value: v}
}

// Accumulate records o for prop on component. Lists are spread over
// breakpoints by index unless mode is ArrayAll; extra items and holes are
// ignored. Mappings are matched by breakpoint name and unknown keys are
// ignored.
func (c Catalog) Accumulate(component, prop string, o Observation, breakpoints []string, mode ArrayMode) {
	switch o.Shape {
	case ShapeScalar:
		c.Add(prop, component, BreakpointAll, o.Value)

	case ShapeList:
		for i, item := range o.Items {
			if item == "" {
				continue
			}
			if mode == ArrayAll {
				c.Add(prop, component, BreakpointAll, item)
				continue
			}
			if i >= len(breakpoints) {
				break
			}
			c.Add(prop, component, breakpoints[i], item)
		}

	case ShapeMap:
		for _, bp := range breakpoints {
			for i, k := range o.Keys {
				if k == bp && o.Values[i] != "" {
					c.Add(prop, component, bp, o.Values[i])
				}
			}
		}
	}
}
