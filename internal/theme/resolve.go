package theme

import (
	"sort"
	"strconv"
	"strings"
)

// LeafGroup is a set of scale keys that resolve to one identical value and
// therefore share one generated class.
type LeafGroup struct {
	Path  []string // nested key prefix, empty at the top level
	Keys  []string // discovery order; Keys[0] names the class
	Value Value
}

// KeyPath returns the dotted nested prefix ("modes.light"), or "".
func (g LeafGroup) KeyPath() string {
	return strings.Join(g.Path, ".")
}

// Qualified returns key prefixed with the group's dotted path.
func (g LeafGroup) Qualified(key string) string {
	if len(g.Path) == 0 {
		return key
	}
	return g.KeyPath() + "." + key
}

// UsageKeys returns the qualified form of every key in the group. These are
// the literal values a template has to pass for the group to apply.
func (g LeafGroup) UsageKeys() []string {
	out := make([]string, len(g.Keys))
	for i, k := range g.Keys {
		out[i] = g.Qualified(k)
	}
	return out
}

// Resolve flattens a scale into leaf groups. Nested scales are walked depth
// first and their groups come before the value groups of the enclosing
// level; within a level groups follow the first encounter of each distinct
// value. Array aliases join the group of the index they name.
func Resolve(s *Scale) []LeafGroup {
	return resolve(s, nil)
}

func resolve(s *Scale, path []string) []LeafGroup {
	if s == nil {
		return nil
	}

	var groups []LeafGroup
	var buckets []LeafGroup
	index := make(map[string]int)

	add := func(key string, v Value) {
		if i, ok := index[v.Raw]; ok {
			buckets[i].Keys = append(buckets[i].Keys, key)
			return
		}
		index[v.Raw] = len(buckets)
		buckets = append(buckets, LeafGroup{Path: path, Keys: []string{key}, Value: v})
	}

	for _, e := range s.Entries {
		if e.Nested != nil {
			nestedPath := make([]string, len(path), len(path)+1)
			copy(nestedPath, path)
			groups = append(groups, resolve(e.Nested, append(nestedPath, e.Key))...)
			continue
		}
		add(e.Key, e.Value)
	}

	for _, a := range s.Aliases {
		e, ok := s.entry(strconv.Itoa(a.Index))
		if !ok || e.Nested != nil {
			continue
		}
		add(a.Name, e.Value)
	}

	return append(groups, buckets...)
}

// LeafKeys returns every qualified leaf key of a scale, aliases included,
// sorted lexically.
func LeafKeys(s *Scale) []string {
	var keys []string
	for _, g := range Resolve(s) {
		keys = append(keys, g.UsageKeys()...)
	}
	sort.Strings(keys)
	return keys
}
