package usage

import (
	"sort"
	"sync"
)

// Cache holds prop usage for one generation run. It is safe for concurrent
// use. A nil *Cache reports no usage at all.
type Cache struct {
	mu    sync.RWMutex
	props Catalog
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{props: make(Catalog)}
}

// Get returns a copy of the usage recorded for prop.
func (c *Cache) Get(prop string) (Entry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.props[prop]
	if !ok {
		return nil, false
	}
	out := make(Catalog)
	out.Merge(Catalog{prop: entry})
	return out[prop], true
}

// Set replaces the usage recorded for prop.
func (c *Cache) Set(prop string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[prop] = entry
}

// Keys returns every prop name with recorded usage, sorted.
func (c *Cache) Keys() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.props))
	for k := range c.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops all recorded usage.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props = make(Catalog)
}

// Merge adds every record of cat to the cache in one critical section.
func (c *Cache) Merge(cat Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props.Merge(cat)
}

// Values aggregates the usage of prop across components: each observed value
// maps to the set of breakpoint keys it was seen at. It returns nil when the
// prop has no usage.
func (c *Cache) Values(prop string) map[string]Set {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out map[string]Set
	for _, bps := range c.props[prop] {
		for bp, values := range bps {
			for v := range values {
				if out == nil {
					out = make(map[string]Set)
				}
				if out[v] == nil {
					out[v] = make(Set)
				}
				out[v].Add(bp)
			}
		}
	}
	return out
}

// HasUsage reports whether any value of prop was observed.
func (c *Cache) HasUsage(prop string) bool {
	return len(c.Values(prop)) > 0
}

// Used reports whether value was observed for prop at breakpoint.
func (c *Cache) Used(prop, value, breakpoint string) bool {
	bps, ok := c.Values(prop)[value]
	return ok && bps.Has(breakpoint)
}

// EventCache records which DOM events each component has handlers for.
type EventCache struct {
	mu     sync.RWMutex
	events map[string]Set
}

// NewEventCache returns an empty event cache.
func NewEventCache() *EventCache {
	return &EventCache{events: make(map[string]Set)}
}

// Add records event for component.
func (e *EventCache) Add(component, event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	set, ok := e.events[component]
	if !ok {
		set = make(Set)
		e.events[component] = set
	}
	set.Add(event)
}

// Get returns the sorted events recorded for component.
func (e *EventCache) Get(component string) []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events[component].Sorted()
}

// Has reports whether component has a handler for event.
func (e *EventCache) Has(component, event string) bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events[component].Has(event)
}

// Components returns every component with recorded events, sorted.
func (e *EventCache) Components() []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.events))
	for c := range e.events {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Clear drops all recorded events.
func (e *EventCache) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = make(map[string]Set)
}
