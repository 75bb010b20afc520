package theme

import (
	"fmt"
	"strconv"
)

// NodeKind identifies the shape of a decoded document node.
type NodeKind int

// Node kinds
const (
	NullNode NodeKind = iota
	BoolNode
	NumberNode
	StringNode
	ListNode
	MapNode
	OtherNode // dates, timestamps and anything a theme cannot hold
)

func (k NodeKind) String() string {
	switch k {
	case NullNode:
		return "null"
	case BoolNode:
		return "boolean"
	case NumberNode:
		return "number"
	case StringNode:
		return "string"
	case ListNode:
		return "list"
	case MapNode:
		return "mapping"
	default:
		return "unsupported value"
	}
}

// Node is a format-neutral, order-preserving document tree. YAML, JSON and
// TOML themes all decode into it before the theme model is built.
type Node struct {
	Kind   NodeKind
	Value  string  // scalar text; numbers are normalized
	Items  []*Node // ListNode
	Keys   []string
	Values []*Node // MapNode, parallel to Keys
	Line   int
	Column int
}

// Get returns the value stored under key in a mapping node.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != MapNode {
		return nil, false
	}
	for i, k := range n.Keys {
		if k == key {
			return n.Values[i], true
		}
	}
	return nil, false
}

// Set replaces or appends key in a mapping node.
func (n *Node) Set(key string, value *Node) {
	for i, k := range n.Keys {
		if k == key {
			n.Values[i] = value
			return
		}
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, value)
}

// IsFalsy reports whether the node is a tombstone (false or null).
func (n *Node) IsFalsy() bool {
	return n == nil || n.Kind == NullNode || (n.Kind == BoolNode && n.Value == "false")
}

// Interface converts the node into plain Go values for schema validation.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case NullNode:
		return nil
	case BoolNode:
		return n.Value == "true"
	case NumberNode:
		f, _ := strconv.ParseFloat(n.Value, 64)
		return f
	case StringNode:
		return n.Value
	case ListNode:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			out[i] = item.Interface()
		}
		return out
	case MapNode:
		out := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			out[k] = n.Values[i].Interface()
		}
		return out
	default:
		return fmt.Sprintf("<%s>", n.Value)
	}
}

// Position renders line:column when known.
func (n *Node) Position() string {
	if n == nil || n.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", n.Line, n.Column)
}

// formatNumber normalizes a numeric literal the way JavaScript prints it:
// 1.50 becomes 1.5 and 10 stays 10.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func newMap() *Node {
	return &Node{Kind: MapNode}
}
