package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// decodeTOML walks the expression stream of the go-toml parser so that table
// and key order survive; toml.Unmarshal into a map would lose it.
func decodeTOML(data []byte) (*Node, error) {
	p := unstable.Parser{}
	p.Reset(data)

	root := newMap()
	current := root

	for p.NextExpression() {
		expr := p.Expression()

		switch expr.Kind {
		case unstable.Table:
			table, err := tomlTable(root, tomlKey(expr))
			if err != nil {
				return nil, err
			}
			current = table

		case unstable.ArrayTable:
			return nil, fmt.Errorf("array tables ([[%s]]) are not supported in themes", strings.Join(tomlKey(expr), "."))

		case unstable.KeyValue:
			if err := tomlAssign(current, expr); err != nil {
				return nil, err
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}

	return root, nil
}

func tomlKey(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// tomlTable returns the mapping at path, creating intermediate tables.
func tomlTable(root *Node, path []string) (*Node, error) {
	current := root
	for _, part := range path {
		next, ok := current.Get(part)
		if !ok {
			next = newMap()
			current.Set(part, next)
		}
		if next.Kind != MapNode {
			return nil, fmt.Errorf("key %q is already defined as a %s", strings.Join(path, "."), next.Kind)
		}
		current = next
	}
	return current, nil
}

func tomlAssign(table *Node, kv *unstable.Node) error {
	path := tomlKey(kv)
	parent, err := tomlTable(table, path[:len(path)-1])
	if err != nil {
		return err
	}
	value, err := convertTOML(kv.Value())
	if err != nil {
		return fmt.Errorf("key %q: %w", strings.Join(path, "."), err)
	}
	parent.Set(path[len(path)-1], value)
	return nil
}

func convertTOML(n *unstable.Node) (*Node, error) {
	switch n.Kind {
	case unstable.String:
		return &Node{Kind: StringNode, Value: string(n.Data)}, nil

	case unstable.Bool:
		return &Node{Kind: BoolNode, Value: string(n.Data)}, nil

	case unstable.Integer:
		i, err := strconv.ParseInt(strings.ReplaceAll(string(n.Data), "_", ""), 0, 64)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NumberNode, Value: strconv.FormatInt(i, 10)}, nil

	case unstable.Float:
		f, err := strconv.ParseFloat(strings.ReplaceAll(string(n.Data), "_", ""), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%q is not a finite number", n.Data)
		}
		return &Node{Kind: NumberNode, Value: formatNumber(f)}, nil

	case unstable.Array:
		out := &Node{Kind: ListNode}
		it := n.Children()
		for it.Next() {
			item, err := convertTOML(it.Node())
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, item)
		}
		return out, nil

	case unstable.InlineTable:
		out := newMap()
		it := n.Children()
		for it.Next() {
			if err := tomlAssign(out, it.Node()); err != nil {
				return nil, err
			}
		}
		return out, nil

	default:
		return &Node{Kind: OtherNode, Value: string(n.Data)}, nil
	}
}
