package theme

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a theme document encoding.
type Format string

// Supported theme formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported theme file extension %q (want .yaml, .yml, .json or .toml)", filepath.Ext(path))
	}
}

// Load reads, validates and builds a theme from a file.
func Load(path string) (*Theme, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes, validates and builds a theme document.
func Parse(data []byte, format Format) (*Theme, error) {
	root, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Build(root)
}

// ParseSection builds a theme from the mapping stored under key in a YAML or
// JSON document, such as the theme section of a config file. found is false
// when the key is absent.
func ParseSection(data []byte, format Format, key string) (t *Theme, found bool, err error) {
	root, err := Decode(data, format)
	if err != nil {
		return nil, false, err
	}
	section, ok := root.Get(key)
	if !ok || section.Kind == NullNode {
		return nil, false, nil
	}
	t, err = Build(section)
	return t, true, err
}

// Build validates a decoded document against the theme schema and builds the
// theme model from it.
func Build(root *Node) (*Theme, error) {
	if err := Validate(root); err != nil {
		return nil, err
	}
	return FromNode(root)
}

// Decode parses a document into an ordered node tree.
func Decode(data []byte, format Format) (*Node, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported theme format %q", format)
	}
}

func decodeYAML(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return newMap(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return newMap(), nil
	}
	return convertYAML(doc.Content[0])
}

func convertYAML(n *yaml.Node) (*Node, error) {
	out := &Node{Line: n.Line, Column: n.Column}

	switch n.Kind {
	case yaml.AliasNode:
		return convertYAML(n.Alias)

	case yaml.MappingNode:
		out.Kind = MapNode
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Tag == "!!merge" {
				return nil, fmt.Errorf("line %d: merge keys are not supported in themes", keyNode.Line)
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := convertYAML(valueNode)
			if err != nil {
				return nil, err
			}
			key := keyNode.Value
			if keyNode.Tag == "!!int" || keyNode.Tag == "!!float" {
				if f, ok := yamlNumber(keyNode); ok {
					key = formatNumber(f)
				}
			}
			out.Set(key, value)
		}

	case yaml.SequenceNode:
		out.Kind = ListNode
		for _, item := range n.Content {
			child, err := convertYAML(item)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			out.Kind = NullNode
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			out.Kind = BoolNode
			out.Value = fmt.Sprint(b)
		case "!!int", "!!float":
			f, ok := yamlNumber(n)
			if !ok {
				return nil, fmt.Errorf("line %d: %q is not a finite number", n.Line, n.Value)
			}
			out.Kind = NumberNode
			out.Value = formatNumber(f)
		case "!!str", "":
			out.Kind = StringNode
			out.Value = n.Value
		default:
			out.Kind = OtherNode
			out.Value = n.Value
		}

	default:
		return nil, errors.New("unexpected YAML node")
	}

	return out, nil
}

func yamlNumber(n *yaml.Node) (float64, bool) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
