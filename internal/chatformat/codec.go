package chatformat

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Decoding goes through yaml.v3 nodes for both YAML and JSON input: JSON is
// valid YAML and mapping nodes keep their source order.

func (r *Role) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		*p = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected mapping, got %s", nodeKind(value))
	}
	props := make(Properties, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var prop Property
		if err := value.Content[i+1].Decode(&prop); err != nil {
			return fmt.Errorf("properties: %s: %w", value.Content[i].Value, err)
		}
		prop.Name = value.Content[i].Value
		props = append(props, prop)
	}
	*p = props
	return nil
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	node, err := parseNode(b)
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	return p.UnmarshalYAML(node)
}

func (a *Arguments) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		switch value.ShortTag() {
		case "!!null":
			*a = ""
			return nil
		case "!!str":
			*a = Arguments(value.Value)
			return nil
		}
	}
	s, err := encodeNode(value)
	if err != nil {
		return fmt.Errorf("arguments: %w", err)
	}
	*a = Arguments(s)
	return nil
}

func (a *Arguments) UnmarshalJSON(b []byte) error {
	node, err := parseNode(b)
	if err != nil {
		return fmt.Errorf("arguments: %w", err)
	}
	return a.UnmarshalYAML(node)
}

// parseNode parses a JSON value into a yaml node. The input is compacted
// first because yaml rejects some JSON indentation, tabs in particular.
func parseNode(b []byte) (*yaml.Node, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(compact.Bytes(), &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}
	return &doc, nil
}

// encodeNode renders a decoded YAML/JSON value with the same layout as encode,
// keeping mapping order.
func encodeNode(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return "null", nil
		}
		return encodeNode(n.Content[0])
	case yaml.AliasNode:
		return encodeNode(n.Alias)
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			s, err := encodeNode(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case yaml.MappingNode:
		parts := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := encode(n.Content[i].Value)
			if err != nil {
				return "", err
			}
			v, err := encodeNode(n.Content[i+1])
			if err != nil {
				return "", err
			}
			parts = append(parts, k+": "+v)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case yaml.ScalarNode:
		return encodeScalar(n)
	default:
		return "", fmt.Errorf("unsupported node %s", nodeKind(n))
	}
}

func encodeScalar(n *yaml.Node) (string, error) {
	switch n.ShortTag() {
	case "!!null":
		return "null", nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return "", err
		}
		return strconv.FormatInt(i, 10), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return "", err
		}
		switch {
		case math.IsNaN(f):
			return "NaN", nil
		case math.IsInf(f, 1):
			return "Infinity", nil
		case math.IsInf(f, -1):
			return "-Infinity", nil
		}
		if _, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return n.Value, nil
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		return encode(n.Value)
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + n.ShortTag()
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
