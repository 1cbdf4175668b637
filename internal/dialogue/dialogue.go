// Package dialogue reads dialogues from YAML or JSON documents.
package dialogue

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/samcharles93/chatfmt/internal/chatformat"
	"gopkg.in/yaml.v3"
)

// Document is the mapping form of a dialogue file. Format and Template are
// optional hints for the caller.
type Document struct {
	Format   string               `yaml:"format,omitempty"`
	Template string               `yaml:"template,omitempty"`
	Messages []chatformat.Message `yaml:"messages"`
}

// Decode reads either a bare list of messages or a mapping with a
// "messages" key. JSON input is accepted as YAML.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("dialogue: read: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(normalizeJSON(data), &root); err != nil {
		return Document{}, fmt.Errorf("dialogue: parse: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return Document{}, fmt.Errorf("dialogue: empty document")
	}
	node := root.Content[0]

	var doc Document
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&doc.Messages); err != nil {
			return Document{}, fmt.Errorf("dialogue: decode messages: %w", err)
		}
	case yaml.MappingNode:
		if err := node.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("dialogue: decode document: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("dialogue: expected a list of messages or a mapping with messages")
	}

	for i, m := range doc.Messages {
		if !m.Role.Valid() {
			return Document{}, fmt.Errorf("dialogue: message %d: %w", i, chatformat.ErrUnknownRole)
		}
	}
	return doc, nil
}

// normalizeJSON compacts JSON input so tab-indented documents parse as YAML.
// Anything that is not valid JSON is returned unchanged.
func normalizeJSON(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return data
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return data
	}
	return buf.Bytes()
}

// Load decodes the dialogue file at path.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("dialogue: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}
