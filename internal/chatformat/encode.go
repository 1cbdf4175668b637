package chatformat

import (
	"bytes"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// encode renders v as JSON laid out the way Python's json.dumps does by
// default: ", " and ": " separators, declared key order, ASCII-only output.
func encode(v any) (string, error) {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return "", err
	}
	return string(pythonLayout(b)), nil
}

func pythonLayout(compact []byte) []byte {
	out := make([]byte, 0, len(compact)+len(compact)/8)
	inString := false
	for i := 0; i < len(compact); {
		c := compact[i]
		if !inString {
			out = append(out, c)
			switch c {
			case '"':
				inString = true
			case ',', ':':
				out = append(out, ' ')
			}
			i++
			continue
		}

		switch {
		case c == '"':
			inString = false
			out = append(out, c)
			i++
		case c == '\\':
			n := escapeLen(compact[i:])
			out = appendEscape(out, compact[i:i+n])
			i += n
		case c == 0x7f:
			out = append(out, `\u007f`...)
			i++
		case c < utf8.RuneSelf:
			out = append(out, c)
			i++
		default:
			r, size := utf8.DecodeRune(compact[i:])
			out = appendRuneEscape(out, r)
			i += size
		}
	}
	return out
}

func escapeLen(b []byte) int {
	if len(b) >= 6 && b[1] == 'u' {
		return 6
	}
	if len(b) >= 2 {
		return 2
	}
	return len(b)
}

// appendEscape copies an escape sequence, undoing HTML-safe escapes and
// using the short forms for backspace and form feed.
func appendEscape(out, esc []byte) []byte {
	switch {
	case bytes.EqualFold(esc, []byte(`\u003c`)):
		return append(out, '<')
	case bytes.EqualFold(esc, []byte(`\u003e`)):
		return append(out, '>')
	case bytes.EqualFold(esc, []byte(`\u0026`)):
		return append(out, '&')
	case bytes.EqualFold(esc, []byte(`\u0008`)):
		return append(out, `\b`...)
	case bytes.EqualFold(esc, []byte(`\u000c`)):
		return append(out, `\f`...)
	case len(esc) == 6:
		return append(out, bytes.ToLower(esc)...)
	default:
		return append(out, esc...)
	}
}

func appendRuneEscape(out []byte, r rune) []byte {
	if r > 0xFFFF {
		hi, lo := utf16.EncodeRune(r)
		out = fmt.Appendf(out, `\u%04x`, hi)
		return fmt.Appendf(out, `\u%04x`, lo)
	}
	return fmt.Appendf(out, `\u%04x`, r)
}

type toolDefinitionWire struct {
	Type     string             `json:"type"`
	Function toolDefinitionBody `json:"function"`
}

type toolDefinitionBody struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  parameterSchemaWire `json:"parameters"`
}

type parameterSchemaWire struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Required   []string   `json:"required"`
}

type toolCallWire struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function toolCallFuncWire `json:"function"`
}

type toolCallFuncWire struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func encodeTools(tools []ToolDefinition) (string, error) {
	wire := make([]toolDefinitionWire, 0, len(tools))
	for _, t := range tools {
		required := t.Parameters.Required
		if required == nil {
			required = []string{}
		}
		wire = append(wire, toolDefinitionWire{
			Type: "function",
			Function: toolDefinitionBody{
				Name:        t.Name,
				Description: t.Description,
				Parameters: parameterSchemaWire{
					Type:       t.Parameters.Type,
					Properties: t.Parameters.Properties,
					Required:   required,
				},
			},
		})
	}
	return encode(wire)
}

func encodeToolCall(call ToolCall) (string, error) {
	args := string(call.Arguments)
	if args == "" {
		args = "{}"
	}
	return encode(toolCallWire{
		ID:   call.ID,
		Type: "function",
		Function: toolCallFuncWire{
			Name:      call.Name,
			Arguments: args,
		},
	})
}

func encodeToolResult(res ToolResult) (string, error) {
	return encode(res)
}

// MarshalJSON writes the properties as one object in declaration order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.MarshalNoEscape(prop.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.MarshalNoEscape(prop)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
