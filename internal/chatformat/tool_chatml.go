package chatformat

import (
	"fmt"
	"strings"
)

// DefaultToolPreamble introduces the tool list when the system turn has no
// text of its own.
const DefaultToolPreamble = "You are a helpful assistant with access to the following functions. Use them if required"

const (
	toolsOpen     = "<tools>"
	toolsClose    = "</tools>"
	toolCallOpen  = "<tool_call>\n"
	toolCallClose = "\n</tool_call>"
)

// ToolChatML is ChatML with tool definitions, tool calls and tool results
// embedded as JSON. Every turn, the last included, ends with a newline.
type ToolChatML struct{}

func (ToolChatML) Name() string { return FormatToolChatML }

func (ToolChatML) Format(msgs []Message) ([]Message, error) {
	out := make([]Message, 0, len(msgs))
	for i, m := range msgs {
		var (
			body string
			err  error
		)
		switch m.Role {
		case RoleSystem:
			body, err = toolSystemBody(m)
		case RoleUser:
			body = m.Content
		case RoleAssistant:
			body, err = toolAssistantBody(m)
		case RoleTool:
			body, err = toolResultBody(m)
		default:
			return nil, unsupportedRole(FormatToolChatML, m.Role)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: message %d: %w", FormatToolChatML, i, err)
		}
		out = append(out, Message{Role: m.Role, Content: envelope(m.Role, body) + "\n"})
	}
	return out, nil
}

func toolSystemBody(m Message) (string, error) {
	if len(m.Tools) == 0 {
		return m.Content, nil
	}
	preamble := m.Content
	if preamble == "" {
		preamble = DefaultToolPreamble
	}
	tools, err := encodeTools(m.Tools)
	if err != nil {
		return "", fmt.Errorf("encode tools: %w", err)
	}
	return preamble + "\n" + toolsOpen + tools + toolsClose, nil
}

func toolAssistantBody(m Message) (string, error) {
	if len(m.ToolCalls) == 0 {
		return m.Content, nil
	}
	var b strings.Builder
	b.WriteString(m.Content)
	for _, call := range m.ToolCalls {
		j, err := encodeToolCall(call)
		if err != nil {
			return "", fmt.Errorf("encode tool call %q: %w", call.Name, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(toolCallOpen)
		b.WriteString(j)
		b.WriteString(toolCallClose)
	}
	return b.String(), nil
}

func toolResultBody(m Message) (string, error) {
	if m.ToolResult == nil {
		return m.Content, nil
	}
	j, err := encodeToolResult(*m.ToolResult)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return j, nil
}
