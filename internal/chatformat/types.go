package chatformat

import (
	"fmt"
	"strings"
)

// Role is the speaker category of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ParseRole accepts exactly the four known roles.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Message is one turn of a dialogue.
//
// Tools, ToolCalls and ToolResult are only read by the tool-augmented
// ChatML format. Formatted output carries Role and Content only.
type Message struct {
	Role       Role             `json:"role" yaml:"role"`
	Content    string           `json:"content" yaml:"content"`
	Tools      []ToolDefinition `json:"tools,omitempty" yaml:"tools,omitempty"`
	ToolCalls  []ToolCall       `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`
	ToolResult *ToolResult      `json:"tool_result,omitempty" yaml:"tool_result,omitempty"`
}

type ToolDefinition struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Parameters  ParameterSchema `json:"parameters" yaml:"parameters"`
}

type ParameterSchema struct {
	Type       string     `json:"type" yaml:"type"`
	Properties Properties `json:"properties" yaml:"properties"`
	Required   []string   `json:"required" yaml:"required"`
}

// Properties keeps parameter properties in declaration order.
type Properties []Property

type Property struct {
	Name        string `json:"-" yaml:"-"`
	Type        string `json:"type" yaml:"type"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Description string `json:"description" yaml:"description"`
}

type ToolCall struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Arguments Arguments `json:"arguments" yaml:"arguments"`
}

// Arguments is the JSON text of a tool call's arguments object.
type Arguments string

type ToolResult struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}
