package chatformat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const toolCallIDLen = 9

// NewToolCall builds a call with a fresh id. args is encoded as JSON unless it
// is already a string or Arguments; map keys come out sorted.
func NewToolCall(name string, args any) (ToolCall, error) {
	var encoded string
	switch v := args.(type) {
	case nil:
		encoded = "{}"
	case string:
		encoded = v
	case Arguments:
		encoded = string(v)
	default:
		s, err := encode(v)
		if err != nil {
			return ToolCall{}, fmt.Errorf("tool call %q: encode arguments: %w", name, err)
		}
		encoded = s
	}
	return ToolCall{
		ID:        NewToolCallID(),
		Name:      name,
		Arguments: Arguments(encoded),
	}, nil
}

// NewToolCallID returns a 9-character alphanumeric id derived from a random UUID.
func NewToolCallID() string {
	id := uuid.New()
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var b strings.Builder
	b.Grow(toolCallIDLen)
	for i := range toolCallIDLen {
		b.WriteByte(alphabet[int(id[i])%len(alphabet)])
	}
	return b.String()
}
