package chatformat

import "fmt"

const (
	instOpen  = "[INST]"
	instClose = "[/INST]"
	sysOpen   = "<<SYS>>\n"
	sysClose  = "\n<</SYS>>\n\n"
)

// Llama2 wraps user turns in [INST] blocks and folds a leading system prompt
// into the first user turn.
type Llama2 struct{}

func (Llama2) Name() string { return FormatLlama2 }

func (Llama2) Format(msgs []Message) ([]Message, error) {
	out := make([]Message, 0, len(msgs))
	pendingSystem := ""
	for i, m := range msgs {
		switch m.Role {
		case RoleSystem:
			if i != 0 {
				return nil, newUnsupported(FormatLlama2, fmt.Sprintf("system prompt must be the first message, found at index %d", i))
			}
			if len(msgs) < 2 || msgs[1].Role != RoleUser {
				return nil, newUnsupported(FormatLlama2, "system prompt must be followed by a user message")
			}
			pendingSystem = sysOpen + m.Content + sysClose
		case RoleUser:
			content := instBlock(pendingSystem + m.Content)
			pendingSystem = ""
			out = append(out, Message{Role: RoleUser, Content: content})
		case RoleAssistant:
			out = append(out, Message{Role: RoleAssistant, Content: m.Content})
		default:
			return nil, unsupportedRole(FormatLlama2, m.Role)
		}
	}
	return out, nil
}

func instBlock(text string) string {
	return instOpen + " " + text + " " + instClose + " "
}

func unsupportedRole(format string, role Role) error {
	return newUnsupported(format, fmt.Sprintf("role %q is not supported", role))
}
