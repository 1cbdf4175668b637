package chatformat

// Mistral wraps user turns in [INST] blocks. It has no system prompt slot.
type Mistral struct{}

func (Mistral) Name() string { return FormatMistral }

func (Mistral) Format(msgs []Message) ([]Message, error) {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			return nil, newUnsupported(FormatMistral, "system prompts are not supported")
		case RoleUser:
			out = append(out, Message{Role: RoleUser, Content: instBlock(m.Content)})
		case RoleAssistant:
			out = append(out, Message{Role: RoleAssistant, Content: m.Content})
		default:
			return nil, unsupportedRole(FormatMistral, m.Role)
		}
	}
	return out, nil
}
