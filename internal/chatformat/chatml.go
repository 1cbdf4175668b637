package chatformat

const (
	imStart = "<|im_start|>"
	imEnd   = "<|im_end|>"
)

// ChatML wraps every turn in <|im_start|>role ... <|im_end|>. The last turn
// has no trailing newline so a generation prompt can follow it directly.
type ChatML struct{}

func (ChatML) Name() string { return FormatChatML }

func (ChatML) Format(msgs []Message) ([]Message, error) {
	out := make([]Message, 0, len(msgs))
	for i, m := range msgs {
		if !m.Role.Valid() {
			return nil, unsupportedRole(FormatChatML, m.Role)
		}
		content := envelope(m.Role, m.Content)
		if i < len(msgs)-1 {
			content += "\n"
		}
		out = append(out, Message{Role: m.Role, Content: content})
	}
	return out, nil
}

func envelope(role Role, body string) string {
	return imStart + string(role) + "\n" + body + imEnd
}
