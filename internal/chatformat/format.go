// Package chatformat converts dialogues into the literal prompt text of
// common chat-template conventions.
//
// Formatters are stateless; a Formatter value is safe for concurrent use.
package chatformat

import (
	"fmt"
	"slices"
	"strings"
)

// Formatter rewrites the content of each turn with a template's markup.
type Formatter interface {
	Name() string
	Format(msgs []Message) ([]Message, error)
}

const (
	FormatLlama2     = "llama2"
	FormatMistral    = "mistral"
	FormatChatML     = "chatml"
	FormatToolChatML = "tool_chatml"
)

var registry = map[string]Formatter{
	FormatLlama2:     Llama2{},
	FormatMistral:    Mistral{},
	FormatChatML:     ChatML{},
	FormatToolChatML: ToolChatML{},
}

var aliases = map[string]string{
	"llama2_chat":  FormatLlama2,
	"mistral_chat": FormatMistral,
	"chat_ml":      FormatChatML,
	"tool_chat_ml": FormatToolChatML,
}

// Lookup resolves a format by name or alias, ignoring case.
func Lookup(name string) (Formatter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Names returns the canonical format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DetectFormat picks a format from the markers found in a raw chat template.
func DetectFormat(template string) (string, bool) {
	switch {
	case strings.Contains(template, "<tools>") || strings.Contains(template, "<tool_call>"):
		return FormatToolChatML, true
	case strings.Contains(template, "<|im_start|>"):
		return FormatChatML, true
	case strings.Contains(template, "<<SYS>>"):
		return FormatLlama2, true
	case strings.Contains(template, "[INST]"):
		return FormatMistral, true
	default:
		return "", false
	}
}

type RenderOptions struct {
	// Format names the formatter. When empty the format is detected from Template.
	Format   string
	Template string
	Messages []Message
}

// Resolve returns the formatter selected by the options.
func (opts RenderOptions) Resolve() (Formatter, error) {
	if strings.TrimSpace(opts.Format) != "" {
		return Lookup(opts.Format)
	}
	name, ok := DetectFormat(opts.Template)
	if !ok {
		return nil, fmt.Errorf("%w: no format given and none detected from template", ErrUnknownFormat)
	}
	return Lookup(name)
}

// Render formats the messages and joins the turns into a single prompt.
func Render(opts RenderOptions) (string, error) {
	f, err := opts.Resolve()
	if err != nil {
		return "", err
	}
	out, err := f.Format(opts.Messages)
	if err != nil {
		return "", err
	}
	return Join(out), nil
}

// Join concatenates the content of already formatted turns.
func Join(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(m.Content)
	}
	return b.String()
}
