package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/samcharles93/chatfmt/internal/chatformat"
	"github.com/samcharles93/chatfmt/internal/dialogue"
	"github.com/samcharles93/chatfmt/internal/logger"
	"github.com/urfave/cli/v3"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func formatCmd(st *appState) *cli.Command {
	var (
		format       string
		templatePath string
		inputPath    string
		output       string
	)

	return &cli.Command{
		Name:      "format",
		Usage:     "Format a dialogue read from a YAML or JSON file",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "chat format (" + strings.Join(chatformat.Names(), ", ") + ")",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "chat template file or tokenizer_config.json used to detect the format",
				Destination: &templatePath,
			},
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "dialogue file (default: stdin)",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output mode (text, json)",
				Value:       outputText,
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyFormatConfig(cmd, st.cfg, &format, &output)

			doc, err := readDialogue(cmd.Root().Reader, inputPath)
			if err != nil {
				return err
			}

			opts := chatformat.RenderOptions{
				Format:   format,
				Template: doc.Template,
				Messages: doc.Messages,
			}
			if opts.Format == "" {
				opts.Format = doc.Format
			}
			if templatePath != "" {
				tpl, err := loadTemplate(templatePath)
				if err != nil {
					return err
				}
				opts.Template = tpl
			}

			f, err := opts.Resolve()
			if err != nil {
				return err
			}
			out, err := f.Format(doc.Messages)
			if err != nil {
				return err
			}
			log.Debug("formatted dialogue", "format", f.Name(), "messages", len(doc.Messages), "turns", len(out))

			return writeFormatted(cmd.Root().Writer, output, out)
		},
	}
}

func readDialogue(stdin io.Reader, path string) (dialogue.Document, error) {
	if path != "" && path != "-" {
		return dialogue.Load(path)
	}
	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		return dialogue.Document{}, fmt.Errorf("no dialogue given: pass --input or pipe a dialogue on stdin")
	}
	return dialogue.Decode(stdin)
}

func writeFormatted(w io.Writer, mode string, msgs []chatformat.Message) error {
	switch strings.ToLower(mode) {
	case outputText, "":
		_, err := io.WriteString(w, chatformat.Join(msgs))
		return err
	case outputJSON:
		type turn struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}
		turns := make([]turn, 0, len(msgs))
		for _, m := range msgs {
			turns = append(turns, turn{Role: m.Role.String(), Content: m.Content})
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(turns); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output mode %q (want text or json)", mode)
	}
}

// loadTemplate reads a raw chat template, or the chat_template field of a
// Hugging Face tokenizer_config.json.
func loadTemplate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return string(raw), nil
	}

	var cfg struct {
		ChatTemplate json.RawMessage `json:"chat_template"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.ChatTemplate) == 0 {
		return "", fmt.Errorf("%s has no chat_template", path)
	}

	var single string
	if err := json.Unmarshal(cfg.ChatTemplate, &single); err == nil {
		return single, nil
	}
	var named []struct {
		Name     string `json:"name"`
		Template string `json:"template"`
	}
	if err := json.Unmarshal(cfg.ChatTemplate, &named); err != nil {
		return "", fmt.Errorf("parse chat_template in %s: %w", path, err)
	}
	for _, t := range named {
		if t.Name == "default" {
			return t.Template, nil
		}
	}
	if len(named) > 0 {
		return named[0].Template, nil
	}
	return "", fmt.Errorf("%s has an empty chat_template list", path)
}
