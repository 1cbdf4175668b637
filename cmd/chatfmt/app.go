package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/samcharles93/chatfmt/internal/logger"
	"github.com/urfave/cli/v3"
)

// appState carries values resolved in the root Before hook to subcommands.
type appState struct {
	cfg Config
}

func newApp() *cli.Command {
	st := &appState{}
	var lf loggingOptions

	return &cli.Command{
		Name:      "chatfmt",
		Usage:     "Format dialogues into chat-template prompts",
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags:     lf.flags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(lf.configPath())
			if err != nil {
				return ctx, err
			}
			st.cfg = cfg
			applyLoggingConfig(cmd, cfg, &lf)

			level, err := logger.ParseLevel(lf.level)
			if err != nil {
				return ctx, err
			}
			if lf.debug {
				level = slog.LevelDebug
			}
			log, err := logger.New(logger.Options{
				Level:  level,
				Format: lf.format,
				Writer: cmd.Root().ErrWriter,
			})
			if err != nil {
				return ctx, err
			}
			log.Debug("configuration loaded", "path", lf.configPath())
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			formatCmd(st),
			formatsCmd(),
			serveCmd(st),
			versionCmd(),
		},
	}
}
