package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/chatfmt/internal/chatformat"
	"github.com/urfave/cli/v3"
)

func formatsCmd() *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "List the supported chat formats",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, name := range chatformat.Names() {
				if _, err := fmt.Fprintln(cmd.Root().Writer, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
