package main

import "github.com/urfave/cli/v3"

type loggingOptions struct {
	config string
	level  string
	format string
	debug  bool
}

func (o *loggingOptions) configPath() string {
	if o.config != "" {
		return o.config
	}
	return defaultConfigPath()
}

func (o *loggingOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: $XDG_CONFIG_HOME/chatfmt/config.yaml)",
			Destination: &o.config,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &o.format,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}
