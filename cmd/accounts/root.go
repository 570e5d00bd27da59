package main

import (
	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a YAML config file; ACCOUNTS_* environment variables override it",
		Sources: cli.EnvVars("ACCOUNTS_CONFIG_FILE"),
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "accounts",
		Usage:   config.ServiceName,
		Version: config.ServiceVersion,
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			configCommand(),
			versionCommand(),
		},
	}
}
