package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/urfave/cli/v3"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the service version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", config.ServiceName, config.ServiceVersion)
			return err
		},
	}
}
