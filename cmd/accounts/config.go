package main

import (
	"context"

	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/deppfellow/accounts-api/internal/lib/utils"
	"github.com/urfave/cli/v3"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration with secrets redacted",
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			return utils.WriteJSON(cmd.Root().Writer, redactConfig(cfg))
		},
	}
}

// redactConfig returns a copy of cfg with credentials masked.
func redactConfig(cfg *config.Config) config.Config {
	out := *cfg
	out.Database.Password = utils.Redact(cfg.Database.Password)
	if cfg.Observability != nil {
		obs := *cfg.Observability
		obs.NewRelic.LicenseKey = utils.Redact(obs.NewRelic.LicenseKey)
		out.Observability = &obs
	}
	return out
}
