package main

import (
	"context"

	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/deppfellow/accounts-api/internal/database"
	"github.com/deppfellow/accounts-api/internal/logger"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)
			return database.Migrate(ctx, &log, cfg)
		},
	}
}
