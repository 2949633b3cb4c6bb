package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/whistleblower/cmd/app/commands"
	"github.com/allisson/whistleblower/internal/app"
	"github.com/allisson/whistleblower/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server, the metrics server and the outbox worker",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "worker",
			Usage: "Start the outbox worker only",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunWorker(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "send-deadline-reminders",
			Usage: "Enqueue deadline reminders for organizations with overdue or upcoming reports",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				reportUseCase, err := container.ReportUseCase()
				if err != nil {
					return err
				}

				return commands.RunSendDeadlineReminders(
					ctx,
					reportUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					time.Now().UTC(),
				)
			},
		},
	}
}
