package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/whistleblower/cmd/app/commands"
	"github.com/allisson/whistleblower/internal/app"
	"github.com/allisson/whistleblower/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master encryption key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to encrypt the key (e.g., base64key://, hashivault://...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())

				return commands.RunCreateMasterKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "hash-admin-password",
			Usage: "Read the admin password from stdin and print ADMIN_PASSWORD_HASH",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunHashAdminPassword(container.AdminCredentialVerifier(), commands.DefaultIO())
			},
		},
		{
			Name:  "verify-organization-key",
			Usage: "Check a recovery key against an organization's stored key hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "organization-id",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Organization ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Recovery key (64 hex characters)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keys, err := container.OrganizationKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyOrganizationKey(
					ctx,
					keys,
					commands.DefaultIO().Writer,
					cmd.String("organization-id"),
					cmd.String("key"),
				)
			},
		},
	}
}
