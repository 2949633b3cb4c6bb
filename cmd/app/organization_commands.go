package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/whistleblower/cmd/app/commands"
	"github.com/allisson/whistleblower/internal/app"
	"github.com/allisson/whistleblower/internal/config"
	orgDomain "github.com/allisson/whistleblower/internal/organization/domain"
	orgUseCase "github.com/allisson/whistleblower/internal/organization/usecase"
)

func getOrganizationCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-organization",
			Usage: "Onboard an organization with its first compliance admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Organization name"},
				&cli.StringFlag{Name: "slug", Aliases: []string{"s"}, Required: true, Usage: "Public channel slug"},
				&cli.StringFlag{Name: "contact-email", Required: true, Usage: "Notification address"},
				&cli.StringFlag{
					Name:  "plan",
					Value: string(orgDomain.PlanStarter),
					Usage: "Subscription plan (starter, professional, enterprise)",
				},
				&cli.StringFlag{Name: "admin-email", Required: true, Usage: "Compliance admin e-mail"},
				&cli.StringFlag{Name: "admin-name", Usage: "Compliance admin display name"},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.OrganizationUseCase()
				if err != nil {
					return err
				}

				io := commands.DefaultIO()
				_, _ = fmt.Fprint(os.Stderr, "Compliance admin password: ")
				password, err := commands.ReadPassword(io.Reader)
				if err != nil {
					return err
				}

				input := orgUseCase.CreateOrganizationInput{
					Name:          cmd.String("name"),
					Slug:          cmd.String("slug"),
					ContactEmail:  cmd.String("contact-email"),
					Plan:          orgDomain.SubscriptionPlan(cmd.String("plan")),
					AdminEmail:    cmd.String("admin-email"),
					AdminPassword: password,
				}
				if name := cmd.String("admin-name"); name != "" {
					input.AdminName = &name
				}

				return commands.RunCreateOrganization(
					ctx,
					useCase,
					container.Logger(),
					io.Writer,
					input,
					cmd.String("format"),
				)
			},
		},
	}
}
