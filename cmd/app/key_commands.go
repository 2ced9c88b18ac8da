package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pseudonymizer/cmd/app/commands"
	"github.com/allisson/pseudonymizer/internal/app"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-field-key",
			Usage: "Generate a field key and print it as a FIELD_KEYS entry for the env key store",
			Flags: []cli.Flag{
				fieldFlag(),
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to wrap the key (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := commands.LoadConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGenerateFieldKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("field"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "create-field-key",
			Usage: "Create and store a KMS-wrapped key for a field in the database key store",
			Flags: []cli.Flag{fieldFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := commands.LoadConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				fieldKeyUseCase, err := container.FieldKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateFieldKey(
					ctx,
					fieldKeyUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("field"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-field-keys",
			Usage: "List the fields holding a stored key",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := commands.LoadConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				fieldKeyUseCase, err := container.FieldKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunListFieldKeys(ctx, fieldKeyUseCase, commands.DefaultIO(), cmd.String("format"))
			},
		},
	}
}
