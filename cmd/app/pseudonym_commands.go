package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pseudonymizer/cmd/app/commands"
	"github.com/allisson/pseudonymizer/internal/app"
)

func throwawayFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "throwaway",
		Aliases: []string{"t"},
		Value:   false,
		Usage:   "Use a random key discarded after the run; output cannot be reproduced",
	}
}

func getPseudonymCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "anonymize-field",
			Usage: "Print the pseudonym of every stored value of a field, one per line",
			Flags: []cli.Flag{fieldFlag(), throwawayFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := commands.LoadConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.PseudonymUseCase()
				if err != nil {
					return err
				}

				return commands.RunAnonymizeField(
					ctx,
					useCase,
					commands.DefaultIO(),
					cmd.String("field"),
					cmd.Bool("throwaway"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "anonymize",
			Usage: "Pseudonymize values read from stdin (one per line) under a field's key",
			Flags: []cli.Flag{fieldFlag(), throwawayFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := commands.LoadConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.PseudonymUseCase()
				if err != nil {
					return err
				}

				return commands.RunAnonymize(
					ctx,
					useCase,
					commands.DefaultIO(),
					cmd.String("field"),
					cmd.Bool("throwaway"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "demo",
			Usage: "Run the pseudonymization demonstrations against built-in sample data",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunDemo(ctx, commands.DefaultIO())
			},
		},
	}
}
