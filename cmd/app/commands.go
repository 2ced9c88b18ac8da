package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getPseudonymCommands()...)
	return cmds
}

func fieldFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "field",
		Aliases:  []string{"f"},
		Required: true,
		Usage:    "Field name (letters, digits and underscores)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "text",
		Usage: "Output format: 'text' or 'json'",
	}
}
