package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func versionCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(cCtx *cli.Context) error {
			_, err := fmt.Fprintf(ui.Out, "fgcrel version %s (commit: %s)\n", BuildTag, BuildCommit)
			return err
		},
	}
}
