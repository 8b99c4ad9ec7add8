package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/fgcrel/fgcr"
	"github.com/revelaction/fgcrel/inspect"
	"github.com/revelaction/fgcrel/render"
	"github.com/revelaction/fgcrel/storage/filesystem"
)

type InspectOptions struct {
	From    string
	Raw     string
	NoColor bool
	Split   string
}

func inspectCommand(ui UI, fs afero.Fs) *cli.Command {
	flags := []cli.Flag{
		altsrc.NewPathFlag(&cli.PathFlag{
			Name:    "from",
			Aliases: []string{"f"},
			Value:   filesystem.DefaultDir,
			Usage:   "converted splits: a directory of .jsonlines files or a .db file",
			EnvVars: []string{"FGCREL_TO"},
		}),
		altsrc.NewPathFlag(&cli.PathFlag{
			Name:    "raw",
			Aliases: []string{"r"},
			Usage:   "directory with the FGCR files, to show spans on the raw text",
			EnvVars: []string{"FGCREL_FROM"},
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:  "no-color",
			Usage: "do not highlight spans",
		}),
	}

	return &cli.Command{
		Name:      "inspect",
		Usage:     "browse the instances of a converted split",
		ArgsUsage: "<split>",
		Flags:     flags,
		Before:    withConfig(flags),
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return errors.New("inspect needs exactly one split argument")
			}

			opts := InspectOptions{
				From:    cCtx.Path("from"),
				Raw:     cCtx.Path("raw"),
				NoColor: cCtx.Bool("no-color"),
				Split:   cCtx.Args().First(),
			}

			hdl, err := newInspectHandler(cCtx.Context, opts, ui, fs)
			if err != nil {
				return err
			}
			return hdl.Run()
		},
	}
}

func newInspectHandler(ctx context.Context, opts InspectOptions, ui UI, fs afero.Fs) (*inspect.Handler, error) {
	if err := validateSplits([]string{opts.Split}); err != nil {
		return nil, err
	}

	repo, closeRepo, err := NewSplitRepository(ctx, fs, opts.From, true)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	lib, err := repo.Read(ctx, opts.Split)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", opts.Split, err)
	}

	var texts map[string]string
	if opts.Raw != "" {
		raw, err := fgcr.ReadSplit(fs, opts.Raw, opts.Split)
		if err != nil {
			return nil, err
		}
		texts = fgcr.Texts(raw)
	}

	r := render.NewRenderer()
	r.W = ui.Out
	r.HasColor = !opts.NoColor

	hdl := inspect.NewHandler(opts.Split, lib, texts, r)
	hdl.Out = ui.Out
	return hdl, nil
}
