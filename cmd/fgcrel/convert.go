package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/fgcrel/convert"
	"github.com/revelaction/fgcrel/fgcr"
	"github.com/revelaction/fgcrel/logger"
	"github.com/revelaction/fgcrel/storage/filesystem"
)

type ConvertOptions struct {
	From     string
	To       string
	Splits   []string
	Progress bool
}

func convertCommand(ui UI, fs afero.Fs) *cli.Command {
	flags := []cli.Flag{
		altsrc.NewPathFlag(&cli.PathFlag{
			Name:    "from",
			Aliases: []string{"f"},
			Value:   fgcr.DefaultDir,
			Usage:   "directory with the FGCR event_dataset_<split>.json files",
			EnvVars: []string{"FGCREL_FROM"},
		}),
		altsrc.NewPathFlag(&cli.PathFlag{
			Name:    "to",
			Aliases: []string{"t"},
			Value:   filesystem.DefaultDir,
			Usage:   "output directory for <split>.jsonlines files, or a .db file for SQLite",
			EnvVars: []string{"FGCREL_TO"},
		}),
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:    "split",
			Aliases: []string{"s"},
			Usage:   "split to convert, can be repeated (default: dev, test, train)",
		}),
	}

	return &cli.Command{
		Name:   "convert",
		Usage:  "convert the raw splits to JSON lines",
		Flags:  flags,
		Before: withConfig(flags),
		Action: func(cCtx *cli.Context) error {
			opts := ConvertOptions{
				From:     cCtx.Path("from"),
				To:       cCtx.Path("to"),
				Splits:   cCtx.StringSlice("split"),
				Progress: !cCtx.Bool("no-progress") && isTerminal(ui.Err),
			}
			if len(opts.Splits) == 0 {
				opts.Splits = fgcr.Splits
			}

			return convertRun(cCtx.Context, opts, newLogger(cCtx, ui), ui, fs)
		},
	}
}

func convertRun(ctx context.Context, opts ConvertOptions, log logger.Logger, ui UI, fs afero.Fs) error {
	if err := validateSplits(opts.Splits); err != nil {
		return err
	}

	repo, closeRepo, err := NewSplitRepository(ctx, fs, opts.To, false)
	if err != nil {
		return err
	}
	defer closeRepo()

	p := convert.NewPipeline(fs, opts.From, repo, log)
	if opts.Progress {
		p.Progress = newProgress(ui.Err)
	}

	results, err := p.Run(ctx, opts.Splits)
	if err != nil {
		return err
	}

	for _, res := range results {
		fmt.Fprintf(ui.Out, "✍  %s: %s\n", res.Split, res.Stats)
	}

	fmt.Fprintf(ui.Out, "Successfully converted %d splits from %s to %s\n", len(results), opts.From, opts.To)
	return nil
}

// newProgress draws the bars on w. Skip warnings and results go to the UI
// output, so the redraws must not share it.
func newProgress(w io.Writer) *uiprogress.Progress {
	p := uiprogress.New()
	p.Out = w
	return p
}
