package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/fgcrel/stat"
	"github.com/revelaction/fgcrel/storage/filesystem"
)

type StatOptions struct {
	From   string
	Splits []string
}

func statCommand(ui UI, fs afero.Fs) *cli.Command {
	flags := []cli.Flag{
		altsrc.NewPathFlag(&cli.PathFlag{
			Name:    "from",
			Aliases: []string{"f"},
			Value:   filesystem.DefaultDir,
			Usage:   "converted splits: a directory of .jsonlines files or a .db file",
			EnvVars: []string{"FGCREL_TO"},
		}),
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:    "split",
			Aliases: []string{"s"},
			Usage:   "split to inspect, can be repeated (default: all stored splits)",
		}),
	}

	return &cli.Command{
		Name:   "stat",
		Usage:  "print statistics of converted splits",
		Flags:  flags,
		Before: withConfig(flags),
		Action: func(cCtx *cli.Context) error {
			opts := StatOptions{
				From:   cCtx.Path("from"),
				Splits: cCtx.StringSlice("split"),
			}
			return statRun(cCtx.Context, opts, ui, fs)
		},
	}
}

func statRun(ctx context.Context, opts StatOptions, ui UI, fs afero.Fs) error {
	if err := validateSplits(opts.Splits); err != nil {
		return err
	}

	repo, closeRepo, err := NewSplitRepository(ctx, fs, opts.From, true)
	if err != nil {
		return err
	}
	defer closeRepo()

	splits := opts.Splits
	if len(splits) == 0 {
		splits, err = repo.Splits()
		if err != nil {
			return err
		}
	}

	for _, split := range splits {
		lib, err := repo.Read(ctx, split)
		if err != nil {
			return fmt.Errorf("split %s: %w", split, err)
		}

		hdl := stat.NewHandler()
		for _, inst := range lib {
			hdl.Aggregate(inst)
		}

		stats := hdl.Get()
		fmt.Fprintf(ui.Out, "✍  %s: %s\n", split, stats)
		fmt.Fprintf(ui.Out, "   spans per instance %s\n", distribution(stats.SpansPerInstanceDis))
	}

	return nil
}

func distribution(dis map[int]int) string {
	top := -1
	for k := range dis {
		if k > top {
			top = k
		}
	}

	s := ""
	for k := 0; k <= top; k++ {
		if dis[k] == 0 {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("%d: %d", k, dis[k])
	}
	return "[" + s + "]"
}
