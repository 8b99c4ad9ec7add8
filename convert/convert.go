// Package convert runs the FGCR to span + relation conversion over dataset
// splits.
package convert

import (
	"context"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/fgcrel/fgcr"
	"github.com/revelaction/fgcrel/logger"
	"github.com/revelaction/fgcrel/relation"
	"github.com/revelaction/fgcrel/stat"
	"github.com/revelaction/fgcrel/storage"
)

// Pipeline reads raw splits from From, converts every instance and writes
// the converted split to Sink.
type Pipeline struct {
	Fs        afero.Fs
	From      string
	Sink      storage.SplitWriter
	Converter *relation.Converter
	Log       logger.Logger

	// Progress shows one bar per split. Nil disables the bars.
	Progress *uiprogress.Progress
}

// Result holds the statistics of a converted split.
type Result struct {
	Split string
	Stats stat.Stats
}

func NewPipeline(fs afero.Fs, from string, sink storage.SplitWriter, log logger.Logger) *Pipeline {
	c := relation.NewConverter()
	c.Log = log

	return &Pipeline{
		Fs:        fs,
		From:      from,
		Sink:      sink,
		Converter: c,
		Log:       log,
	}
}

// Run converts the splits concurrently. The first failing split cancels the
// others; results are returned in the order of splits.
func (p *Pipeline) Run(ctx context.Context, splits []string) ([]Result, error) {
	if p.Progress != nil {
		p.Progress.Start()
		defer p.Progress.Stop()
	}

	results := make([]Result, len(splits))
	g, ctx := errgroup.WithContext(ctx)
	for i, split := range splits {
		g.Go(func() error {
			stats, err := p.Split(ctx, split)
			if err != nil {
				return fmt.Errorf("split %s: %w", split, err)
			}

			results[i] = Result{Split: split, Stats: stats}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Split converts a single split. Nothing is written if any instance fails.
func (p *Pipeline) Split(ctx context.Context, split string) (stat.Stats, error) {
	raw, err := fgcr.ReadSplit(p.Fs, p.From, split)
	if err != nil {
		return stat.Stats{}, err
	}

	bar := p.bar(split, len(raw))

	hdl := stat.NewHandler()
	// skips are known for a fresh conversion, report them even when zero
	hdl.AddSkips(nil)
	lib := make(relation.Library, 0, len(raw))
	for _, r := range raw {
		if err := ctx.Err(); err != nil {
			return stat.Stats{}, err
		}

		inst, skips, err := p.Converter.Convert(r)
		if err != nil {
			return stat.Stats{}, err
		}

		hdl.Aggregate(inst)
		hdl.AddSkips(skips)
		lib = append(lib, inst)

		if bar != nil {
			bar.Incr()
		}
	}

	if err := p.Sink.Write(ctx, split, lib); err != nil {
		return stat.Stats{}, fmt.Errorf("failed to write: %w", err)
	}

	stats := hdl.Get()
	if p.Log != nil {
		p.Log.Debug("split converted", "split", split, "instances", stats.NumInstances, "skipped", stats.NumSkipped())
	}

	return stats, nil
}

func (p *Pipeline) bar(split string, total int) *uiprogress.Bar {
	if p.Progress == nil || total == 0 {
		return nil
	}

	bar := p.Progress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("%-5s", split)
	})

	return bar
}
