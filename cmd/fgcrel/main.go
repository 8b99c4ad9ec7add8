package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/fgcrel/logger"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui, afero.NewOsFs()).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "fgcrel: %v\n", err)
}

func newApp(ui UI, fs afero.Fs) *cli.App {
	flags := []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML file with flag values, keyed by long flag name. Relative paths in it are resolved against the file's directory",
			EnvVars: []string{"FGCREL_CONFIG"},
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "log-level",
			Value:   string(logger.InfoLevel),
			Usage:   "one of debug, info, warn, error",
			EnvVars: []string{"FGCREL_LOG_LEVEL"},
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "log-json",
			Usage:   "log in JSON format",
			EnvVars: []string{"FGCREL_LOG_JSON"},
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "no-progress",
			Usage:   "do not show progress bars",
			EnvVars: []string{"FGCREL_NO_PROGRESS"},
		}),
	}

	return &cli.App{
		Name:      "fgcrel",
		Usage:     "convert the FGCR causal event dataset to the span + relation schema",
		Version:   fmt.Sprintf("%s (commit: %s)", BuildTag, BuildCommit),
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags:     flags,
		Before: func(cCtx *cli.Context) error {
			if err := withConfig(flags)(cCtx); err != nil {
				return err
			}
			return validateLogLevel(cCtx.String("log-level"))
		},
		Commands: []*cli.Command{
			convertCommand(ui, fs),
			statCommand(ui, fs),
			inspectCommand(ui, fs),
			versionCommand(ui),
		},
	}
}

// withConfig loads the flag values of the --config YAML file. Flags given on
// the command line or by environment take precedence.
func withConfig(flags []cli.Flag) cli.BeforeFunc {
	return altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc("config"))
}

func validateLogLevel(level string) error {
	for _, l := range logger.Levels() {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("invalid log level %q, allowed values are %v", level, logger.Levels())
}

// newLogger builds the logger from the global flags. Skip warnings are
// written to the UI output.
func newLogger(cCtx *cli.Context, ui UI) logger.Logger {
	return logger.New(&logger.Config{
		Level:      logger.LogLevel(cCtx.String("log-level")),
		JSON:       cCtx.Bool("log-json"),
		Output:     ui.Out,
		TimeFormat: "15:04:05",
	})
}
