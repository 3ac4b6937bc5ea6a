package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	dupcmp "github.com/mattkeenan/dupcmp/pkg"
)

const version = "0.3.0"

const (
	exitOK          = 0
	exitUsage       = 1
	exitInterrupted = 130
)

func main() {
	app := newApp(os.Stdout, os.Stderr, setupSignalHandler())
	if err := app.Run(os.Args); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
	os.Exit(exitOK)
}

// exitCode prints err and picks the process exit status for it
func exitCode(err error, stderr io.Writer) int {
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}
	fmt.Fprintf(stderr, "dupcmp: %v\n", err)
	return exitUsage
}

// application holds the streams and shutdown channel a run uses
type application struct {
	stdout   io.Writer
	stderr   io.Writer
	shutdown <-chan struct{}
}

func newApp(stdout, stderr io.Writer, shutdown <-chan struct{}) *cli.App {
	a := &application{stdout: stdout, stderr: stderr, shutdown: shutdown}

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}

	return &cli.App{
		Name:      "dupcmp",
		Usage:     "find groups of byte-identical files",
		ArgsUsage: "[PATH...]",
		Version:   version,
		Description: "Searches every PATH (default: the current directory) recursively and prints\n" +
			"each group of identical files as \"<count> <index> <path>\" lines, smallest\n" +
			"groups first. Files are compared byte by byte; symlinks are never followed.\n" +
			"Paths that cannot be read are reported on stderr after the groups.",
		Writer:                    stdout,
		ErrWriter:                 stderr,
		DisableSliceFlagSeparator: true,
		HideHelpCommand:           true,
		// exit codes are decided in main so tests can drive the app
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "read settings from an ini `FILE`",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: human, fdupes or json",
			},
			&cli.IntFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose `LEVEL` on stderr (0-3)",
			},
			&cli.StringFlag{
				Name:  "debug",
				Usage: "comma-separated debug `FLAGS` (walk, collect, compare, group)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "skip paths matching `REGEX`, relative to their root (repeatable)",
			},
			&cli.StringFlag{
				Name:  "ignore-file",
				Usage: "read ignore patterns from `FILE`, one per line",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "compare up to `N` files concurrently",
			},
			&cli.StringFlag{
				Name:  "buffer",
				Usage: "per-file read buffer `SIZE`, e.g. 64K or 1M",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "override a setting as `key:value` (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print a summary line on stderr",
			},
		},
		Action: a.run,
	}
}

func (a *application) run(cCtx *cli.Context) error {
	cfg, err := dupcmp.LoadConfig(cCtx.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
	}

	var overrides []string
	overrides = append(overrides, cCtx.StringSlice("set")...)
	overrides = append(overrides, flagOverrides(cCtx)...)
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
	}

	finder, err := dupcmp.NewFinder(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
	}
	dupcmp.ConfigureLogging(cfg)

	if path := cCtx.String("ignore-file"); path != "" {
		if err := finder.Ignore().LoadIgnoreFile(path); err != nil {
			return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
		}
	}

	reporter, err := dupcmp.NewReporter(cfg.GetOutputConfig().Format, a.stdout, a.stderr)
	if err != nil {
		return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
	}

	result, findErr := finder.FindDuplicates(cCtx.Args().Slice(), a.shutdown)

	if err := reporter.WriteGroups(result.Groups); err != nil {
		return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
	}
	if err := reporter.WriteErrors(result.Errors); err != nil {
		return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
	}
	if cCtx.Bool("stats") || dupcmp.GetVerboseLevel() > 0 {
		if err := reporter.WriteStats(result.Groups, result.Stats); err != nil {
			return cli.Exit(fmt.Sprintf("dupcmp: %v", err), exitUsage)
		}
	}

	if errors.Is(findErr, dupcmp.ErrInterrupted) {
		return cli.Exit("dupcmp: interrupted, results are partial", exitInterrupted)
	}
	return nil
}

// flagOverrides turns explicitly set flags into config overrides so that they
// win over both the config file and --set
func flagOverrides(cCtx *cli.Context) []string {
	var overrides []string
	if cCtx.IsSet("format") {
		overrides = append(overrides, "format:"+cCtx.String("format"))
	}
	if cCtx.IsSet("verbose") {
		overrides = append(overrides, "level:"+strconv.Itoa(cCtx.Int("verbose")))
	}
	if cCtx.IsSet("debug") {
		overrides = append(overrides, "debug:"+cCtx.String("debug"))
	}
	for _, pattern := range cCtx.StringSlice("ignore") {
		overrides = append(overrides, "ignore:"+pattern)
	}
	if cCtx.IsSet("workers") {
		overrides = append(overrides, "workers:"+strconv.Itoa(cCtx.Int("workers")))
	}
	if cCtx.IsSet("buffer") {
		overrides = append(overrides, "buffer:"+cCtx.String("buffer"))
	}
	return overrides
}
