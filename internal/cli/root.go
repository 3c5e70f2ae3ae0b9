package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/track-library/internal/config"
	"github.com/handiism/track-library/internal/library"
	"github.com/handiism/track-library/internal/logger"
	"github.com/handiism/track-library/internal/menu"
	"github.com/handiism/track-library/internal/tui"
)

type app struct {
	configPath string
	envFiles   []string
	useTUI     bool
	verbose    bool
	logFile    string
	capacity   int

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	settings *config.Settings
	log      *zap.Logger
}

// NewRootCommand builds the tracklib command tree reading from in and
// writing to out and errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "tracklib [flags] <file>",
		Short: "tracklib keeps a searchable library of music tracks.",
		Long: `tracklib loads tab-separated track records (title, artist, duration in
seconds) from a file and opens an interactive menu to add, search, remove,
save and export them.`,
		Args:              cobra.ExactArgs(1),
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runInteractive,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a JSON or YAML settings file")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to read (default .env)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show verbose output and debug logs")
	flags.StringVar(&a.logFile, "log-file", "", "write JSON logs to this file (overrides config)")
	flags.IntVar(&a.capacity, "capacity", 0, "number of hash buckets (0: one per loaded track)")
	root.Flags().BoolVar(&a.useTUI, "tui", false, "use the full-screen terminal interface")

	root.AddCommand(
		newExportCommand(a),
		newScanCommand(a),
		newStatsCommand(a),
	)

	return root
}

// setup loads settings and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	settings := config.DefaultSettings()
	if a.configPath != "" {
		var err error
		settings, err = config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if err := settings.ApplyEnv(a.envFiles...); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	if a.logFile != "" {
		settings.LogFile = a.logFile
	}

	log, err := logger.New(settings.LoggerConfig(a.verbose))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.settings = settings
	a.log = log
	return nil
}

func (a *app) libraryOptions(onProgress func(library.ProgressEvent)) library.Options {
	return library.Options{
		Settings:   a.settings,
		Logger:     a.log,
		OnProgress: onProgress,
		Capacity:   a.capacity,
	}
}

// reporter prints progress events for the non-interactive subcommands.
func (a *app) reporter() *menu.Menu {
	return menu.New(a.in, a.out, a.verbose)
}

func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if a.useTUI {
		events := tui.NewEvents()
		lib, err := library.Open(ctx, args[0], a.libraryOptions(events.Add))
		if err != nil {
			return err
		}
		return tui.Run(ctx, lib, events, a.verbose)
	}

	m := menu.New(a.in, a.out, a.verbose)
	lib, err := library.Open(ctx, args[0], a.libraryOptions(m.Report))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return m.Run(ctx, lib)
}

// Execute runs the root command against the process streams.
func Execute(ctx context.Context) error {
	root := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
