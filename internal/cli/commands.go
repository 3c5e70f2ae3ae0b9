package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/track-library/internal/library"
	"github.com/handiism/track-library/internal/model"
)

func newExportCommand(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a track file as a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf := a.settings.Playlist()
			if format != "" {
				var ok bool
				if pf, ok = model.ParsePlaylistFormat(format); !ok {
					return fmt.Errorf("unknown playlist format %q", format)
				}
			}

			lib, err := library.Open(cmd.Context(), args[0], a.libraryOptions(a.reporter().Report))
			if err != nil {
				return err
			}
			_, err = lib.ExportPlaylist(cmd.Context(), output, pf)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "playlist format: m3u, pls, wpl or zpl (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "playlist path (default: timestamped name in the export directory)")
	return cmd
}

func newScanCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Read audio file tags into a track file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := library.Scan(cmd.Context(), args[0], a.libraryOptions(a.reporter().Report))
			if err != nil {
				return err
			}
			_, _, err = lib.Save(cmd.Context(), output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "track file path (default: timestamped name in the export directory)")
	return cmd
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show how a track file spreads over the hash buckets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := a.reporter()
			lib, err := library.Open(cmd.Context(), args[0], a.libraryOptions(reporter.Report))
			if err != nil {
				return err
			}
			reporter.PrintStats(lib)
			return nil
		},
	}
}
