package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/handiism/track-library/internal/library"
	"github.com/handiism/track-library/internal/model"
)

// Result is what an action shows once it finishes.
type Result struct {
	Title   string
	Headers []string
	Rows    [][]string
	Err     error
}

type action struct {
	label       string
	prompts     []string
	placeholder string
	quit        bool
	run         func(ctx context.Context, lib *library.Manager, answers []string) Result
}

var actions = []action{
	{
		label:       "Add tracks from a file",
		prompts:     []string{"File containing new tracks:"},
		placeholder: "tracks.txt",
		run:         runAddFromFile,
	},
	{
		label:       "Save tracks in the library to a file",
		prompts:     []string{"Save to file:"},
		placeholder: "leave empty for a timestamped name",
		run:         runSave,
	},
	{
		label:   "Search for tracks by artist",
		prompts: []string{"Artist/band name to search:"},
		run:     runSearch,
	},
	{
		label:   "Remove a track",
		prompts: []string{"Track title:", "Artist/band name:"},
		run:     runRemove,
	},
	{
		label:       "Export the library as a playlist",
		prompts:     []string{"Playlist format (m3u, pls, wpl, zpl):"},
		placeholder: "leave empty for the configured format",
		run:         runExportPlaylist,
	},
	{
		label:       "Import tracks from an audio directory",
		prompts:     []string{"Directory containing audio files:"},
		placeholder: "~/Music",
		run:         runImportDirectory,
	},
	{
		label: "Show library statistics",
		run:   runStats,
	},
	{
		label: "Exit",
		quit:  true,
	},
}

func runAddFromFile(ctx context.Context, lib *library.Manager, answers []string) Result {
	n, err := lib.AddFromFile(ctx, answers[0])
	return Result{Title: fmt.Sprintf("Added %d tracks from %s", n, answers[0]), Err: err}
}

func runSave(ctx context.Context, lib *library.Manager, answers []string) Result {
	path, n, err := lib.Save(ctx, answers[0])
	return Result{Title: fmt.Sprintf("Saved %d tracks to %s", n, path), Err: err}
}

func runSearch(_ context.Context, lib *library.Manager, answers []string) Result {
	artist := answers[0]
	found := lib.Search(artist)
	if len(found) == 0 {
		return Result{Title: fmt.Sprintf("No tracks found for artist %q.", artist)}
	}

	rows := make([][]string, 0, len(found))
	for _, t := range found {
		rows = append(rows, []string{t.Title, strconv.Itoa(t.Duration)})
	}
	return Result{
		Title:   fmt.Sprintf("Tracks found for artist %s:", artist),
		Headers: []string{"Title", "Duration (seconds)"},
		Rows:    rows,
	}
}

func runRemove(_ context.Context, lib *library.Manager, answers []string) Result {
	title, artist := answers[0], answers[1]
	if lib.Remove(title, artist) {
		return Result{Title: fmt.Sprintf("Removed %q by %s", title, artist)}
	}
	return Result{Title: fmt.Sprintf("Track %q by %s could not be found", title, artist)}
}

func runExportPlaylist(ctx context.Context, lib *library.Manager, answers []string) Result {
	format := lib.Settings().Playlist()
	if answers[0] != "" {
		parsed, ok := model.ParsePlaylistFormat(answers[0])
		if !ok {
			return Result{Title: "Playlist not written", Err: fmt.Errorf("unknown playlist format %q", answers[0])}
		}
		format = parsed
	}

	path, err := lib.ExportPlaylist(ctx, "", format)
	return Result{Title: fmt.Sprintf("Wrote %s playlist to %s", format, path), Err: err}
}

func runImportDirectory(ctx context.Context, lib *library.Manager, answers []string) Result {
	n, err := lib.ImportDirectory(ctx, answers[0])
	return Result{Title: fmt.Sprintf("Imported %d tracks from %s", n, answers[0]), Err: err}
}

func runStats(_ context.Context, lib *library.Manager, _ []string) Result {
	st := lib.Stats()
	return Result{
		Title:   "Library statistics",
		Headers: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Tracks", strconv.Itoa(st.Tracks)},
			{"Buckets", strconv.Itoa(st.Capacity)},
			{"Used buckets", strconv.Itoa(st.UsedBuckets)},
			{"Longest chain", strconv.Itoa(st.LongestChain)},
			{"Load factor", strconv.FormatFloat(st.LoadFactor(), 'f', 2, 64)},
		},
	}
}
